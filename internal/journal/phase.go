// internal/journal/phase.go
package journal

// CycleType classifies a phase by its starting capital.
type CycleType string

const (
	CycleMicro     CycleType = "micro"
	CycleSmall     CycleType = "small"
	CycleChallenge CycleType = "prop-challenge"
	CycleFunded    CycleType = "funded"
)

// WithdrawalStage tracks where a phase sits in the flip withdrawal ladder.
type WithdrawalStage string

const (
	StageActive          WithdrawalStage = "active"
	StageWithdrawDeposit WithdrawalStage = "withdraw-deposit"
	StageWithdrawHalf    WithdrawalStage = "withdraw-half"
	StageWithdrawAll     WithdrawalStage = "withdraw-all"
	StageReset           WithdrawalStage = "reset"
)

// Phase is an ordered collection of trades sharing one pool of capital.
type Phase struct {
	Number          int             `json:"phaseNumber"`
	InitialCapital  float64         `json:"initialCapital"`
	TradesPerPhase  int             `json:"levelsPerPhase"`
	WinStreak       int             `json:"winStreak"`
	LossStreak      int             `json:"lossStreak"`
	Trades          []Trade         `json:"levels"`
	GoalTarget      float64         `json:"goalTarget,omitempty"`
	FlipTarget      float64         `json:"flipTarget"`
	StartDate       string          `json:"startDate,omitempty"`
	EndDate         string          `json:"endDate,omitempty"`
	CycleType       CycleType       `json:"cycleType"`
	WithdrawalStage WithdrawalStage `json:"withdrawalStage"`
	BlowUpCount     int             `json:"blowUpCount,omitempty"`
	DailyLossCount  int             `json:"dailyLossCount,omitempty"`
	DailyTradeCount int             `json:"dailyTradeCount,omitempty"`
}

// CycleTypeFor classifies starting capital into a cycle type.
func CycleTypeFor(initialCapital float64) CycleType {
	switch {
	case initialCapital >= 1000:
		return CycleFunded
	case initialCapital >= 200:
		return CycleChallenge
	case initialCapital >= 100:
		return CycleSmall
	default:
		return CycleMicro
	}
}

// StageFor maps a current-balance-to-initial-capital multiplier onto the
// withdrawal ladder: <2x active, [2,3) withdraw the deposit, [3,4)
// withdraw half, >=4x withdraw everything and reset.
func StageFor(multiplier float64) WithdrawalStage {
	switch {
	case multiplier >= 4:
		return StageWithdrawAll
	case multiplier >= 3:
		return StageWithdrawHalf
	case multiplier >= 2:
		return StageWithdrawDeposit
	default:
		return StageActive
	}
}

// CompletedTrades returns the phase's completed trades in logged order.
func (p *Phase) CompletedTrades() []Trade {
	var out []Trade
	for _, t := range p.Trades {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CurrentBalance returns initial capital plus realized P/L of completed
// trades.
func (p *Phase) CurrentBalance() float64 {
	balance := p.InitialCapital
	for _, t := range p.Trades {
		if t.Completed {
			balance += t.PL
		}
	}
	return balance
}

// Multiplier returns current balance over initial capital (0 when the
// phase has no capital).
func (p *Phase) Multiplier() float64 {
	if p.InitialCapital == 0 {
		return 0
	}
	return p.CurrentBalance() / p.InitialCapital
}

// Recalculate rolls balances forward and rederives the dependent fields
// of every trade. A trade's balance equals the prior trade's balance plus
// its P/L only when the prior trade is completed; otherwise the balance
// repeats. When maxSL > 0 and the risked amount would exceed it, the
// risked amount is clamped to the cap and the risk percent back-derived.
func (p *Phase) Recalculate(maxSL float64) {
	balance := p.InitialCapital
	for i := range p.Trades {
		if i > 0 && p.Trades[i-1].Completed {
			balance += p.Trades[i-1].PL
		}
		t := &p.Trades[i]
		t.Balance = balance

		t.RiskedAmount = RiskedAmount(balance, t.RiskPercent)
		if maxSL > 0 && t.RiskedAmount > maxSL {
			t.RiskedAmount = maxSL
			if balance > 0 {
				t.RiskPercent = t.RiskedAmount / balance * 100
			}
		}
		t.PipsToRisk = PipsToRisk(t.RiskedAmount, t.LotSize)
		t.ProfitTarget = ProfitTarget(t.RiskedAmount, t.RewardMultiple)
	}
}

// DeriveStreaks scans completed trades in date order and returns the best
// win and loss runs ever observed. A break-even trade resets both runs.
func DeriveStreaks(trades []Trade) (winStreak, lossStreak int) {
	completed := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.Completed && t.HasDate() {
			completed = append(completed, t)
		}
	}
	SortTradesByDate(completed)

	var curWin, curLoss int
	for _, t := range completed {
		switch {
		case t.PL > 0:
			curWin++
			curLoss = 0
			if curWin > winStreak {
				winStreak = curWin
			}
		case t.PL < 0:
			curLoss++
			curWin = 0
			if curLoss > lossStreak {
				lossStreak = curLoss
			}
		default:
			curWin = 0
			curLoss = 0
		}
	}
	return winStreak, lossStreak
}

// RefreshStreaks recomputes the cached streak fields from the trade list.
// The cached values are a display convenience, never a source of truth.
func (p *Phase) RefreshStreaks() {
	p.WinStreak, p.LossStreak = DeriveStreaks(p.Trades)
}

// RefreshWithdrawalStage rederives the withdrawal stage from the current
// multiplier.
func (p *Phase) RefreshWithdrawalStage() {
	p.WithdrawalStage = StageFor(p.Multiplier())
}

// TradesOn counts completed trades logged on the given date.
func (p *Phase) TradesOn(date string) int {
	n := 0
	for _, t := range p.Trades {
		if t.Completed && t.Date == date {
			n++
		}
	}
	return n
}

// LossesOn counts completed losing trades logged on the given date.
func (p *Phase) LossesOn(date string) int {
	n := 0
	for _, t := range p.Trades {
		if t.IsLoss() && t.Date == date {
			n++
		}
	}
	return n
}
