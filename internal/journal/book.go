// internal/journal/book.go
package journal

import (
	"github.com/flipdeck/flipdeck/internal/core"
)

// Settings holds user-tunable journal defaults. JSON names match the
// persisted document.
type Settings struct {
	RiskWarningThreshold float64   `json:"riskWarningThreshold"`
	DefaultStrategy      string    `json:"defaultStrategy,omitempty"`
	DefaultPair          string    `json:"defaultCurrencyPair,omitempty"`
	MaxSLAmount          float64   `json:"maxSLAmount"`
	MaxDailyTrades       int       `json:"maxDailyTrades"`
	MaxDailyLosses       int       `json:"maxDailyLosses"`
	DefaultCycleType     CycleType `json:"defaultCycleType,omitempty"`
	AutoWithdrawalRules  bool      `json:"autoWithdrawalRules"`
}

// DefaultSettings returns the strict micro-flip defaults: fixed $2 stop
// loss, at most 3 trades and 3 losses per day.
func DefaultSettings() Settings {
	return Settings{
		RiskWarningThreshold: 3,
		MaxSLAmount:          2,
		MaxDailyTrades:       3,
		MaxDailyLosses:       3,
		DefaultCycleType:     CycleMicro,
		AutoWithdrawalRules:  true,
	}
}

// Book is the complete persisted journal document: active, historical and
// archived phases plus running counters.
type Book struct {
	CurrentPhase        int      `json:"currentPhase"`
	Phases              []Phase  `json:"phases"`
	HistoricalPhases    []Phase  `json:"historicalPhases"`
	ArchivedPhases      []Phase  `json:"archivedPhases,omitempty"`
	Settings            Settings `json:"settings"`
	OfflineCapitalStack float64  `json:"offlineCapitalStack"`
	MonthlyBlowUps      int      `json:"monthlyBlowUps"`
	TotalFlipsCompleted int      `json:"totalFlipsCompleted"`
}

// NewBook creates an empty journal with the given settings.
func NewBook(settings Settings) *Book {
	return &Book{Settings: settings}
}

// AllPhases returns every phase known to the journal: historical, active,
// then archived. The result is the canonical analytics input; archived
// and historical phases are read-only there.
func (b *Book) AllPhases() []Phase {
	out := make([]Phase, 0, len(b.HistoricalPhases)+len(b.Phases)+len(b.ArchivedPhases))
	out = append(out, b.HistoricalPhases...)
	out = append(out, b.Phases...)
	out = append(out, b.ArchivedPhases...)
	return out
}

// StartPhase creates a new active phase with tradeCount pre-allocated
// empty trades and returns it. goalTarget of 0 defaults to a 2x flip.
func (b *Book) StartPhase(initialCapital float64, tradeCount int, goalTarget float64, startDate string) *Phase {
	b.CurrentPhase++

	flipTarget := 2.0
	if goalTarget > 0 && initialCapital > 0 {
		flipTarget = goalTarget / initialCapital
	}
	if goalTarget == 0 {
		goalTarget = initialCapital * 2
	}

	phase := Phase{
		Number:          b.CurrentPhase,
		InitialCapital:  initialCapital,
		TradesPerPhase:  tradeCount,
		GoalTarget:      goalTarget,
		FlipTarget:      flipTarget,
		StartDate:       startDate,
		CycleType:       CycleTypeFor(initialCapital),
		WithdrawalStage: StageActive,
	}

	phase.Trades = make([]Trade, tradeCount)
	for i := range phase.Trades {
		phase.Trades[i] = Trade{
			Number:         i + 1,
			LotSize:        0.01,
			SLAmount:       b.Settings.MaxSLAmount,
			Strategy:       b.Settings.DefaultStrategy,
			Pair:           b.Settings.DefaultPair,
			EmotionalState: StateDisciplined,
		}
	}
	phase.Recalculate(b.Settings.MaxSLAmount)

	b.Phases = append(b.Phases, phase)
	return &b.Phases[len(b.Phases)-1]
}

// FindPhase returns the active phase with the given number.
func (b *Book) FindPhase(number int) (*Phase, error) {
	for i := range b.Phases {
		if b.Phases[i].Number == number {
			return &b.Phases[i], nil
		}
	}
	return nil, core.ErrPhaseNotFound
}

// ActivePhase returns the most recently started phase.
func (b *Book) ActivePhase() (*Phase, error) {
	if len(b.Phases) == 0 {
		return nil, core.ErrNoActivePhase
	}
	return &b.Phases[len(b.Phases)-1], nil
}

// renumber reassigns dense 1..N numbers to the active phases so numbering
// always reflects current position, not history.
func (b *Book) renumber() {
	for i := range b.Phases {
		b.Phases[i].Number = i + 1
	}
	b.CurrentPhase = len(b.Phases)
}

// DeletePhase removes an active phase and renumbers the remainder.
func (b *Book) DeletePhase(number int) error {
	kept := b.Phases[:0]
	found := false
	for _, p := range b.Phases {
		if p.Number == number {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return core.ErrPhaseNotFound
	}
	b.Phases = kept
	b.renumber()
	return nil
}

// ArchivePhase freezes an active phase with an end date, moves it to the
// archived collection and renumbers the remaining active phases. An
// archived phase keeps the number it had when archived, so two archived
// phases can share a number; UnarchivePhase and DeleteArchivedPhase act
// on the first match in archive order. That ambiguity is intentional,
// matching how the dashboard has always treated its archive list.
func (b *Book) ArchivePhase(number int, endDate string) error {
	for i, p := range b.Phases {
		if p.Number != number {
			continue
		}
		p.EndDate = endDate
		b.ArchivedPhases = append(b.ArchivedPhases, p)
		b.Phases = append(b.Phases[:i], b.Phases[i+1:]...)
		b.renumber()
		return nil
	}
	return core.ErrPhaseNotFound
}

// UnarchivePhase reinstates an archived phase under a freshly assigned
// phase number with its end date cleared.
func (b *Book) UnarchivePhase(number int) error {
	for i, p := range b.ArchivedPhases {
		if p.Number != number {
			continue
		}
		b.CurrentPhase++
		p.Number = b.CurrentPhase
		p.EndDate = ""
		b.ArchivedPhases = append(b.ArchivedPhases[:i], b.ArchivedPhases[i+1:]...)
		b.Phases = append(b.Phases, p)
		return nil
	}
	return core.ErrPhaseNotFound
}

// DeleteArchivedPhase permanently removes an archived phase.
func (b *Book) DeleteArchivedPhase(number int) error {
	for i, p := range b.ArchivedPhases {
		if p.Number == number {
			b.ArchivedPhases = append(b.ArchivedPhases[:i], b.ArchivedPhases[i+1:]...)
			return nil
		}
	}
	return core.ErrPhaseNotFound
}

// CompleteTrade marks trade seq (1-based) of a phase as realized with the
// given date and P/L, then rederives balances, streaks, withdrawal stage
// and the same-day counters.
func (b *Book) CompleteTrade(phaseNumber, seq int, date string, pl float64) error {
	phase, err := b.FindPhase(phaseNumber)
	if err != nil {
		return err
	}
	if seq < 1 || seq > len(phase.Trades) {
		return core.ErrTradeNotFound
	}

	t := &phase.Trades[seq-1]
	t.Date = date
	t.PL = pl
	t.Completed = true
	t.DayTradeNumber = phase.TradesOn(date)

	phase.Recalculate(b.Settings.MaxSLAmount)
	phase.RefreshStreaks()
	phase.RefreshWithdrawalStage()
	phase.DailyTradeCount = phase.TradesOn(date)
	phase.DailyLossCount = phase.LossesOn(date)
	return nil
}

// RecordWithdrawal adds a withdrawal to the offline capital stack,
// rederives the phase's stage, and counts a completed flip when at least
// double the deposit was taken out.
func (b *Book) RecordWithdrawal(phaseNumber int, amount float64) error {
	phase, err := b.FindPhase(phaseNumber)
	if err != nil {
		return err
	}
	b.OfflineCapitalStack += amount
	phase.RefreshWithdrawalStage()
	if amount >= phase.InitialCapital*2 {
		b.TotalFlipsCompleted++
	}
	return nil
}
