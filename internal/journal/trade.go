// internal/journal/trade.go
package journal

// EmotionalState tags the trader's state of mind when a trade was entered.
type EmotionalState string

const (
	StateDisciplined EmotionalState = "disciplined"
	StateRevenge     EmotionalState = "revenge"
	StateFOMO        EmotionalState = "fomo"
	StateConfident   EmotionalState = "confident"
	StateFearful     EmotionalState = "fearful"
)

// Trade is one logged trade attempt within a phase. JSON field names
// match the persisted journal document.
type Trade struct {
	Number         int            `json:"levelNumber"`
	Date           string         `json:"date"`
	Balance        float64        `json:"balance"`
	RiskPercent    float64        `json:"riskPercent"`
	LotSize        float64        `json:"lotSize"`
	RiskedAmount   float64        `json:"riskedAmount"`
	PipsToRisk     float64        `json:"pipsToRisk"`
	RewardMultiple float64        `json:"rewardMultiple"`
	ProfitTarget   float64        `json:"profitTarget"`
	PL             float64        `json:"pl"`
	Completed      bool           `json:"completed"`
	Notes          string         `json:"notes,omitempty"`
	Strategy       string         `json:"strategy,omitempty"`
	Pair           string         `json:"currencyPair,omitempty"`
	Session        string         `json:"marketSession,omitempty"`
	EntryTime      string         `json:"entryTime,omitempty"`
	ExitTime       string         `json:"exitTime,omitempty"`
	SLAmount       float64        `json:"slAmount,omitempty"`
	DayTradeNumber int            `json:"tradeNumber,omitempty"`
	EmotionalState EmotionalState `json:"emotionalState,omitempty"`
	RuleViolations []string       `json:"ruleViolations,omitempty"`
}

// IsWin reports whether the trade closed profitable. Break-even trades
// are neither wins nor losses.
func (t Trade) IsWin() bool {
	return t.Completed && t.PL > 0
}

// IsLoss reports whether the trade closed at a loss.
func (t Trade) IsLoss() bool {
	return t.Completed && t.PL < 0
}

// HasDate reports whether the trade carries a parseable calendar date.
func (t Trade) HasDate() bool {
	return !ParseDate(t.Date).IsZero()
}
