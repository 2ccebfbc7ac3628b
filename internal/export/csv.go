// Package export renders the journal as flat CSV or JSON documents and
// reads trade rows back in.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
)

// TradeRow is one flattened completed trade for CSV interchange.
type TradeRow struct {
	Phase          int     `csv:"phase"`
	Trade          int     `csv:"trade"`
	Date           string  `csv:"date"`
	Balance        float64 `csv:"balance"`
	RiskPercent    float64 `csv:"risk_percent"`
	RiskedAmount   float64 `csv:"risked_amount"`
	LotSize        float64 `csv:"lot_size"`
	RewardMultiple float64 `csv:"reward_multiple"`
	PL             float64 `csv:"pl"`
	Strategy       string  `csv:"strategy"`
	Pair           string  `csv:"currency_pair"`
	EntryTime      string  `csv:"entry_time"`
	Notes          string  `csv:"notes"`
}

// Rows flattens every completed trade across all phases, in phase then
// trade order.
func Rows(phases []journal.Phase) []TradeRow {
	var rows []TradeRow
	for _, p := range phases {
		for _, t := range p.Trades {
			if !t.Completed {
				continue
			}
			rows = append(rows, TradeRow{
				Phase:          p.Number,
				Trade:          t.Number,
				Date:           t.Date,
				Balance:        t.Balance,
				RiskPercent:    t.RiskPercent,
				RiskedAmount:   t.RiskedAmount,
				LotSize:        t.LotSize,
				RewardMultiple: t.RewardMultiple,
				PL:             t.PL,
				Strategy:       t.Strategy,
				Pair:           t.Pair,
				EntryTime:      t.EntryTime,
				Notes:          t.Notes,
			})
		}
	}
	return rows
}

// WriteCSV writes the completed trades of all phases as CSV.
func WriteCSV(w io.Writer, phases []journal.Phase) error {
	rows := Rows(phases)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}
	return nil
}

// ReadCSV parses trade rows from CSV.
func ReadCSV(r io.Reader) ([]TradeRow, error) {
	var rows []TradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, core.WrapError(core.ErrImportFailed, err)
	}
	return rows, nil
}
