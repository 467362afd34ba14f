package games

import (
	"github.com/shopspring/decimal"
)

// PlinkoBuckets is the number of landing buckets.
const PlinkoBuckets = 13

// PlinkoRisk selects a payout table.
type PlinkoRisk string

const (
	PlinkoLow    PlinkoRisk = "low"
	PlinkoMedium PlinkoRisk = "medium"
	PlinkoHigh   PlinkoRisk = "high"
)

// Each table averages 0.99 across its buckets.
var plinkoTables = map[PlinkoRisk][PlinkoBuckets]decimal.Decimal{
	PlinkoLow:    mustTable("1.9", "1.2", "1.1", "0.9", "0.7", "0.43", "0.41", "0.43", "0.7", "0.9", "1.1", "1.2", "1.9"),
	PlinkoMedium: mustTable("3.5", "1.4", "0.8", "0.4", "0.2", "0.1", "0.07", "0.1", "0.2", "0.4", "0.8", "1.4", "3.5"),
	PlinkoHigh:   mustTable("5.5", "0.6", "0.2", "0.1", "0.035", "0", "0", "0", "0.035", "0.1", "0.2", "0.6", "5.5"),
}

// Plinko drops a ball into one of 13 buckets.
type Plinko struct {
	Risk PlinkoRisk
}

func (Plinko) betSpec() {}

func (Plinko) Game() Game { return GamePlinko }

func (p Plinko) Validate() error {
	if _, ok := plinkoTables[p.Risk]; !ok {
		return invalid("unknown plinko risk %q", p.Risk)
	}
	return nil
}

func (p Plinko) Evaluate(outcome float64) Evaluation {
	bucket := bucketOf(outcome, PlinkoBuckets)
	table := plinkoTables[p.Risk]
	return Evaluation{
		Multiplier: table[bucket],
		Detail: map[string]any{
			"bucket":     bucket,
			"multiplier": table[bucket].String(),
		},
	}
}

func (p Plinko) Params() map[string]any {
	return map[string]any{"risk": string(p.Risk)}
}

// PlinkoTable returns the payout table for risk.
func PlinkoTable(risk PlinkoRisk) ([PlinkoBuckets]decimal.Decimal, bool) {
	table, ok := plinkoTables[risk]
	return table, ok
}

func mustTable(values ...string) [PlinkoBuckets]decimal.Decimal {
	var table [PlinkoBuckets]decimal.Decimal
	for i, v := range values {
		table[i] = decimal.RequireFromString(v)
	}
	return table
}
