package games

import (
	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/shopspring/decimal"
)

// Reels is the number of slot reels.
const Reels = 3

// Symbol is a slot symbol with its three-of-a-kind multiplier.
type Symbol struct {
	Name       string
	Multiplier decimal.Decimal
	// upper bound, exclusive, in hundredths of the reel hash
	below int
}

// Symbols is the reel strip, ordered by cumulative weight.
var Symbols = []Symbol{
	{Name: "cherry", Multiplier: decimal.NewFromInt(2), below: 2500},
	{Name: "lemon", Multiplier: decimal.NewFromInt(3), below: 4500},
	{Name: "orange", Multiplier: decimal.NewFromInt(4), below: 6300},
	{Name: "grape", Multiplier: decimal.NewFromInt(5), below: 7800},
	{Name: "diamond", Multiplier: decimal.NewFromInt(8), below: 8800},
	{Name: "star", Multiplier: decimal.NewFromInt(10), below: 9500},
	{Name: "seven", Multiplier: decimal.NewFromInt(20), below: 10000},
}

var pairFactor = decimal.RequireFromString("0.5")

// Slots spins three reels derived from the outcome.
type Slots struct{}

func (Slots) betSpec() {}

func (Slots) Game() Game { return GameSlots }

func (Slots) Validate() error { return nil }

func (Slots) Evaluate(outcome float64) Evaluation {
	reels := SpinReels(outcome)
	names := make([]string, len(reels))
	for i, s := range reels {
		names[i] = s.Name
	}
	detail := map[string]any{"reels": names}

	switch {
	case reels[0].Name == reels[1].Name && reels[1].Name == reels[2].Name:
		detail["line"] = "three_of_a_kind"
		return Evaluation{Multiplier: reels[0].Multiplier, Detail: detail}
	case reels[0].Name == reels[1].Name:
		detail["line"] = "pair"
		return Evaluation{Multiplier: reels[0].Multiplier.Mul(pairFactor), Detail: detail}
	case reels[1].Name == reels[2].Name:
		detail["line"] = "pair"
		return Evaluation{Multiplier: reels[1].Multiplier.Mul(pairFactor), Detail: detail}
	}
	return Evaluation{Multiplier: decimal.Zero, Detail: detail}
}

func (Slots) Params() map[string]any {
	return map[string]any{}
}

// SpinReels maps an outcome to one symbol per reel. Reel k reads
// (units * (k+1) * 13) mod 10000 against the cumulative symbol weights.
func SpinReels(outcome float64) [Reels]Symbol {
	u := fairness.OutcomeUnits(outcome)
	var reels [Reels]Symbol
	for k := 0; k < Reels; k++ {
		h := (u * (k + 1) * 13) % 10000
		reels[k] = symbolAt(h)
	}
	return reels
}

func symbolAt(h int) Symbol {
	for _, s := range Symbols {
		if h < s.below {
			return s
		}
	}
	return Symbols[len(Symbols)-1]
}
