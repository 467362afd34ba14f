package games

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RoulettePockets is the size of the mini wheel: 0 plus 1..12.
const RoulettePockets = 13

const (
	ColorGreen = "green"
	ColorRed   = "red"
	ColorBlack = "black"
)

var (
	evenMoney  = decimal.NewFromInt(2)
	straightUp = decimal.NewFromInt(12)
)

// Roulette bets on a band of the mini wheel. BetType is one of red, black,
// green, even, odd, low, high, or a single pocket number "0".."12".
type Roulette struct {
	BetType string
}

func (Roulette) betSpec() {}

func (Roulette) Game() Game { return GameRoulette }

func (r Roulette) Validate() error {
	switch r.BetType {
	case ColorRed, ColorBlack, ColorGreen, "even", "odd", "low", "high":
		return nil
	}
	if _, ok := straightNumber(r.BetType); ok {
		return nil
	}
	return invalid("unknown roulette bet type %q", r.BetType)
}

func (r Roulette) Evaluate(outcome float64) Evaluation {
	pocket := bucketOf(outcome, RoulettePockets)
	detail := map[string]any{
		"pocket": pocket,
		"color":  PocketColor(pocket),
	}

	covered, payout := r.covers(pocket)
	if !covered {
		return Evaluation{Multiplier: decimal.Zero, Detail: detail}
	}
	return Evaluation{Multiplier: payout, Detail: detail}
}

func (r Roulette) Params() map[string]any {
	return map[string]any{"betType": r.BetType}
}

func (r Roulette) covers(pocket int) (bool, decimal.Decimal) {
	switch r.BetType {
	case ColorRed, ColorBlack:
		return PocketColor(pocket) == r.BetType, evenMoney
	case ColorGreen:
		return pocket == 0, straightUp
	case "even":
		return pocket != 0 && pocket%2 == 0, evenMoney
	case "odd":
		return pocket%2 == 1, evenMoney
	case "low":
		return pocket >= 1 && pocket <= 6, evenMoney
	case "high":
		return pocket >= 7, evenMoney
	}
	if n, ok := straightNumber(r.BetType); ok {
		return pocket == n, straightUp
	}
	return false, decimal.Zero
}

// PocketColor returns the colour of a mini wheel pocket.
func PocketColor(pocket int) string {
	switch {
	case pocket == 0:
		return ColorGreen
	case pocket%2 == 1:
		return ColorRed
	default:
		return ColorBlack
	}
}

func straightNumber(betType string) (int, bool) {
	n, err := strconv.Atoi(betType)
	if err != nil || n < 0 || n >= RoulettePockets {
		return 0, false
	}
	return n, true
}
