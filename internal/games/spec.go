// Package games maps a shared fairness outcome onto per-game payouts.
//
// A bet is described by a BetSpec variant. Evaluation is a pure function of
// the outcome; no game draws additional randomness.
package games

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/shopspring/decimal"
)

// Game identifies a game type.
type Game string

const (
	GameDice     Game = "dice"
	GameRoulette Game = "roulette"
	GameSlots    Game = "slots"
	GamePlinko   Game = "plinko"
	GameBalloon  Game = "balloon"
)

// Games lists every supported game.
var Games = []Game{GameDice, GameRoulette, GameSlots, GamePlinko, GameBalloon}

// BetSpec is the closed set of bet variants: Dice, Roulette, Slots, Plinko and Balloon.
type BetSpec interface {
	Game() Game
	Validate() error
	Evaluate(outcome float64) Evaluation
	// Params returns the bet terms as persisted with the session.
	Params() map[string]any

	betSpec()
}

// Evaluation is the verdict for one outcome.
type Evaluation struct {
	Multiplier decimal.Decimal
	Detail     map[string]any
}

// Won reports whether the evaluation pays anything.
func (e Evaluation) Won() bool {
	return e.Multiplier.IsPositive()
}

// Payout returns bet times multiplier rounded to 8 decimals.
func (e Evaluation) Payout(bet decimal.Decimal) decimal.Decimal {
	if !e.Won() {
		return decimal.Zero
	}
	return bet.Mul(e.Multiplier).Round(8)
}

// Params carries loosely typed bet terms from a transport request.
type Params struct {
	Target  float64
	BetType string
	Risk    string
}

// Parse builds and validates a BetSpec.
func Parse(game string, p Params) (BetSpec, error) {
	var spec BetSpec

	switch Game(strings.ToLower(strings.TrimSpace(game))) {
	case GameDice:
		spec = Dice{Target: p.Target}
	case GameRoulette:
		spec = Roulette{BetType: strings.ToLower(strings.TrimSpace(p.BetType))}
	case GameSlots:
		spec = Slots{}
	case GamePlinko:
		risk := PlinkoRisk(strings.ToLower(strings.TrimSpace(p.Risk)))
		if risk == "" {
			risk = PlinkoMedium
		}
		spec = Plinko{Risk: risk}
	case GameBalloon:
		risk, err := strconv.ParseFloat(strings.TrimSpace(p.Risk), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: balloon risk %q is not a number", fairness.ErrInvalidArgument, p.Risk)
		}
		spec = Balloon{Risk: risk}
	default:
		return nil, fmt.Errorf("%w: unknown game %q", fairness.ErrInvalidArgument, game)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{fairness.ErrInvalidArgument}, args...)...)
}

// bucketOf spreads outcome hundredths evenly across n buckets.
func bucketOf(outcome float64, n int) int {
	u := fairness.OutcomeUnits(outcome)
	if u < 0 {
		u = 0
	}
	if u > 9999 {
		u = 9999
	}
	return u * n / 10000
}
