package games

import (
	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/shopspring/decimal"
)

// Dice is a roll-under bet: the outcome must land strictly below Target.
type Dice struct {
	Target float64
}

func (Dice) betSpec() {}

func (Dice) Game() Game { return GameDice }

func (d Dice) Validate() error {
	_, err := fairness.CalculateMultiplier(d.Target)
	return err
}

func (d Dice) Evaluate(outcome float64) Evaluation {
	detail := map[string]any{
		"target": d.Target,
		"rolled": fairness.FormatOutcome(outcome),
	}
	if !fairness.CheckWin(outcome, d.Target) {
		return Evaluation{Multiplier: decimal.Zero, Detail: detail}
	}
	multiplier, _ := fairness.CalculateMultiplier(d.Target)
	return Evaluation{Multiplier: decimal.NewFromFloat(multiplier), Detail: detail}
}

func (d Dice) Params() map[string]any {
	return map[string]any{"target": d.Target}
}
