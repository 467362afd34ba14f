package games

import (
	"math"

	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/shopspring/decimal"
)

// Balloon pops when the outcome lands below Risk. Surviving pays
// 99/(100-Risk), which keeps the same 1% edge as dice.
type Balloon struct {
	Risk float64
}

func (Balloon) betSpec() {}

func (Balloon) Game() Game { return GameBalloon }

func (b Balloon) Validate() error {
	if math.IsNaN(b.Risk) || b.Risk <= 0 || b.Risk >= 100 {
		return invalid("balloon risk must be between 0 and 100 exclusive, got %v", b.Risk)
	}
	return nil
}

func (b Balloon) Evaluate(outcome float64) Evaluation {
	popped := outcome < b.Risk
	detail := map[string]any{
		"risk":   b.Risk,
		"popped": popped,
	}
	if popped {
		return Evaluation{Multiplier: decimal.Zero, Detail: detail}
	}
	return Evaluation{
		Multiplier: decimal.NewFromFloat(fairness.HouseEdgeNumerator / (100 - b.Risk)),
		Detail:     detail,
	}
}

func (b Balloon) Params() map[string]any {
	return map[string]any{"risk": b.Risk}
}
