// Package fairness derives verifiable bet outcomes from a server seed, a
// client seed and a nonce.
//
// Every outcome is reproducible by anyone holding the three inputs:
//
//	hmac    = hex(HMAC-SHA256(key=serverSeed, msg=clientSeed+":"+nonce))
//	decimal = uint32(hmac[:8])
//	outcome = (decimal % 10000) / 100
package fairness

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// DefaultSeedLength is the number of random bytes behind a server seed.
	DefaultSeedLength = 32

	// HouseEdgeNumerator is the payout numerator applied to win probability percentages.
	HouseEdgeNumerator = 99.0

	outcomeBuckets = 10000
)

// ErrInvalidArgument marks inputs the caller can correct.
var ErrInvalidArgument = errors.New("invalid argument")

// Result is a computed outcome together with the values needed to audit it.
type Result struct {
	Outcome float64 `json:"outcome"`
	Hex     string  `json:"hex"`
	HMAC    string  `json:"hmac"`
}

// Units returns the outcome in hundredths, in [0, 9999].
func (r Result) Units() int {
	return OutcomeUnits(r.Outcome)
}

// OutcomeUnits converts a 2-decimal outcome into integer hundredths.
func OutcomeUnits(outcome float64) int {
	return int(math.Round(outcome * 100))
}

// CalculateOutcome computes the outcome for a bet.
func CalculateOutcome(serverSeed, clientSeed string, nonce int64) (Result, error) {
	if nonce < 0 {
		return Result{}, fmt.Errorf("%w: nonce must be non-negative, got %d", ErrInvalidArgument, nonce)
	}

	mac := hmac.New(sha256.New, []byte(serverSeed))
	mac.Write([]byte(clientSeed + ":" + strconv.FormatInt(nonce, 10)))
	digest := hex.EncodeToString(mac.Sum(nil))

	prefix := digest[:8]
	value, err := strconv.ParseUint(prefix, 16, 32)
	if err != nil {
		return Result{}, fmt.Errorf("parse hmac prefix %q: %w", prefix, err)
	}

	return Result{
		Outcome: float64(value%outcomeBuckets) / 100,
		Hex:     prefix,
		HMAC:    digest,
	}, nil
}

// VerifyOutcome recomputes the outcome and compares it with expected at 2
// decimal places. A mismatch is reported as false, never as an error.
func VerifyOutcome(serverSeed, clientSeed string, nonce int64, expected float64) bool {
	result, err := CalculateOutcome(serverSeed, clientSeed, nonce)
	if err != nil {
		return false
	}
	return FormatOutcome(result.Outcome) == FormatOutcome(expected)
}

// FormatOutcome renders an outcome with exactly two decimals.
func FormatOutcome(outcome float64) string {
	return strconv.FormatFloat(outcome, 'f', 2, 64)
}

// GenerateSecureRandomSeed returns length random bytes, hex encoded.
func GenerateSecureRandomSeed(length int) (string, error) {
	if length <= 0 {
		length = DefaultSeedLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSeed returns the public commitment for a seed.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// CalculateMultiplier returns the roll-under payout for target.
func CalculateMultiplier(target float64) (float64, error) {
	if math.IsNaN(target) || target <= 0 || target >= 100 {
		return 0, fmt.Errorf("%w: target must be between 0 and 100 exclusive, got %v", ErrInvalidArgument, target)
	}
	return HouseEdgeNumerator / target, nil
}

// CheckWin reports a roll-under win. The target itself loses.
func CheckWin(outcome, target float64) bool {
	return outcome < target
}

// CalculateWinAmount returns the payout for a roll-under bet with 8 decimals,
// or "0" when the bet lost.
func CalculateWinAmount(betAmount decimal.Decimal, outcome, target float64) (string, error) {
	multiplier, err := CalculateMultiplier(target)
	if err != nil {
		return "", err
	}
	if !CheckWin(outcome, target) {
		return "0", nil
	}
	return betAmount.Mul(decimal.NewFromFloat(multiplier)).StringFixed(8), nil
}
