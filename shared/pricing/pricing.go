// Package pricing computes booking charges from a room's hourly rate.
// All arithmetic is decimal so repeated quoting of the same interval never
// drifts the way float rounding does.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"utabox/shared/constant"
)

const fractionDigits = 2

var secondsPerHour = decimal.NewFromInt(constant.SecondsPerHour)

// Compute returns hourlyRate multiplied by the interval duration in hours,
// rounded half-up to two fraction digits. A zero rate or zero duration prices
// to zero. Inverted intervals are rejected upstream and priced as zero here.
func Compute(hourlyRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	seconds := int64(end.Sub(start) / time.Second)
	if seconds <= 0 || hourlyRate.IsZero() {
		return decimal.Zero.Round(fractionDigits)
	}

	return hourlyRate.
		Mul(decimal.NewFromInt(seconds)).
		Div(secondsPerHour).
		Round(fractionDigits)
}
