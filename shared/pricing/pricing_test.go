package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"utabox/shared/pricing"
)

func at(clock string) time.Time {
	t, err := time.Parse(time.RFC3339, "2025-03-10T"+clock+":00Z")
	if err != nil {
		panic(err)
	}

	return t
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		rate  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			name:  "ninety minutes at 25.00",
			rate:  "25.00",
			start: at("10:00"),
			end:   at("11:30"),
			want:  "37.50",
		},
		{
			name:  "full hour",
			rate:  "40.00",
			start: at("09:00"),
			end:   at("10:00"),
			want:  "40.00",
		},
		{
			name:  "fifteen minutes rounds half up",
			rate:  "19.99",
			start: at("10:00"),
			end:   at("10:15"),
			want:  "5.00",
		},
		{
			name:  "zero rate",
			rate:  "0",
			start: at("10:00"),
			end:   at("12:00"),
			want:  "0.00",
		},
		{
			name:  "zero duration",
			rate:  "25.00",
			start: at("10:00"),
			end:   at("10:00"),
			want:  "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			assert.NoError(t, err)

			got := pricing.Compute(rate, tt.start, tt.end)

			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	rate := decimal.RequireFromString("33.33")
	start := at("18:00")
	end := at("20:45")

	first := pricing.Compute(rate, start, end)
	second := pricing.Compute(rate, start, end)

	assert.True(t, first.Equal(second))
}
