package presentvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(amount float64, n int) []float64 {
	flows := make([]float64, n)
	for i := range flows {
		flows[i] = amount
	}
	return flows
}

func TestParseTiming(t *testing.T) {
	timing, err := ParseTiming("Beginning")
	require.NoError(t, err)
	assert.Equal(t, Beginning, timing)

	timing, err = ParseTiming("End")
	require.NoError(t, err)
	assert.Equal(t, End, timing)

	_, err = ParseTiming("beginning")
	assert.Error(t, err)
	_, err = ParseTiming("")
	assert.Error(t, err)
}

func TestMonthlyRate(t *testing.T) {
	assert.InDelta(t, 0.005, MonthlyRate(6), 1e-12)
	assert.InDelta(t, 0.01/12, MonthlyRate(1), 1e-12)
	assert.Zero(t, MonthlyRate(0))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		flows       []float64
		monthlyRate float64
		timing      Timing
		want        float64
	}{
		{"24 payments beginning", repeat(10000, 24), 0.005, Beginning, 226756.81},
		{"24 payments end", repeat(10000, 24), 0.005, End, 225628.66},
		{"5 payments at 1% beginning", repeat(1000, 5), MonthlyRate(1), Beginning, 4991.68},
		{"5 payments at 1% end", repeat(1000, 5), MonthlyRate(1), End, 4987.52},
		{"5 payments at 6% beginning", repeat(1000, 5), MonthlyRate(6), Beginning, 4950.50},
		{"5 payments at 6% end", repeat(1000, 5), MonthlyRate(6), End, 4925.87},
		{"single flow beginning is undiscounted", []float64{1000}, 0.005, Beginning, 1000.00},
		{"single flow end is discounted once", []float64{1000}, 0.005, End, 995.02},
		{"zero rate beginning", repeat(1000, 5), 0, Beginning, 5000.00},
		{"zero rate end", repeat(1000, 5), 0, End, 5000.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.flows, tt.monthlyRate, tt.timing)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.005)
		})
	}
}

func TestCalculateEmpty(t *testing.T) {
	got, err := Calculate(nil, 0.005, Beginning)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCalculateInvalidTiming(t *testing.T) {
	_, err := Calculate(repeat(1000, 5), 0.005, Timing("Quarterly"))
	assert.Error(t, err)
}

func TestCalculateBeginningExceedsEnd(t *testing.T) {
	flows := repeat(1000, 12)
	beg, err := Calculate(flows, 0.005, Beginning)
	require.NoError(t, err)
	end, err := Calculate(flows, 0.005, End)
	require.NoError(t, err)
	assert.Greater(t, beg, end)
}
