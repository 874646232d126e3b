// Package presentvalue discounts a cash-flow sequence to a present value
// under a beginning/end-of-period timing convention.
package presentvalue

import (
	"fmt"
	"math"

	"github.com/leaseledger/leaseledger/pkg/constants"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
)

// Timing is the payment timing convention.
type Timing string

const (
	// Beginning treats the first cash flow as occurring at period 0,
	// undiscounted; flow i is discounted by (1+rate)^i.
	Beginning Timing = "Beginning"
	// End discounts flow i by (1+rate)^(i+1).
	End Timing = "End"
)

// ParseTiming validates a timing string from configuration or CLI input.
func ParseTiming(s string) (Timing, error) {
	switch Timing(s) {
	case Beginning:
		return Beginning, nil
	case End:
		return End, nil
	}
	return "", fmt.Errorf("invalid payment timing %q: must be %q or %q", s, Beginning, End)
}

// MonthlyRate converts an annual percentage borrowing rate to the monthly
// discount rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// Calculate returns the present value of the cash flows at the given monthly
// rate and timing, rounded to the cent. An empty sequence has present value
// zero.
func Calculate(cashFlows []float64, monthlyRate float64, timing Timing) (float64, error) {
	if timing != Beginning && timing != End {
		return 0, fmt.Errorf("invalid payment timing %q", timing)
	}
	if len(cashFlows) == 0 {
		return 0, nil
	}

	npv := 0.0
	if timing == Beginning {
		npv = cashFlows[0]
		for i := 1; i < len(cashFlows); i++ {
			npv += cashFlows[i] / math.Pow(1+monthlyRate, float64(i))
		}
	} else {
		for i, flow := range cashFlows {
			npv += flow / math.Pow(1+monthlyRate, float64(i+1))
		}
	}

	return mathutil.Round(npv), nil
}
