package schedule

import (
	"math"

	"github.com/leaseledger/leaseledger/pkg/constants"
	"github.com/leaseledger/leaseledger/pkg/datetime"
)

// XNPV discounts each payment by the annual rate over the actual number of
// days elapsed since the first payment, on a 365-day basis. This is the
// figure reported alongside the payment schedule; the present-value engine
// used for the liability tables applies the monthly convention instead.
func XNPV(payments []PaymentRow, annualRatePercent float64) float64 {
	if len(payments) == 0 {
		return 0
	}
	rate := annualRatePercent / constants.PercentageMultiplier
	first := payments[0].PaymentDate
	xnpv := 0.0
	for _, row := range payments {
		years := float64(datetime.DaysBetween(first, row.PaymentDate)) / constants.DaysPerYear
		xnpv += row.Amount / math.Pow(1+rate, years)
	}
	return xnpv
}
