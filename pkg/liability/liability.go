// Package liability builds the lease liability roll-forward: the discounted
// obligation amortized month by month as payments are made and interest
// accrues, plus the window aggregations derived from it.
package liability

import (
	"fmt"
	"time"

	"github.com/leaseledger/leaseledger/pkg/presentvalue"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// Row is one period of the roll-forward. Payment is stored negative,
// representing a reduction of the liability.
type Row struct {
	Period             time.Time
	LiabilityBeginning float64
	Payment            float64
	InterestExpense    float64
	LiabilityEnding    float64
}

// GenerateSchedule produces one row per payment. With Beginning timing,
// interest accrues on the post-payment balance; with End timing, on the
// pre-payment balance. For a schedule discounted at the same rate and timing
// the final ending balance closes to zero within cent rounding.
func GenerateSchedule(payments []schedule.PaymentRow, cashFlows []schedule.CashFlowRow,
	presentValue, monthlyRate float64, timing presentvalue.Timing) ([]Row, error) {
	if len(cashFlows) != len(payments) {
		return nil, fmt.Errorf("cash flow rows (%d) do not match payment rows (%d)", len(cashFlows), len(payments))
	}
	if timing != presentvalue.Beginning && timing != presentvalue.End {
		return nil, fmt.Errorf("invalid payment timing %q", timing)
	}

	rows := make([]Row, len(payments))
	for i, p := range payments {
		liabilityBeginning := presentValue
		if i > 0 {
			liabilityBeginning = rows[i-1].LiabilityEnding
		}

		payment := -cashFlows[i].TotalCashFlows

		var interestExpense float64
		if timing == presentvalue.Beginning {
			interestExpense = (liabilityBeginning + payment) * monthlyRate
		} else {
			interestExpense = liabilityBeginning * monthlyRate
		}

		rows[i] = Row{
			Period:             p.PaymentDate,
			LiabilityBeginning: liabilityBeginning,
			Payment:            payment,
			InterestExpense:    interestExpense,
			LiabilityEnding:    liabilityBeginning + payment + interestExpense,
		}
	}

	return rows, nil
}
