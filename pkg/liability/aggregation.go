package liability

import (
	"time"

	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// Summary is the short-term/long-term split of the liability for a reporting
// window.
type Summary struct {
	ShortTerm float64
	LongTerm  float64
	Total     float64
}

// PaymentsDueRow is one bucket of the maturity ladder.
type PaymentsDueRow struct {
	Period        string
	LeasePayments float64
	Interest      float64
	NPV           float64
}

// PaymentsDueTotalLabel names the final summing row of the maturity ladder.
const PaymentsDueTotalLabel = "Total"

// Summarize computes the liability split for the window [start, end]
// inclusive, at day precision. Short-term is the negated sum of payment plus
// interest over the window; long-term is the ending balance of the row whose
// payment month matches the end date, or zero when no row matches.
func Summarize(rows []Row, payments []schedule.PaymentRow, start, end time.Time) Summary {
	start = datetime.Normalize(start)
	end = datetime.Normalize(end)

	shortTerm := 0.0
	for i, p := range payments {
		d := datetime.Normalize(p.PaymentDate)
		if !d.Before(start) && !d.After(end) {
			shortTerm += rows[i].Payment + rows[i].InterestExpense
		}
	}
	shortTerm = -shortTerm

	longTerm := 0.0
	for i, p := range payments {
		if datetime.SameMonth(p.PaymentDate, end) {
			longTerm = rows[i].LiabilityEnding
			break
		}
	}

	return Summary{
		ShortTerm: mathutil.Round(shortTerm),
		LongTerm:  mathutil.Round(longTerm),
		Total:     mathutil.Round(shortTerm + longTerm),
	}
}

// InterestAccretion sums the interest expense of every row with a payment
// date on or after start.
func InterestAccretion(rows []Row, payments []schedule.PaymentRow, start time.Time) float64 {
	start = datetime.Normalize(start)
	total := 0.0
	for i, p := range payments {
		if !datetime.Normalize(p.PaymentDate).Before(start) {
			total += rows[i].InterestExpense
		}
	}
	return mathutil.Round(total)
}

// PaymentsDue builds the maturity ladder for the closing date: six buckets
// keyed by calendar-year offset from the closing year, each summing the
// absolute payments and interest of rows falling in that calendar year, plus
// a final Total row. NPV per bucket is lease payments less interest.
func PaymentsDue(rows []Row, payments []schedule.PaymentRow, closing time.Time) []PaymentsDueRow {
	closingYear := closing.Year()
	buckets := []struct {
		period    string
		startYear int
		endYear   int // 0 means unbounded
	}{
		{"< 1 Year", closingYear + 1, closingYear + 1},
		{"1-2 Years", closingYear + 2, closingYear + 2},
		{"2-3 Years", closingYear + 3, closingYear + 3},
		{"3-4 Years", closingYear + 4, closingYear + 4},
		{"4-5 Years", closingYear + 5, closingYear + 5},
		{"> 5 Years", closingYear + 6, 0},
	}

	out := make([]PaymentsDueRow, 0, len(buckets)+1)
	var totalPayments, totalInterest, totalNPV float64
	for _, bucket := range buckets {
		leasePayments := 0.0
		interest := 0.0
		for i, p := range payments {
			year := p.PaymentDate.Year()
			if year < bucket.startYear {
				continue
			}
			if bucket.endYear != 0 && year > bucket.endYear {
				continue
			}
			if rows[i].Payment < 0 {
				leasePayments += -rows[i].Payment
			} else {
				leasePayments += rows[i].Payment
			}
			interest += rows[i].InterestExpense
		}
		npv := leasePayments - interest
		out = append(out, PaymentsDueRow{
			Period:        bucket.period,
			LeasePayments: mathutil.Round(leasePayments),
			Interest:      mathutil.Round(interest),
			NPV:           mathutil.Round(npv),
		})
		totalPayments += mathutil.Round(leasePayments)
		totalInterest += mathutil.Round(interest)
		totalNPV += mathutil.Round(npv)
	}

	out = append(out, PaymentsDueRow{
		Period:        PaymentsDueTotalLabel,
		LeasePayments: mathutil.Round(totalPayments),
		Interest:      mathutil.Round(totalInterest),
		NPV:           mathutil.Round(totalNPV),
	})

	return out
}
