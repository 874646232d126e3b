// Package schedule generates the monthly payment schedule for a lease from
// its contractual terms, applying the per-year rent increment policy. This is
// the root producer of the calculation pipeline; every downstream table is
// indexed by the payment rows produced here.
package schedule

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leaseledger/leaseledger/pkg/constants"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
)

// IncrementMethod is the rule governing how monthly rent changes at a
// lease-year boundary.
type IncrementMethod string

const (
	IncrementFixed  IncrementMethod = "Fixed"
	IncrementCPI    IncrementMethod = "CPI"
	IncrementMarket IncrementMethod = "Market"
	IncrementNone   IncrementMethod = "None"
)

// Valid reports whether m is one of the recognized increment methods.
func (m IncrementMethod) Valid() bool {
	switch m {
	case IncrementFixed, IncrementCPI, IncrementMarket, IncrementNone:
		return true
	}
	return false
}

// Payment notes record which increment rule fired for auditability.
const (
	NoteFixedIncrement = "Fixed Increment Rate"
	NoteCPIIncrement   = "RBA CPI Rate"
	NoteMarketReview   = "Market Review"
)

// BoundaryPolicy controls whether the month containing the contractual end
// date itself receives a payment. The exclusive policy is canonical; the rule
// is financially material, so it is a policy rather than a hardcoded
// comparison.
type BoundaryPolicy int

const (
	// ExcludeEndMonth stops strictly before the end date's month.
	ExcludeEndMonth BoundaryPolicy = iota
	// IncludeEndMonth also emits a payment for the end date's month.
	IncludeEndMonth
)

// Terms holds the contractual inputs to payment generation. Rates are
// percentages (6 means 6%).
type Terms struct {
	Start              time.Time // commencement (property) or delivery (motor vehicle)
	End                time.Time // contractual expiry plus any exercised option years
	AnnualRent         float64
	FixedIncrementRate float64
	CPIRate            float64
	Increments         map[int]IncrementMethod // lease year (1-based) -> method
	Overrides          map[int]float64         // lease year -> absolute monthly amount for Market reviews
	FlatPayments       bool                    // motor vehicle: increment policy never applies
}

// PaymentRow is one monthly payment in the schedule.
type PaymentRow struct {
	Payment     int // 1-based sequence number
	LeaseYear   int // 1-based
	PaymentDate time.Time
	Amount      float64
	Note        string
}

// CashFlowRow is the 1:1 cash-flow transformation of a payment row.
type CashFlowRow struct {
	PaymentDate    time.Time
	BaseRent       float64
	Other          float64
	Parking        float64
	TotalCashFlows float64
	LeaseComponent float64
}

func validateTerms(terms Terms) error {
	if terms.Start.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if terms.End.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if terms.End.Before(terms.Start) {
		return fmt.Errorf("end date %s is before start date %s",
			terms.End.Format(datetime.DateLayout), terms.Start.Format(datetime.DateLayout))
	}
	if terms.AnnualRent <= 0 {
		return fmt.Errorf("annual rent must be positive")
	}
	for year, method := range terms.Increments {
		if year < 1 {
			return fmt.Errorf("increment method recorded for invalid lease year %d", year)
		}
		if !method.Valid() {
			return fmt.Errorf("unknown increment method %q for lease year %d", method, year)
		}
	}
	return nil
}

// GeneratePayments produces the ordered monthly payment schedule for the
// given terms. Payment dates are normalized to the first of the month; a new
// lease year begins every 12 iterated months and applies that year's
// increment method. When Increments records a method for year 1 it is applied
// directly to the first payment, since year 1 has no preceding boundary.
func GeneratePayments(logger *zap.Logger, terms Terms, policy BoundaryPolicy) ([]PaymentRow, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	monthly := mathutil.Round(terms.AnnualRent / constants.MonthsPerYear)
	currentAmount := monthly
	currentDate := datetime.FirstOfMonth(terms.Start)
	endDate := datetime.Normalize(terms.End)

	var rows []PaymentRow
	payment := 1
	leaseYear := 1
	monthsInYear := 0
	firstNote := ""

	if !terms.FlatPayments {
		currentAmount, firstNote = applyIncrement(terms, 1, currentAmount)
	}

	for withinBoundary(currentDate, endDate, policy) {
		note := ""
		if payment == 1 {
			note = firstNote
		}

		if monthsInYear == constants.MonthsPerYear {
			leaseYear++
			monthsInYear = 0
			if !terms.FlatPayments {
				currentAmount, note = applyIncrement(terms, leaseYear, currentAmount)
				if note != "" {
					logger.Debug(fmt.Sprintf("lease year %d: %s, monthly amount now %.2f", leaseYear, note, currentAmount),
						zap.String("op", "schedule.GeneratePayments"),
					)
				}
			}
		}

		rows = append(rows, PaymentRow{
			Payment:     payment,
			LeaseYear:   leaseYear,
			PaymentDate: currentDate,
			Amount:      mathutil.Round(currentAmount),
			Note:        note,
		})

		currentDate = datetime.AddMonths(currentDate, 1)
		payment++
		monthsInYear++
	}

	return rows, nil
}

func withinBoundary(current, end time.Time, policy BoundaryPolicy) bool {
	if policy == IncludeEndMonth {
		return !current.After(end)
	}
	return current.Before(end)
}

// applyIncrement returns the monthly amount for a new lease year plus the
// audit note for the rule that fired. Absent or None methods leave the amount
// unchanged with a blank note.
func applyIncrement(terms Terms, leaseYear int, currentAmount float64) (float64, string) {
	switch terms.Increments[leaseYear] {
	case IncrementFixed:
		return currentAmount * (1 + terms.FixedIncrementRate/constants.PercentageMultiplier), NoteFixedIncrement
	case IncrementCPI:
		return currentAmount * (1 + terms.CPIRate/constants.PercentageMultiplier), NoteCPIIncrement
	case IncrementMarket:
		return terms.Overrides[leaseYear], NoteMarketReview
	}
	return currentAmount, ""
}

// BuildCashFlows derives the cash-flow rows from a payment schedule. Other
// and parking are flat monthly components added to base rent; allocation is
// the fraction of the total cash flow allocated to the lease component.
func BuildCashFlows(payments []PaymentRow, other, parking, allocation float64) []CashFlowRow {
	rows := make([]CashFlowRow, len(payments))
	for i, p := range payments {
		total := p.Amount + other + parking
		rows[i] = CashFlowRow{
			PaymentDate:    p.PaymentDate,
			BaseRent:       p.Amount,
			Other:          other,
			Parking:        parking,
			TotalCashFlows: total,
			LeaseComponent: total * allocation,
		}
	}
	return rows
}
