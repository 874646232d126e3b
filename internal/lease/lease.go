// Package lease defines the validated lease data model shared by the
// calculation pipeline, the store, and the report builders.
package lease

import (
	"fmt"
	"time"

	"github.com/leaseledger/leaseledger/pkg/constants"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// Kind distinguishes the two lease variants.
type Kind string

const (
	KindProperty     Kind = "Property"
	KindMotorVehicle Kind = "Motor Vehicle"
)

// OpeningBalance is a snapshot of account balances as of a specific calendar
// date, used as the starting point for a reporting window's movement
// calculation. At most one snapshot may exist per normalized date per lease.
type OpeningBalance struct {
	OpeningDate              time.Time
	IsNewLeaseExtension      bool
	RightToUseAssets         float64
	AccDeprRightToUseAssets  float64
	LeaseLiabilityCurrent    float64
	LeaseLiabilityNonCurrent float64
	DepreciationExpense      float64
	InterestExpenseRent      float64
	RentExpense              float64
}

// Lease holds the full record for either variant. Fields that apply to only
// one variant are zero-valued on the other; Validate enforces the required
// set per kind.
type Lease struct {
	ID      string
	LeaseID string
	Entity  string
	Lessor  string
	Branch  string
	Kind    Kind

	// Property
	PropertyAddress    string
	CommencementDate   time.Time
	OptionsYears       int
	FixedIncrementRate float64 // percent
	RbaCpiRate         float64 // percent

	// Motor vehicle
	Description  string
	VinSerialNo  string
	RegoNo       string
	EngineNumber string
	VehicleType  string
	DeliveryDate time.Time

	ExpiryDate    time.Time
	AnnualRent    float64
	BorrowingRate float64 // percent

	IncrementMethods map[int]schedule.IncrementMethod
	OverrideAmounts  map[int]float64

	OpeningBalances []OpeningBalance
}

// StartDate is the commencement date for property leases and the delivery
// date for motor vehicle leases.
func (l *Lease) StartDate() time.Time {
	if l.Kind == KindMotorVehicle {
		return l.DeliveryDate
	}
	return l.CommencementDate
}

// FinalEndDate is the contractual expiry extended by any exercised option
// years (property only; motor vehicle leases have no options).
func (l *Lease) FinalEndDate() time.Time {
	if l.Kind == KindProperty && l.OptionsYears > 0 {
		return l.ExpiryDate.AddDate(l.OptionsYears, 0, 0)
	}
	return l.ExpiryDate
}

// Title is the headline used in reports: "{lessor} {property address}" for
// property leases, "{lessor} {rego no.}" for motor vehicles.
func (l *Lease) Title() string {
	if l.Kind == KindMotorVehicle {
		return fmt.Sprintf("%s %s", l.Lessor, l.RegoNo)
	}
	return fmt.Sprintf("%s %s", l.Lessor, l.PropertyAddress)
}

// Validate checks that the lease carries every field the calculation engine
// needs. Computation must never start on an incomplete record.
func (l *Lease) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lease id is required")
	}
	switch l.Kind {
	case KindProperty:
		if l.CommencementDate.IsZero() {
			return fmt.Errorf("lease %s: commencement date is required", l.ID)
		}
	case KindMotorVehicle:
		if l.DeliveryDate.IsZero() {
			return fmt.Errorf("lease %s: delivery date is required", l.ID)
		}
		if len(l.IncrementMethods) > 0 || len(l.OverrideAmounts) > 0 {
			return fmt.Errorf("lease %s: motor vehicle leases do not take increment methods", l.ID)
		}
	default:
		return fmt.Errorf("lease %s: unknown lease type %q", l.ID, l.Kind)
	}
	if l.ExpiryDate.IsZero() {
		return fmt.Errorf("lease %s: expiry date is required", l.ID)
	}
	if l.FinalEndDate().Before(l.StartDate()) {
		return fmt.Errorf("lease %s: expiry date precedes start date", l.ID)
	}
	if l.AnnualRent <= 0 {
		return fmt.Errorf("lease %s: annual rent must be positive", l.ID)
	}
	if l.BorrowingRate <= 0 {
		return fmt.Errorf("lease %s: borrowing rate is required", l.ID)
	}
	if l.OptionsYears < 0 {
		return fmt.Errorf("lease %s: option years cannot be negative", l.ID)
	}

	for year, method := range l.IncrementMethods {
		if year < 1 {
			return fmt.Errorf("lease %s: increment method recorded for invalid lease year %d", l.ID, year)
		}
		if !method.Valid() {
			return fmt.Errorf("lease %s: unknown increment method %q for year %d", l.ID, method, year)
		}
		if method == schedule.IncrementMarket {
			if _, ok := l.OverrideAmounts[year]; !ok {
				return fmt.Errorf("lease %s: market review in year %d has no override amount", l.ID, year)
			}
		}
	}

	seen := make(map[time.Time]bool, len(l.OpeningBalances))
	for _, ob := range l.OpeningBalances {
		if ob.OpeningDate.IsZero() {
			return fmt.Errorf("lease %s: opening balance without a date", l.ID)
		}
		date := datetime.Normalize(ob.OpeningDate)
		if seen[date] {
			return fmt.Errorf("lease %s: duplicate opening balance for %s", l.ID, date.Format(datetime.DateLayout))
		}
		seen[date] = true
	}

	return nil
}

// CommittedYears is the total contractually committed duration including
// options, in whole years. Months are counted from start to expiry with a
// day-of-month adjustment: the partial final month counts only when the end
// day runs past the anniversary day. The month count plus option years is
// then rounded up to whole years.
func (l *Lease) CommittedYears() int {
	start := l.StartDate()
	end := l.ExpiryDate
	if start.IsZero() || end.IsZero() {
		return 0
	}

	months := datetime.MonthsBetween(start, end)
	if end.Day() > start.Day() {
		months++
	}
	if l.Kind == KindProperty {
		months += l.OptionsYears * constants.MonthsPerYear
	}
	if months <= 0 {
		return 0
	}

	years := months / constants.MonthsPerYear
	if months%constants.MonthsPerYear != 0 {
		years++
	}
	return years
}

// OpeningBalanceAt returns the snapshot whose normalized date equals the
// given date.
func (l *Lease) OpeningBalanceAt(date time.Time) (OpeningBalance, bool) {
	date = datetime.Normalize(date)
	for _, ob := range l.OpeningBalances {
		if datetime.Normalize(ob.OpeningDate).Equal(date) {
			return ob, true
		}
	}
	return OpeningBalance{}, false
}

// ScheduleTerms adapts the lease to the payment generator's input.
func (l *Lease) ScheduleTerms() schedule.Terms {
	return schedule.Terms{
		Start:              l.StartDate(),
		End:                l.FinalEndDate(),
		AnnualRent:         l.AnnualRent,
		FixedIncrementRate: l.FixedIncrementRate,
		CPIRate:            l.RbaCpiRate,
		Increments:         l.IncrementMethods,
		Overrides:          l.OverrideAmounts,
		FlatPayments:       l.Kind == KindMotorVehicle,
	}
}
