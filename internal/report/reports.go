package report

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/internal/valuation"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
)

// Lease inclusion filters for multi-lease reports.
const (
	IncludeAll      = "All"
	IncludeProperty = "Property"
	IncludeMotor    = "Motor"
)

// Params are the reporting inputs for the multi-lease reports.
type Params struct {
	OpeningDate time.Time
	ClosingDate time.Time
	Include     string // All, Property or Motor
	Valuation   valuation.Parameters
}

// Validate checks the report parameters before any computation starts.
func (p Params) Validate() error {
	if p.OpeningDate.IsZero() || p.ClosingDate.IsZero() {
		return fmt.Errorf("opening and closing dates are required")
	}
	if p.ClosingDate.Before(p.OpeningDate) {
		return fmt.Errorf("closing date %s precedes opening date %s",
			datetime.FormatDMY(p.ClosingDate), datetime.FormatDMY(p.OpeningDate))
	}
	switch p.Include {
	case IncludeAll, IncludeProperty, IncludeMotor:
	default:
		return fmt.Errorf("invalid lease filter %q: must be %s, %s or %s",
			p.Include, IncludeAll, IncludeProperty, IncludeMotor)
	}
	return nil
}

// MissingOpeningBalanceError reports every lease that has no opening-balance
// snapshot for the requested opening date. Report generation is blocked
// until all are supplied.
type MissingOpeningBalanceError struct {
	OpeningDate time.Time
	Leases      []string
}

func (e *MissingOpeningBalanceError) Error() string {
	return fmt.Sprintf("no opening balance recorded at %s for %d lease(s): %s",
		e.OpeningDate.Format(datetime.DateLayout), len(e.Leases), strings.Join(e.Leases, ", "))
}

// LeaseBalance is one lease's computed balance-summary table plus the data
// needed to render it under its headline.
type LeaseBalance struct {
	Title   string
	Kind    lease.Kind
	Journal []JournalRow
	Summary BalanceSummary
}

// DetailReport holds one balance-summary table per included lease.
type DetailReport struct {
	OpeningDate time.Time
	ClosingDate time.Time
	Leases      []LeaseBalance
}

// AccountLine is one lease's contribution to an account section of the
// summary report.
type AccountLine struct {
	Title    string
	Opening  float64
	Movement float64
	Closing  float64
}

// AccountSection aggregates one account code across all included leases.
type AccountSection struct {
	Code  string
	Label string
	Lines []AccountLine
	Total AccountLine
}

// SummaryReport holds one section per account code plus per-section totals.
type SummaryReport struct {
	OpeningLabel  string
	MovementLabel string
	ClosingLabel  string
	Sections      []AccountSection
}

func includeLease(l *lease.Lease, filter string) bool {
	switch filter {
	case IncludeProperty:
		return l.Kind == lease.KindProperty
	case IncludeMotor:
		return l.Kind == lease.KindMotorVehicle
	}
	return true
}

// buildLeaseBalances computes the balance table for every included lease,
// property leases first, collecting leases with no opening-balance snapshot
// into a single blocking error rather than failing on the first one.
func buildLeaseBalances(logger *zap.Logger, leases []*lease.Lease, params Params) ([]LeaseBalance, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var included []*lease.Lease
	for _, l := range leases {
		if includeLease(l, params.Include) && l.Kind == lease.KindProperty {
			included = append(included, l)
		}
	}
	for _, l := range leases {
		if includeLease(l, params.Include) && l.Kind == lease.KindMotorVehicle {
			included = append(included, l)
		}
	}

	var missing []string
	var balances []LeaseBalance
	for _, l := range included {
		ob, ok := l.OpeningBalanceAt(params.OpeningDate)
		if !ok {
			missing = append(missing, l.Title())
			continue
		}

		vparams := params.Valuation
		vparams.OpeningDate = params.OpeningDate
		vparams.ClosingDate = params.ClosingDate
		v, err := valuation.Compute(logger, l, vparams)
		if err != nil {
			return nil, err
		}

		journal := BuildJournal(v, params.OpeningDate, params.ClosingDate, ob)
		summary := BuildBalanceSummary(v, params.OpeningDate, params.ClosingDate, ob, journal)
		balances = append(balances, LeaseBalance{
			Title:   l.Title(),
			Kind:    l.Kind,
			Journal: journal,
			Summary: summary,
		})
	}

	if len(missing) > 0 {
		return nil, &MissingOpeningBalanceError{
			OpeningDate: datetime.Normalize(params.OpeningDate),
			Leases:      missing,
		}
	}

	logger.Debug(fmt.Sprintf("computed balance tables for %d leases", len(balances)),
		zap.String("op", "report.buildLeaseBalances"),
	)
	return balances, nil
}

// BuildDetailReport produces the per-lease balance tables for the window.
func BuildDetailReport(logger *zap.Logger, leases []*lease.Lease, params Params) (*DetailReport, error) {
	balances, err := buildLeaseBalances(logger, leases, params)
	if err != nil {
		return nil, err
	}
	return &DetailReport{
		OpeningDate: datetime.Normalize(params.OpeningDate),
		ClosingDate: datetime.Normalize(params.ClosingDate),
		Leases:      balances,
	}, nil
}

// BuildSummaryReport aggregates every account code across the included
// leases. A lease contributes zeros to the expense account that does not
// apply to its kind, keeping section shapes identical across filters.
func BuildSummaryReport(logger *zap.Logger, leases []*lease.Lease, params Params) (*SummaryReport, error) {
	balances, err := buildLeaseBalances(logger, leases, params)
	if err != nil {
		return nil, err
	}

	openingLabel, movementLabel, closingLabel := columnLabels(params.OpeningDate, params.ClosingDate)
	out := &SummaryReport{
		OpeningLabel:  openingLabel,
		MovementLabel: movementLabel,
		ClosingLabel:  closingLabel,
	}

	for _, code := range AccountOrder {
		section := AccountSection{Code: code, Label: AccountLabels[code]}
		for _, lb := range balances {
			line := AccountLine{Title: lb.Title}
			if row, ok := balanceRowFor(lb, code); ok {
				line.Opening = row.Opening
				line.Movement = row.Movement
				line.Closing = row.Closing
			}
			section.Lines = append(section.Lines, line)
			section.Total.Opening += line.Opening
			section.Total.Movement += line.Movement
			section.Total.Closing += line.Closing
		}
		section.Total.Title = "Total"
		section.Total.Opening = mathutil.Round(section.Total.Opening)
		section.Total.Movement = mathutil.Round(section.Total.Movement)
		section.Total.Closing = mathutil.Round(section.Total.Closing)
		out.Sections = append(out.Sections, section)
	}

	return out, nil
}

// balanceRowFor resolves an account code to a lease's balance row. The
// expense codes are kind-specific: a property lease has no vehicle-expense
// row and a motor vehicle no rent-expense row.
func balanceRowFor(lb LeaseBalance, code string) (BalanceRow, bool) {
	switch code {
	case CodeRentExpense:
		if lb.Kind != lease.KindProperty {
			return BalanceRow{}, false
		}
	case CodeVehicleExpense:
		if lb.Kind != lease.KindMotorVehicle {
			return BalanceRow{}, false
		}
	}
	for _, row := range lb.Summary.Rows {
		if row.Code == code {
			return row, true
		}
	}
	return BalanceRow{}, false
}
