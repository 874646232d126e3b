// Package valuation runs the full calculation pipeline for a single lease:
// payment schedule, cash flows, present value, right-of-use asset schedule,
// and lease liability roll-forward. Every function is a deterministic mapping
// from lease terms and report parameters to row tables; nothing is persisted
// or mutated, so concurrent valuations of different leases are safe.
package valuation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/pkg/liability"
	"github.com/leaseledger/leaseledger/pkg/presentvalue"
	"github.com/leaseledger/leaseledger/pkg/rouasset"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// Parameters are the reporting inputs supplied by the caller.
type Parameters struct {
	OpeningDate                time.Time
	ClosingDate                time.Time
	PaymentTiming              presentvalue.Timing
	AllocationToLeaseComponent float64
	Other                      float64
	Parking                    float64
	BoundaryPolicy             schedule.BoundaryPolicy
}

// DefaultParameters mirror the reference workbook: payments at the beginning
// of the period, the full cash flow allocated to the lease component, and no
// other or parking components.
func DefaultParameters() Parameters {
	return Parameters{
		PaymentTiming:              presentvalue.Beginning,
		AllocationToLeaseComponent: 1.0,
	}
}

// Valuation holds every derived table for one lease. The asset and liability
// rows are indexed 1:1 with the payment rows.
type Valuation struct {
	Lease         *lease.Lease
	Payments      []schedule.PaymentRow
	CashFlows     []schedule.CashFlowRow
	PresentValue  float64
	MonthlyRate   float64
	PaymentTiming presentvalue.Timing
	AssetRows     []rouasset.Row
	LiabilityRows []liability.Row
}

// Compute validates the lease and builds all derived tables.
func Compute(logger *zap.Logger, l *lease.Lease, params Parameters) (*Valuation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if params.AllocationToLeaseComponent < 0 || params.AllocationToLeaseComponent > 1 {
		return nil, fmt.Errorf("allocation to lease component must be within [0, 1]")
	}

	payments, err := schedule.GeneratePayments(logger, l.ScheduleTerms(), params.BoundaryPolicy)
	if err != nil {
		return nil, fmt.Errorf("lease %s: %w", l.ID, err)
	}

	cashFlows := schedule.BuildCashFlows(payments, params.Other, params.Parking, params.AllocationToLeaseComponent)
	leaseComponents := make([]float64, len(cashFlows))
	for i, cf := range cashFlows {
		leaseComponents[i] = cf.LeaseComponent
	}

	monthlyRate := presentvalue.MonthlyRate(l.BorrowingRate)
	pv, err := presentvalue.Calculate(leaseComponents, monthlyRate, params.PaymentTiming)
	if err != nil {
		return nil, fmt.Errorf("lease %s: %w", l.ID, err)
	}

	assetRows, err := rouasset.GenerateSchedule(payments, cashFlows, pv)
	if err != nil {
		return nil, fmt.Errorf("lease %s: %w", l.ID, err)
	}

	liabilityRows, err := liability.GenerateSchedule(payments, cashFlows, pv, monthlyRate, params.PaymentTiming)
	if err != nil {
		return nil, fmt.Errorf("lease %s: %w", l.ID, err)
	}

	logger.Debug(fmt.Sprintf("computed valuation for lease %s: %d payments, present value %.2f",
		l.ID, len(payments), pv),
		zap.String("op", "valuation.Compute"),
	)

	return &Valuation{
		Lease:         l,
		Payments:      payments,
		CashFlows:     cashFlows,
		PresentValue:  pv,
		MonthlyRate:   monthlyRate,
		PaymentTiming: params.PaymentTiming,
		AssetRows:     assetRows,
		LiabilityRows: liabilityRows,
	}, nil
}

// Summary computes the short/long-term liability split for the window.
func (v *Valuation) Summary(start, end time.Time) liability.Summary {
	return liability.Summarize(v.LiabilityRows, v.Payments, start, end)
}

// InterestAccretion sums interest expense from start onward.
func (v *Valuation) InterestAccretion(start time.Time) float64 {
	return liability.InterestAccretion(v.LiabilityRows, v.Payments, start)
}

// PaymentsDue builds the maturity ladder for the closing date.
func (v *Valuation) PaymentsDue(closing time.Time) []liability.PaymentsDueRow {
	return liability.PaymentsDue(v.LiabilityRows, v.Payments, closing)
}
