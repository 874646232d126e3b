// Package rouasset builds the right-of-use asset depreciation schedule: the
// capitalized present value depreciated straight-line across the non-zero
// payment periods, with a final catch-up period forcing the ending balance to
// zero.
package rouasset

import (
	"fmt"
	"time"

	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// Row is one period of the asset schedule. Depreciation is stored negative.
type Row struct {
	Date           time.Time
	Period         int // 1-based
	AssetBeginning float64
	Depreciation   float64
	AssetEnding    float64
}

// GenerateSchedule produces one row per payment. The straight-line divisor is
// the count of periods with positive base rent; once the period index reaches
// that count the remaining balance is written off in full, so the final row's
// ending balance is zero by construction.
func GenerateSchedule(payments []schedule.PaymentRow, cashFlows []schedule.CashFlowRow, presentValue float64) ([]Row, error) {
	if len(payments) == 0 {
		return nil, nil
	}
	if len(cashFlows) != len(payments) {
		return nil, fmt.Errorf("cash flow rows (%d) do not match payment rows (%d)", len(cashFlows), len(payments))
	}

	nonZeroCount := 0
	for _, cf := range cashFlows {
		if cf.BaseRent > 0 {
			nonZeroCount++
		}
	}
	if nonZeroCount == 0 {
		return nil, fmt.Errorf("no periods with positive base rent to depreciate over")
	}

	rows := make([]Row, len(payments))
	for i, p := range payments {
		period := i + 1

		assetBeginning := presentValue
		if i > 0 {
			assetBeginning = rows[i-1].AssetEnding
		}

		var depreciation float64
		switch {
		case i == 0:
			depreciation = -assetBeginning / float64(nonZeroCount)
		case period >= nonZeroCount:
			depreciation = -rows[i-1].AssetEnding
		default:
			depreciation = rows[i-1].Depreciation
		}

		rows[i] = Row{
			Date:           p.PaymentDate,
			Period:         period,
			AssetBeginning: assetBeginning,
			Depreciation:   depreciation,
			AssetEnding:    assetBeginning + depreciation,
		}
	}

	return rows, nil
}
