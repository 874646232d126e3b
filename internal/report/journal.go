// Package report combines computed valuations with opening-balance snapshots
// to produce the journal-entry and balance-summary tables for a reporting
// window, for single leases and for multi-lease summary and detail reports.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/internal/valuation"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
)

// JournalRow is one fixed-position row of the 15-row journal table. Rows
// without an amount (spacers and the footer) have HasAmount false.
type JournalRow struct {
	Code      string
	Label     string
	Amount    float64
	HasAmount bool
}

// Journal table row positions (0-based indices into the 15-row table).
const (
	journalRowRecognitionAsset      = 2
	journalRowRecognitionCurrent    = 3
	journalRowRecognitionNonCurrent = 4
	journalRowMovementNonCurrent    = 8
	journalRowMovementCurrent       = 9
	journalRowDepreciation          = 10
	journalRowInterest              = 11
	journalRowAccDepr               = 12
	journalRowExpense               = 13
	journalRowFooter                = 14
	journalRowCount                 = 15
)

func amountRow(code string, amount float64) JournalRow {
	return JournalRow{Code: code, Label: AccountLabels[code], Amount: mathutil.Round(amount), HasAmount: true}
}

// BuildJournal produces the fixed 15-row journal table for the window
// [openingDate, closingDate]. Rows 3-5 are the initial recognition slice;
// rows 9-14 the period movement slice. When the closing date reaches the
// lease expiry the movement rows switch to final-settlement formulas that
// null out the remaining balances, referencing every period from inception to
// closing net of the amounts already recognized in the opening balance.
func BuildJournal(v *valuation.Valuation, openingDate, closingDate time.Time, ob lease.OpeningBalance) []JournalRow {
	opening := datetime.Normalize(openingDate)
	closing := datetime.Normalize(closingDate)
	expiry := datetime.Normalize(v.Lease.ExpiryDate)
	settlement := !closing.Before(expiry)

	// Window sums over the liability and asset rows. Payments are stored
	// negative, so these sums are negative for any non-empty range.
	var beforeOpening, windowMovement, toClosingMovement float64
	var windowInterest, toClosingInterest float64
	var windowDepreciation, toClosingDepreciation float64
	for i, p := range v.Payments {
		d := datetime.Normalize(p.PaymentDate)
		movement := v.LiabilityRows[i].Payment + v.LiabilityRows[i].InterestExpense
		if d.Before(opening) {
			beforeOpening += movement
		}
		if !d.After(closing) {
			toClosingMovement += movement
			toClosingInterest += v.LiabilityRows[i].InterestExpense
			toClosingDepreciation += v.AssetRows[i].Depreciation
			if !d.Before(opening) {
				windowMovement += movement
				windowInterest += v.LiabilityRows[i].InterestExpense
				windowDepreciation += v.AssetRows[i].Depreciation
			}
		}
	}

	var nonCurrent float64
	switch {
	case ob.LeaseLiabilityNonCurrent == 0:
		nonCurrent = 0
	case settlement:
		nonCurrent = -ob.LeaseLiabilityNonCurrent
	default:
		nonCurrent = -windowMovement
	}

	var current, depreciation, interest float64
	if settlement {
		current = -ob.LeaseLiabilityCurrent
		depreciation = math.Abs(toClosingDepreciation) - math.Abs(ob.AccDeprRightToUseAssets)
		interest = toClosingInterest - ob.InterestExpenseRent
	} else {
		current = -(windowMovement + nonCurrent)
		depreciation = math.Abs(windowDepreciation)
		interest = windowInterest
	}
	// Round the movement rows first so the balancing expense row closes the
	// slice to exactly zero at two decimals.
	nonCurrent = mathutil.Round(nonCurrent)
	current = mathutil.Round(current)
	depreciation = mathutil.Round(depreciation)
	interest = mathutil.Round(interest)
	accDepr := -depreciation
	expense := -(nonCurrent + current + depreciation + interest + accDepr)

	expenseCode := CodeRentExpense
	if v.Lease.Kind == lease.KindMotorVehicle {
		expenseCode = CodeVehicleExpense
	}

	rows := make([]JournalRow, journalRowCount)
	rows[journalRowRecognitionAsset] = amountRow(CodeRightToUseAssets, v.PresentValue)
	rows[journalRowRecognitionCurrent] = amountRow(CodeLiabilityCurrent, beforeOpening)
	rows[journalRowRecognitionNonCurrent] = amountRow(CodeLiabilityNonCurrent, -(v.PresentValue + beforeOpening))
	rows[journalRowMovementNonCurrent] = amountRow(CodeLiabilityNonCurrent, nonCurrent)
	rows[journalRowMovementCurrent] = amountRow(CodeLiabilityCurrent, current)
	rows[journalRowDepreciation] = amountRow(CodeDepreciationExpense, depreciation)
	rows[journalRowInterest] = amountRow(CodeInterestExpenseRent, interest)
	rows[journalRowAccDepr] = amountRow(CodeAccDeprAssets, accDepr)
	rows[journalRowExpense] = amountRow(expenseCode, expense)
	rows[journalRowFooter] = JournalRow{Label: fmt.Sprintf("(Journal at %s)", datetime.FormatDMY(closing))}

	return rows
}
