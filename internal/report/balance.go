package report

import (
	"fmt"
	"time"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/internal/valuation"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
)

// BalanceRow is one account line of the balance-summary table. The invariant
// Closing == Opening + Movement holds for every row at two decimals.
type BalanceRow struct {
	Code     string
	Label    string
	Opening  float64
	Movement float64
	Closing  float64
}

// BalanceSummary is the fixed-shape table for one lease: a header row of
// column labels followed by seven account lines. The expense line (rent for
// property, vehicle for motor) is the negative sum of the other six
// movements so the table balances.
type BalanceSummary struct {
	OpeningLabel  string
	MovementLabel string
	ClosingLabel  string
	Rows          [7]BalanceRow
}

// Balance table row positions.
const (
	balanceRowAsset = iota
	balanceRowAccDepr
	balanceRowCurrent
	balanceRowNonCurrent
	balanceRowDepreciation
	balanceRowInterest
	balanceRowExpense
)

func columnLabels(openingDate, closingDate time.Time) (string, string, string) {
	return fmt.Sprintf("Opening Balance 31/12/%d", openingDate.Year()-1),
		fmt.Sprintf("Movement FY %d", closingDate.Year()),
		fmt.Sprintf("Closing Balance %s", datetime.FormatDMY(closingDate))
}

// BuildBalanceSummary combines the opening-balance snapshot with movements
// derived from the journal. For a new lease extension the opening column is
// zero and the initial-recognition journal rows fold into the movement
// column: the asset movement picks up the present value and the liability
// movements pick up the recognition rows.
func BuildBalanceSummary(v *valuation.Valuation, openingDate, closingDate time.Time,
	ob lease.OpeningBalance, journal []JournalRow) BalanceSummary {

	openingLabel, movementLabel, closingLabel := columnLabels(openingDate, closingDate)
	summary := BalanceSummary{
		OpeningLabel:  openingLabel,
		MovementLabel: movementLabel,
		ClosingLabel:  closingLabel,
	}

	extension := ob.IsNewLeaseExtension

	opening := [7]float64{}
	if !extension {
		opening = [7]float64{
			balanceRowAsset:        ob.RightToUseAssets,
			balanceRowAccDepr:      ob.AccDeprRightToUseAssets,
			balanceRowCurrent:      ob.LeaseLiabilityCurrent,
			balanceRowNonCurrent:   ob.LeaseLiabilityNonCurrent,
			balanceRowDepreciation: ob.DepreciationExpense,
			balanceRowInterest:     ob.InterestExpenseRent,
			balanceRowExpense:      ob.RentExpense,
		}
	}

	movement := [7]float64{
		balanceRowAccDepr:      journal[journalRowAccDepr].Amount,
		balanceRowCurrent:      journal[journalRowMovementCurrent].Amount,
		balanceRowNonCurrent:   journal[journalRowMovementNonCurrent].Amount,
		balanceRowDepreciation: journal[journalRowDepreciation].Amount,
		balanceRowInterest:     journal[journalRowInterest].Amount,
	}
	if extension {
		movement[balanceRowAsset] = journal[journalRowRecognitionAsset].Amount
		movement[balanceRowCurrent] += journal[journalRowRecognitionCurrent].Amount
		movement[balanceRowNonCurrent] += journal[journalRowRecognitionNonCurrent].Amount
	}

	balancing := 0.0
	for i := balanceRowAsset; i < balanceRowExpense; i++ {
		movement[i] = mathutil.Round(movement[i])
		balancing += movement[i]
	}
	movement[balanceRowExpense] = -balancing

	expenseCode := CodeRentExpense
	if v.Lease.Kind == lease.KindMotorVehicle {
		expenseCode = CodeVehicleExpense
	}
	codes := [7]string{
		CodeRightToUseAssets,
		CodeAccDeprAssets,
		CodeLiabilityCurrent,
		CodeLiabilityNonCurrent,
		CodeDepreciationExpense,
		CodeInterestExpenseRent,
		expenseCode,
	}

	for i, code := range codes {
		summary.Rows[i] = BalanceRow{
			Code:     code,
			Label:    AccountLabels[code],
			Opening:  mathutil.Round(opening[i]),
			Movement: movement[i],
			Closing:  mathutil.Round(opening[i]) + movement[i],
		}
	}

	return summary
}
