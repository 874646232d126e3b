package report

// Account codes used by the journal and balance tables. The chart is fixed:
// the engine only ever posts to these eight accounts.
const (
	CodeRightToUseAssets    = "16400"
	CodeAccDeprAssets       = "16405"
	CodeLiabilityCurrent    = "22005"
	CodeLiabilityNonCurrent = "22010"
	CodeDepreciationExpense = "60080"
	CodeInterestExpenseRent = "60275"
	CodeRentExpense         = "60270"
	CodeVehicleExpense      = "60390"
)

// AccountLabels maps each account code to its report label.
var AccountLabels = map[string]string{
	CodeRightToUseAssets:    "Right to Use the Assets",
	CodeAccDeprAssets:       "Acc.Depr. Right to Use the Assets",
	CodeLiabilityCurrent:    "Lease Liability - Current",
	CodeLiabilityNonCurrent: "Lease Liability - Non Current",
	CodeDepreciationExpense: "Depreciation Expense",
	CodeInterestExpenseRent: "Interest Expense Rent",
	CodeRentExpense:         "Rent Expense",
	CodeVehicleExpense:      "Vehicle Expense",
}

// AccountOrder is the fixed ordering of account sections in the summary
// report. Rent expense applies to property leases, vehicle expense to motor
// vehicles.
var AccountOrder = []string{
	CodeRightToUseAssets,
	CodeAccDeprAssets,
	CodeLiabilityCurrent,
	CodeLiabilityNonCurrent,
	CodeDepreciationExpense,
	CodeInterestExpenseRent,
	CodeRentExpense,
	CodeVehicleExpense,
}
