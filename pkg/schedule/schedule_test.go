package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaseledger/leaseledger/pkg/datetime"
)

func termsFixture() Terms {
	return Terms{
		Start:      datetime.MustParseTime(datetime.DateLayout, "2022-05-01"),
		End:        datetime.MustParseTime(datetime.DateLayout, "2024-05-01"),
		AnnualRent: 120000,
	}
}

func TestGeneratePaymentsTwoYearLease(t *testing.T) {
	rows, err := GeneratePayments(nil, termsFixture(), ExcludeEndMonth)
	require.NoError(t, err)
	require.Len(t, rows, 24)

	assert.Equal(t, 1, rows[0].Payment)
	assert.Equal(t, 24, rows[23].Payment)
	assert.True(t, rows[0].PaymentDate.Equal(datetime.MustParseTime(datetime.DateLayout, "2022-05-01")))
	assert.True(t, rows[23].PaymentDate.Equal(datetime.MustParseTime(datetime.DateLayout, "2024-04-01")))

	for i, row := range rows {
		assert.InDelta(t, 10000.00, row.Amount, 0.001, "payment %d", row.Payment)
		assert.Empty(t, row.Note)
		if i > 0 {
			assert.True(t, rows[i-1].PaymentDate.Before(row.PaymentDate),
				"payment dates must be strictly increasing")
			assert.Equal(t, 1, datetime.MonthsBetween(rows[i-1].PaymentDate, row.PaymentDate))
		}
	}

	for _, row := range rows[:12] {
		assert.Equal(t, 1, row.LeaseYear)
	}
	for _, row := range rows[12:] {
		assert.Equal(t, 2, row.LeaseYear)
	}
}

func TestGeneratePaymentsMarketReview(t *testing.T) {
	terms := termsFixture()
	terms.Increments = map[int]IncrementMethod{2: IncrementMarket}
	terms.Overrides = map[int]float64{2: 9500}

	rows, err := GeneratePayments(nil, terms, ExcludeEndMonth)
	require.NoError(t, err)
	require.Len(t, rows, 24)

	for _, row := range rows[:12] {
		assert.InDelta(t, 10000.00, row.Amount, 0.001)
	}
	for _, row := range rows[12:] {
		assert.InDelta(t, 9500.00, row.Amount, 0.001)
	}
	assert.Equal(t, NoteMarketReview, rows[12].Note)
	assert.Empty(t, rows[13].Note)
}

func TestGeneratePaymentsFixedIncrement(t *testing.T) {
	terms := termsFixture()
	terms.FixedIncrementRate = 3
	terms.Increments = map[int]IncrementMethod{2: IncrementFixed}

	rows, err := GeneratePayments(nil, terms, ExcludeEndMonth)
	require.NoError(t, err)
	require.Len(t, rows, 24)
	assert.InDelta(t, 10000.00, rows[11].Amount, 0.001)
	assert.InDelta(t, 10300.00, rows[12].Amount, 0.001)
	assert.Equal(t, NoteFixedIncrement, rows[12].Note)
}

func TestGeneratePaymentsCPIIncrement(t *testing.T) {
	terms := termsFixture()
	terms.CPIRate = 2.5
	terms.Increments = map[int]IncrementMethod{2: IncrementCPI}

	rows, err := GeneratePayments(nil, terms, ExcludeEndMonth)
	require.NoError(t, err)
	assert.InDelta(t, 10250.00, rows[12].Amount, 0.001)
	assert.Equal(t, NoteCPIIncrement, rows[12].Note)
}

func TestGeneratePaymentsFirstYearIncrement(t *testing.T) {
	terms := termsFixture()
	terms.FixedIncrementRate = 3
	terms.Increments = map[int]IncrementMethod{1: IncrementFixed}

	rows, err := GeneratePayments(nil, terms, ExcludeEndMonth)
	require.NoError(t, err)
	assert.InDelta(t, 10300.00, rows[0].Amount, 0.001)
	assert.Equal(t, NoteFixedIncrement, rows[0].Note)
	assert.Empty(t, rows[1].Note)
}

func TestGeneratePaymentsFlatPayments(t *testing.T) {
	terms := termsFixture()
	terms.FlatPayments = true
	terms.FixedIncrementRate = 3
	terms.Increments = map[int]IncrementMethod{1: IncrementFixed, 2: IncrementFixed}

	rows, err := GeneratePayments(nil, terms, ExcludeEndMonth)
	require.NoError(t, err)
	for _, row := range rows {
		assert.InDelta(t, 10000.00, row.Amount, 0.001)
		assert.Empty(t, row.Note)
	}
}

func TestGeneratePaymentsMidMonthStart(t *testing.T) {
	terms := termsFixture()
	terms.Start = datetime.MustParseTime(datetime.DateLayout, "2022-05-15")

	rows, err := GeneratePayments(nil, terms, ExcludeEndMonth)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.True(t, rows[0].PaymentDate.Equal(datetime.MustParseTime(datetime.DateLayout, "2022-05-01")))
}

func TestGeneratePaymentsBoundaryPolicy(t *testing.T) {
	excl, err := GeneratePayments(nil, termsFixture(), ExcludeEndMonth)
	require.NoError(t, err)
	incl, err := GeneratePayments(nil, termsFixture(), IncludeEndMonth)
	require.NoError(t, err)

	assert.Len(t, excl, 24)
	require.Len(t, incl, 25)
	assert.True(t, incl[24].PaymentDate.Equal(datetime.MustParseTime(datetime.DateLayout, "2024-05-01")))
}

func TestGeneratePaymentsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Terms)
	}{
		{"end before start", func(terms *Terms) {
			terms.End = datetime.MustParseTime(datetime.DateLayout, "2021-05-01")
		}},
		{"zero annual rent", func(terms *Terms) {
			terms.AnnualRent = 0
		}},
		{"negative annual rent", func(terms *Terms) {
			terms.AnnualRent = -120000
		}},
		{"unknown increment method", func(terms *Terms) {
			terms.Increments = map[int]IncrementMethod{2: "Quarterly"}
		}},
		{"increment for lease year zero", func(terms *Terms) {
			terms.Increments = map[int]IncrementMethod{0: IncrementFixed}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := termsFixture()
			tt.mutate(&terms)
			_, err := GeneratePayments(nil, terms, ExcludeEndMonth)
			assert.Error(t, err)
		})
	}
}

func TestBuildCashFlows(t *testing.T) {
	payments, err := GeneratePayments(nil, termsFixture(), ExcludeEndMonth)
	require.NoError(t, err)

	rows := BuildCashFlows(payments, 200, 100, 0.9)
	require.Len(t, rows, len(payments))
	for i, row := range rows {
		assert.True(t, row.PaymentDate.Equal(payments[i].PaymentDate))
		assert.InDelta(t, 10000.00, row.BaseRent, 0.001)
		assert.InDelta(t, 200.00, row.Other, 0.001)
		assert.InDelta(t, 100.00, row.Parking, 0.001)
		assert.InDelta(t, 10300.00, row.TotalCashFlows, 0.001)
		assert.InDelta(t, 9270.00, row.LeaseComponent, 0.001)
	}
}

func TestBuildCashFlowsFullAllocation(t *testing.T) {
	payments, err := GeneratePayments(nil, termsFixture(), ExcludeEndMonth)
	require.NoError(t, err)

	rows := BuildCashFlows(payments, 0, 0, 1.0)
	for _, row := range rows {
		assert.InDelta(t, row.TotalCashFlows, row.LeaseComponent, 0.001)
		assert.InDelta(t, row.BaseRent, row.TotalCashFlows, 0.001)
	}
}

func TestXNPV(t *testing.T) {
	payments, err := GeneratePayments(nil, termsFixture(), ExcludeEndMonth)
	require.NoError(t, err)

	assert.InDelta(t, 227059.25, XNPV(payments, 6), 0.01)

	// Zero rate discounts nothing.
	assert.InDelta(t, 240000.00, XNPV(payments, 0), 0.01)

	assert.Zero(t, XNPV(nil, 6))
	assert.InDelta(t, payments[0].Amount, XNPV(payments[:1], 6), 0.001)
}
