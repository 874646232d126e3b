package valuation

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/presentvalue"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

func propertyFixture() *lease.Lease {
	return &lease.Lease{
		ID:               "lease-1",
		LeaseID:          "L-001",
		Entity:           "Acme Holdings",
		Lessor:           "Smith Properties",
		Kind:             lease.KindProperty,
		PropertyAddress:  "12 High St, Melbourne",
		CommencementDate: datetime.MustParseTime(datetime.DateLayout, "2022-05-01"),
		ExpiryDate:       datetime.MustParseTime(datetime.DateLayout, "2024-05-01"),
		AnnualRent:       120000,
		BorrowingRate:    6,
	}
}

func TestCompute(t *testing.T) {
	v, err := Compute(nil, propertyFixture(), DefaultParameters())
	require.NoError(t, err)

	require.Len(t, v.Payments, 24)
	require.Len(t, v.CashFlows, 24)
	require.Len(t, v.AssetRows, 24)
	require.Len(t, v.LiabilityRows, 24)

	assert.InDelta(t, 226756.81, v.PresentValue, 0.005)
	assert.InDelta(t, 0.005, v.MonthlyRate, 1e-12)
	assert.Equal(t, presentvalue.Beginning, v.PaymentTiming)

	// Asset and liability both start at the present value and unwind to zero.
	assert.InDelta(t, v.PresentValue, v.AssetRows[0].AssetBeginning, 0.001)
	assert.InDelta(t, v.PresentValue, v.LiabilityRows[0].LiabilityBeginning, 0.001)
	assert.InDelta(t, 0.0, v.AssetRows[23].AssetEnding, 1e-9)
	assert.Less(t, math.Abs(v.LiabilityRows[23].LiabilityEnding), 0.01)
}

func TestComputeIsDeterministic(t *testing.T) {
	first, err := Compute(nil, propertyFixture(), DefaultParameters())
	require.NoError(t, err)
	second, err := Compute(nil, propertyFixture(), DefaultParameters())
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first.Payments, second.Payments))
	assert.True(t, reflect.DeepEqual(first.AssetRows, second.AssetRows))
	assert.True(t, reflect.DeepEqual(first.LiabilityRows, second.LiabilityRows))
	assert.Equal(t, first.PresentValue, second.PresentValue)
}

func TestComputeEndTiming(t *testing.T) {
	params := DefaultParameters()
	params.PaymentTiming = presentvalue.End

	v, err := Compute(nil, propertyFixture(), params)
	require.NoError(t, err)
	assert.InDelta(t, 225628.66, v.PresentValue, 0.005)
	assert.Less(t, math.Abs(v.LiabilityRows[23].LiabilityEnding), 0.01)
}

func TestComputePartialAllocation(t *testing.T) {
	params := DefaultParameters()
	params.AllocationToLeaseComponent = 0.5

	v, err := Compute(nil, propertyFixture(), params)
	require.NoError(t, err)
	assert.InDelta(t, 226756.81/2, v.PresentValue, 0.01)
}

func TestComputeInvalidAllocation(t *testing.T) {
	params := DefaultParameters()
	params.AllocationToLeaseComponent = 1.5
	_, err := Compute(nil, propertyFixture(), params)
	assert.Error(t, err)

	params.AllocationToLeaseComponent = -0.1
	_, err = Compute(nil, propertyFixture(), params)
	assert.Error(t, err)
}

func TestComputeRejectsInvalidLease(t *testing.T) {
	l := propertyFixture()
	l.AnnualRent = 0
	_, err := Compute(nil, l, DefaultParameters())
	assert.Error(t, err)
}

func TestComputeBoundaryPolicy(t *testing.T) {
	params := DefaultParameters()
	params.BoundaryPolicy = schedule.IncludeEndMonth

	v, err := Compute(nil, propertyFixture(), params)
	require.NoError(t, err)
	assert.Len(t, v.Payments, 25)
}

func TestValuationSummary(t *testing.T) {
	v, err := Compute(nil, propertyFixture(), DefaultParameters())
	require.NoError(t, err)

	summary := v.Summary(
		datetime.MustParseTime(datetime.DateLayout, "2023-01-01"),
		datetime.MustParseTime(datetime.DateLayout, "2023-12-31"),
	)
	assert.Greater(t, summary.ShortTerm, 0.0)
	assert.Greater(t, summary.LongTerm, 0.0)
	assert.InDelta(t, summary.ShortTerm+summary.LongTerm, summary.Total, 0.005)
}

func TestValuationPaymentsDue(t *testing.T) {
	v, err := Compute(nil, propertyFixture(), DefaultParameters())
	require.NoError(t, err)

	ladder := v.PaymentsDue(datetime.MustParseTime(datetime.DateLayout, "2022-12-31"))
	require.Len(t, ladder, 7)
	assert.InDelta(t, 160000.00, ladder[6].LeasePayments, 0.005)
}
