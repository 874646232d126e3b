// Package store persists lease records as a flat JSON array on disk, the
// format owned by the desktop edition of this tool. Monetary fields and rates
// are stored as strings and parsed exactly on load; a record that fails to
// parse or validate blocks the load rather than entering the system
// half-formed.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/money"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// Store reads and writes the lease file.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore returns a store for the given file path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

type openingBalanceRecord struct {
	OpeningDate              string  `json:"openingDate"`
	IsNewLeaseExtension      bool    `json:"isNewLeaseExtension"`
	RightToUseAssets         float64 `json:"rightToUseAssets"`
	AccDeprRightToUseAssets  float64 `json:"accDeprRightToUseAssets"`
	LeaseLiabilityCurrent    float64 `json:"leaseLiabilityCurrent"`
	LeaseLiabilityNonCurrent float64 `json:"leaseLiabilityNonCurrent"`
	DepreciationExpense      float64 `json:"depreciationExpense"`
	InterestExpenseRent      float64 `json:"interestExpenseRent"`
	RentExpense              float64 `json:"rentExpense"`
}

type leaseRecord struct {
	ID                 string                 `json:"id"`
	LeaseID            string                 `json:"leaseId,omitempty"`
	Type               string                 `json:"type"`
	Entity             string                 `json:"entity,omitempty"`
	Lessor             string                 `json:"lessor"`
	Branch             string                 `json:"branch,omitempty"`
	PropertyAddress    string                 `json:"propertyAddress,omitempty"`
	CommencementDate   string                 `json:"commencementDate,omitempty"`
	Options            string                 `json:"options,omitempty"`
	FixedIncrementRate string                 `json:"fixedIncrementRate,omitempty"`
	RbaCpiRate         string                 `json:"rbaCpiRate,omitempty"`
	Description        string                 `json:"description,omitempty"`
	VinSerialNo        string                 `json:"vinSerialNo,omitempty"`
	RegoNo             string                 `json:"regoNo,omitempty"`
	EngineNumber       string                 `json:"engineNumber,omitempty"`
	VehicleType        string                 `json:"vehicleType,omitempty"`
	DeliveryDate       string                 `json:"deliveryDate,omitempty"`
	ExpiryDate         string                 `json:"expiryDate"`
	AnnualRent         string                 `json:"annualRent"`
	BorrowingRate      string                 `json:"borrowingRate"`
	IncrementMethods   map[string]string      `json:"incrementMethods,omitempty"`
	OverrideAmounts    map[string]string      `json:"overrideAmounts,omitempty"`
	OpeningBalances    []openingBalanceRecord `json:"openingBalances,omitempty"`
}

// Load reads every lease from the store file. A missing file is an empty
// store, not an error.
func (s *Store) Load() ([]*lease.Lease, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug(fmt.Sprintf("store file %s does not exist, starting empty", s.path),
				zap.String("op", "store.Load"),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("reading lease store %s: %w", s.path, err)
	}

	var records []leaseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing lease store %s: %w", s.path, err)
	}

	leases := make([]*lease.Lease, 0, len(records))
	for _, rec := range records {
		l, err := decodeLease(rec)
		if err != nil {
			return nil, err
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}

	return leases, nil
}

// Save writes the full lease set back to the store file.
func (s *Store) Save(leases []*lease.Lease) error {
	records := make([]leaseRecord, 0, len(leases))
	for _, l := range leases {
		records = append(records, encodeLease(l))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding lease store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating store directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing lease store %s: %w", s.path, err)
	}
	return nil
}

// Add appends a lease and persists the store.
func (s *Store) Add(l *lease.Lease) error {
	if err := l.Validate(); err != nil {
		return err
	}
	leases, err := s.Load()
	if err != nil {
		return err
	}
	for _, existing := range leases {
		if existing.ID == l.ID {
			return fmt.Errorf("lease %s already exists", l.ID)
		}
	}
	return s.Save(append(leases, l))
}

// Update replaces the lease with the same id and persists the store.
func (s *Store) Update(l *lease.Lease) error {
	if err := l.Validate(); err != nil {
		return err
	}
	leases, err := s.Load()
	if err != nil {
		return err
	}
	for i, existing := range leases {
		if existing.ID == l.ID {
			leases[i] = l
			return s.Save(leases)
		}
	}
	return fmt.Errorf("lease %s not found", l.ID)
}

// Delete removes the lease with the given id and persists the store.
func (s *Store) Delete(id string) error {
	leases, err := s.Load()
	if err != nil {
		return err
	}
	for i, existing := range leases {
		if existing.ID == id {
			return s.Save(append(leases[:i], leases[i+1:]...))
		}
	}
	return fmt.Errorf("lease %s not found", id)
}

// GetByID returns the lease with the given id.
func (s *Store) GetByID(id string) (*lease.Lease, error) {
	leases, err := s.Load()
	if err != nil {
		return nil, err
	}
	for _, l := range leases {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("lease %s not found", id)
}

func decodeLease(rec leaseRecord) (*lease.Lease, error) {
	l := &lease.Lease{
		ID:              rec.ID,
		LeaseID:         rec.LeaseID,
		Entity:          rec.Entity,
		Lessor:          rec.Lessor,
		Branch:          rec.Branch,
		Kind:            lease.Kind(rec.Type),
		PropertyAddress: rec.PropertyAddress,
		Description:     rec.Description,
		VinSerialNo:     rec.VinSerialNo,
		RegoNo:          rec.RegoNo,
		EngineNumber:    rec.EngineNumber,
		VehicleType:     rec.VehicleType,
	}

	var err error
	if l.AnnualRent, err = money.ParseAmount(rec.AnnualRent); err != nil {
		return nil, fmt.Errorf("lease %s: annual rent: %w", rec.ID, err)
	}
	if l.BorrowingRate, err = money.ParseRate(rec.BorrowingRate); err != nil {
		return nil, fmt.Errorf("lease %s: borrowing rate: %w", rec.ID, err)
	}
	if l.ExpiryDate, err = datetime.ParseDate(rec.ExpiryDate); err != nil {
		return nil, fmt.Errorf("lease %s: expiry date: %w", rec.ID, err)
	}

	switch l.Kind {
	case lease.KindProperty:
		if l.CommencementDate, err = datetime.ParseDate(rec.CommencementDate); err != nil {
			return nil, fmt.Errorf("lease %s: commencement date: %w", rec.ID, err)
		}
		if rec.Options != "" {
			if l.OptionsYears, err = strconv.Atoi(rec.Options); err != nil {
				return nil, fmt.Errorf("lease %s: option years %q: %w", rec.ID, rec.Options, err)
			}
		}
		if rec.FixedIncrementRate != "" {
			if l.FixedIncrementRate, err = money.ParseRate(rec.FixedIncrementRate); err != nil {
				return nil, fmt.Errorf("lease %s: fixed increment rate: %w", rec.ID, err)
			}
		}
		if rec.RbaCpiRate != "" {
			if l.RbaCpiRate, err = money.ParseRate(rec.RbaCpiRate); err != nil {
				return nil, fmt.Errorf("lease %s: RBA CPI rate: %w", rec.ID, err)
			}
		}
		if l.IncrementMethods, l.OverrideAmounts, err = decodeIncrements(rec); err != nil {
			return nil, fmt.Errorf("lease %s: %w", rec.ID, err)
		}
	case lease.KindMotorVehicle:
		if l.DeliveryDate, err = datetime.ParseDate(rec.DeliveryDate); err != nil {
			return nil, fmt.Errorf("lease %s: delivery date: %w", rec.ID, err)
		}
	default:
		return nil, fmt.Errorf("lease %s: unknown lease type %q", rec.ID, rec.Type)
	}

	for _, obRec := range rec.OpeningBalances {
		date, err := datetime.ParseDate(obRec.OpeningDate)
		if err != nil {
			return nil, fmt.Errorf("lease %s: opening balance date: %w", rec.ID, err)
		}
		l.OpeningBalances = append(l.OpeningBalances, lease.OpeningBalance{
			OpeningDate:              date,
			IsNewLeaseExtension:      obRec.IsNewLeaseExtension,
			RightToUseAssets:         obRec.RightToUseAssets,
			AccDeprRightToUseAssets:  obRec.AccDeprRightToUseAssets,
			LeaseLiabilityCurrent:    obRec.LeaseLiabilityCurrent,
			LeaseLiabilityNonCurrent: obRec.LeaseLiabilityNonCurrent,
			DepreciationExpense:      obRec.DepreciationExpense,
			InterestExpenseRent:      obRec.InterestExpenseRent,
			RentExpense:              obRec.RentExpense,
		})
	}

	return l, nil
}

func decodeIncrements(rec leaseRecord) (map[int]schedule.IncrementMethod, map[int]float64, error) {
	var methods map[int]schedule.IncrementMethod
	var overrides map[int]float64

	for yearStr, methodStr := range rec.IncrementMethods {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, nil, fmt.Errorf("increment method year %q: %w", yearStr, err)
		}
		if methods == nil {
			methods = make(map[int]schedule.IncrementMethod)
		}
		methods[year] = schedule.IncrementMethod(methodStr)
	}

	for yearStr, amountStr := range rec.OverrideAmounts {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, nil, fmt.Errorf("override amount year %q: %w", yearStr, err)
		}
		amount, err := money.ParseAmountOrZero(amountStr)
		if err != nil {
			return nil, nil, fmt.Errorf("override amount for year %d: %w", year, err)
		}
		if overrides == nil {
			overrides = make(map[int]float64)
		}
		overrides[year] = amount
	}

	return methods, overrides, nil
}

func encodeLease(l *lease.Lease) leaseRecord {
	rec := leaseRecord{
		ID:              l.ID,
		LeaseID:         l.LeaseID,
		Type:            string(l.Kind),
		Entity:          l.Entity,
		Lessor:          l.Lessor,
		Branch:          l.Branch,
		PropertyAddress: l.PropertyAddress,
		Description:     l.Description,
		VinSerialNo:     l.VinSerialNo,
		RegoNo:          l.RegoNo,
		EngineNumber:    l.EngineNumber,
		VehicleType:     l.VehicleType,
		ExpiryDate:      l.ExpiryDate.Format(datetime.DateLayout),
		AnnualRent:      money.FormatAmount(l.AnnualRent),
		BorrowingRate:   money.FormatRate(l.BorrowingRate),
	}

	if l.Kind == lease.KindProperty {
		rec.CommencementDate = l.CommencementDate.Format(datetime.DateLayout)
		rec.Options = strconv.Itoa(l.OptionsYears)
		rec.FixedIncrementRate = money.FormatRate(l.FixedIncrementRate)
		rec.RbaCpiRate = money.FormatRate(l.RbaCpiRate)
	} else {
		rec.DeliveryDate = l.DeliveryDate.Format(datetime.DateLayout)
	}

	if len(l.IncrementMethods) > 0 {
		rec.IncrementMethods = make(map[string]string, len(l.IncrementMethods))
		for year, method := range l.IncrementMethods {
			rec.IncrementMethods[strconv.Itoa(year)] = string(method)
		}
	}
	if len(l.OverrideAmounts) > 0 {
		rec.OverrideAmounts = make(map[string]string, len(l.OverrideAmounts))
		for year, amount := range l.OverrideAmounts {
			rec.OverrideAmounts[strconv.Itoa(year)] = money.FormatAmount(amount)
		}
	}

	// Opening balances sorted by date so saved files diff cleanly.
	balances := make([]lease.OpeningBalance, len(l.OpeningBalances))
	copy(balances, l.OpeningBalances)
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].OpeningDate.Before(balances[j].OpeningDate)
	})
	for _, ob := range balances {
		rec.OpeningBalances = append(rec.OpeningBalances, openingBalanceRecord{
			OpeningDate:              ob.OpeningDate.Format(datetime.DateLayout),
			IsNewLeaseExtension:      ob.IsNewLeaseExtension,
			RightToUseAssets:         ob.RightToUseAssets,
			AccDeprRightToUseAssets:  ob.AccDeprRightToUseAssets,
			LeaseLiabilityCurrent:    ob.LeaseLiabilityCurrent,
			LeaseLiabilityNonCurrent: ob.LeaseLiabilityNonCurrent,
			DepreciationExpense:      ob.DepreciationExpense,
			InterestExpenseRent:      ob.InterestExpenseRent,
			RentExpense:              ob.RentExpense,
		})
	}

	return rec
}
