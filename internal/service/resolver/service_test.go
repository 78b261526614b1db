package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalog struct {
	branches map[int64]*domain.Branch
	capsters map[int64]*domain.Capster
	services map[int64]*domain.Service
	err      error
}

func (f *fakeCatalog) GetBranchByID(_ context.Context, id int64) (*domain.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.branches[id]
	if !ok {
		return nil, catalogRepo.ErrBranchNotFound
	}
	return b, nil
}

func (f *fakeCatalog) GetCapsterInBranch(_ context.Context, capsterID, branchID int64) (*domain.Capster, error) {
	c, ok := f.capsters[capsterID]
	if !ok || c.BranchID != branchID {
		return nil, catalogRepo.ErrCapsterNotFound
	}
	return c, nil
}

func (f *fakeCatalog) GetServicesByIDs(_ context.Context, ids []int64, branchID *int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			if branchID != nil && s.BranchID != nil && *s.BranchID != *branchID {
				continue
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func newCatalog() *fakeCatalog {
	one := int64(1)
	return &fakeCatalog{
		branches: map[int64]*domain.Branch{1: {ID: 1, Name: "Senopati"}, 2: {ID: 2, Name: "Kemang"}},
		capsters: map[int64]*domain.Capster{5: {ID: 5, Name: "Budi", BranchID: 1}},
		services: map[int64]*domain.Service{
			10: {ID: 10, Name: "Haircut", Duration: 45, Price: decimal.NewFromInt(50000), BranchID: &one},
			11: {ID: 11, Name: "Shave", Duration: 30, Price: decimal.NewFromInt(25000)},
		},
	}
}

func TestResolve(t *testing.T) {
	svc := NewService(newCatalog(), nopLogger{})

	refs, err := svc.Resolve(context.Background(), 1, 5, []int64{11, 10, 11})

	require.NoError(t, err)
	assert.Equal(t, "Senopati", refs.Branch.Name)
	assert.Equal(t, "Budi", refs.Capster.Name)
	assert.Equal(t, []int64{11, 10}, refs.ServiceIDs)
}

func TestResolve_BranchNotFound(t *testing.T) {
	svc := NewService(newCatalog(), nopLogger{})

	_, err := svc.Resolve(context.Background(), 9, 5, []int64{10})

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestResolve_CapsterOfOtherBranch(t *testing.T) {
	svc := NewService(newCatalog(), nopLogger{})

	_, err := svc.Resolve(context.Background(), 2, 5, []int64{11})

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	de, _ := domain.AsError(err)
	assert.Equal(t, int64(5), de.Details["capster_id"])
}

func TestResolve_ReportsMissingServices(t *testing.T) {
	svc := NewService(newCatalog(), nopLogger{})

	_, err := svc.Resolve(context.Background(), 1, 5, []int64{10, 12, 13})

	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNotFound, de.Kind)
	assert.Equal(t, []int64{12, 13}, de.Details["missing_service_ids"])
}

func TestResolve_StorageFailure(t *testing.T) {
	catalog := newCatalog()
	catalog.err = errors.New("connection refused")
	svc := NewService(catalog, nopLogger{})

	_, err := svc.Resolve(context.Background(), 1, 5, []int64{10})

	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
}
