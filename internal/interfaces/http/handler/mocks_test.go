package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/contaerp/backend/internal/application/posting"
	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/sales"
	"github.com/contaerp/backend/internal/domain/shared"
)

// fakeUnitOfWork passes its repositories straight through. Transactional
// behavior is covered by the persistence tests.
type fakeUnitOfWork struct {
	repos posting.Repositories
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos posting.Repositories) error) error {
	return fn(ctx, u.repos)
}

// MockSaleRepository implements sales.SaleRepository for testing
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *sales.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*sales.Sale], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*sales.Sale]), args.Error(1)
}

// MockReceivableRepository implements receivable.ReceivableRepository for testing
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) Create(ctx context.Context, rcv *receivable.Receivable) error {
	return m.Called(ctx, rcv).Error(0)
}

func (m *MockReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.Receivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*receivable.Receivable, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) Update(ctx context.Context, rcv *receivable.Receivable) error {
	return m.Called(ctx, rcv).Error(0)
}

func (m *MockReceivableRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*receivable.Receivable], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*receivable.Receivable]), args.Error(1)
}

func (m *MockReceivableRepository) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*receivable.Receivable, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*receivable.Receivable), args.Error(1)
}

// MockLedgerMovementRepository implements accounting.LedgerMovementRepository for testing
type MockLedgerMovementRepository struct {
	mock.Mock
}

func (m *MockLedgerMovementRepository) Create(ctx context.Context, movements []*accounting.LedgerMovement) error {
	return m.Called(ctx, movements).Error(0)
}

func (m *MockLedgerMovementRepository) FindByOrigin(ctx context.Context, origin accounting.Origin) ([]*accounting.LedgerMovement, error) {
	args := m.Called(ctx, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounting.LedgerMovement), args.Error(1)
}

// testIdempotencyStore is a minimal in-process store for handler tests
type testIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newTestIdempotencyStore() *testIdempotencyStore {
	return &testIdempotencyStore{keys: make(map[string]struct{})}
}

func (s *testIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

func (s *testIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *testIdempotencyStore) Close() error { return nil }
