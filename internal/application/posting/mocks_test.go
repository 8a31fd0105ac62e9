package posting

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/sales"
	"github.com/contaerp/backend/internal/domain/shared"
)

// fakeUnitOfWork passes its repositories straight through; the atomicity of
// the real implementation is covered by the persistence tests
type fakeUnitOfWork struct {
	repos Repositories
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, u.repos)
}

type mockSaleRepo struct {
	mock.Mock
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *mockSaleRepo) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *mockSaleRepo) Update(ctx context.Context, sale *sales.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *mockSaleRepo) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*sales.Sale], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*sales.Sale]), args.Error(1)
}

type mockReceivableRepo struct {
	mock.Mock
}

func (m *mockReceivableRepo) Create(ctx context.Context, rcv *receivable.Receivable) error {
	return m.Called(ctx, rcv).Error(0)
}

func (m *mockReceivableRepo) FindByID(ctx context.Context, id uuid.UUID) (*receivable.Receivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Receivable), args.Error(1)
}

func (m *mockReceivableRepo) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*receivable.Receivable, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Receivable), args.Error(1)
}

func (m *mockReceivableRepo) Update(ctx context.Context, rcv *receivable.Receivable) error {
	return m.Called(ctx, rcv).Error(0)
}

func (m *mockReceivableRepo) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*receivable.Receivable], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*receivable.Receivable]), args.Error(1)
}

func (m *mockReceivableRepo) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*receivable.Receivable, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*receivable.Receivable), args.Error(1)
}

type mockMovementRepo struct {
	mock.Mock
}

func (m *mockMovementRepo) Create(ctx context.Context, movements []*accounting.LedgerMovement) error {
	return m.Called(ctx, movements).Error(0)
}

func (m *mockMovementRepo) FindByOrigin(ctx context.Context, origin accounting.Origin) ([]*accounting.LedgerMovement, error) {
	args := m.Called(ctx, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounting.LedgerMovement), args.Error(1)
}

// memoryIdempotency is a minimal in-process store for tests
type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: make(map[string]struct{})}
}

func (s *memoryIdempotency) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

func (s *memoryIdempotency) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *memoryIdempotency) Close() error { return nil }
