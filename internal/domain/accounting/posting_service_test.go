package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

type mockMovementRepo struct {
	mock.Mock
}

func (m *mockMovementRepo) Create(ctx context.Context, movements []*LedgerMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *mockMovementRepo) FindByOrigin(ctx context.Context, origin Origin) ([]*LedgerMovement, error) {
	args := m.Called(ctx, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*LedgerMovement), args.Error(1)
}

func TestPostingService_Post_BalancedSet(t *testing.T) {
	repo := new(mockMovementRepo)
	svc := NewPostingService(repo)
	origin := SaleOrigin(uuid.New())
	actorID := uuid.New()
	now := time.Now()

	entries := []Entry{
		DebitEntry("1100", valueobject.NewMoneyFromFloat(1180), "sale"),
		CreditEntry("4000", valueobject.NewMoneyFromFloat(1000), "sale"),
		CreditEntry("2100", valueobject.NewMoneyFromFloat(180), "sale"),
	}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(movements []*LedgerMovement) bool {
		return len(movements) == 3
	})).Return(nil)

	movements, err := svc.Post(context.Background(), entries, origin, actorID, now)
	require.NoError(t, err)
	require.Len(t, movements, 3)

	for _, mv := range movements {
		assert.Equal(t, origin, mv.Origin)
		assert.Equal(t, actorID, mv.ActorID)
		assert.NotEqual(t, uuid.Nil, mv.ID)
	}
	repo.AssertExpectations(t)
}

func TestPostingService_Post_UnbalancedSetRejectedBeforeWrite(t *testing.T) {
	repo := new(mockMovementRepo)
	svc := NewPostingService(repo)

	entries := []Entry{
		DebitEntry("1100", valueobject.NewMoneyFromFloat(1180), "sale"),
		CreditEntry("4000", valueobject.NewMoneyFromFloat(1000), "sale"),
	}

	_, err := svc.Post(context.Background(), entries, SaleOrigin(uuid.New()), uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.CodeUnbalancedPosting))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostingService_Post_RejectsInvalidEntries(t *testing.T) {
	repo := new(mockMovementRepo)
	svc := NewPostingService(repo)
	origin := SaleOrigin(uuid.New())

	cases := []struct {
		name    string
		entries []Entry
	}{
		{"empty set", nil},
		{"missing account code", []Entry{
			DebitEntry("", valueobject.NewMoneyFromFloat(10), ""),
			CreditEntry("4000", valueobject.NewMoneyFromFloat(10), ""),
		}},
		{"both sides populated", []Entry{
			{AccountCode: "1000", Debit: valueobject.NewMoneyFromFloat(10), Credit: valueobject.NewMoneyFromFloat(10)},
			CreditEntry("4000", valueobject.NewMoneyFromFloat(10), ""),
		}},
		{"neither side populated", []Entry{
			{AccountCode: "1000"},
			CreditEntry("4000", valueobject.NewMoneyFromFloat(10), ""),
		}},
		{"negative amount", []Entry{
			DebitEntry("1000", valueobject.NewMoneyFromFloat(-10), ""),
			CreditEntry("4000", valueobject.NewMoneyFromFloat(-10), ""),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Post(context.Background(), tc.entries, origin, uuid.New(), time.Now())
			require.Error(t, err)
			assert.True(t, shared.HasCode(err, shared.CodeValidation))
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostingService_Reverse_SwapsSides(t *testing.T) {
	repo := new(mockMovementRepo)
	svc := NewPostingService(repo)
	origin := SaleOrigin(uuid.New())
	actorID := uuid.New()

	originals := []*LedgerMovement{
		{BaseEntity: shared.NewBaseEntity(), AccountCode: "1100", Origin: origin, Debit: valueobject.NewMoneyFromFloat(1180)},
		{BaseEntity: shared.NewBaseEntity(), AccountCode: "4000", Origin: origin, Credit: valueobject.NewMoneyFromFloat(1000)},
		{BaseEntity: shared.NewBaseEntity(), AccountCode: "2100", Origin: origin, Credit: valueobject.NewMoneyFromFloat(180)},
	}

	repo.On("FindByOrigin", mock.Anything, origin).Return(originals, nil)

	var written []*LedgerMovement
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]*LedgerMovement)
	}).Return(nil)

	_, err := svc.Reverse(context.Background(), origin, actorID, time.Now(), "void")
	require.NoError(t, err)
	require.Len(t, written, 3)

	assert.True(t, written[0].Credit.Equals(valueobject.NewMoneyFromFloat(1180)))
	assert.True(t, written[0].Debit.IsZero())
	assert.Equal(t, "1100", written[0].AccountCode)
	assert.True(t, written[1].Debit.Equals(valueobject.NewMoneyFromFloat(1000)))
	assert.True(t, written[2].Debit.Equals(valueobject.NewMoneyFromFloat(180)))
}

func TestPostingService_Reverse_NoMovements(t *testing.T) {
	repo := new(mockMovementRepo)
	svc := NewPostingService(repo)
	origin := SaleOrigin(uuid.New())

	repo.On("FindByOrigin", mock.Anything, origin).Return([]*LedgerMovement{}, nil)

	_, err := svc.Reverse(context.Background(), origin, uuid.New(), time.Now(), "void")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
