package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// PostingService writes balanced movement sets to the ledger. It is the only
// component allowed to create ledger rows, so the balance invariant is
// enforced in exactly one place.
type PostingService struct {
	movements LedgerMovementRepository
}

// NewPostingService creates a posting service over a movement repository
func NewPostingService(movements LedgerMovementRepository) *PostingService {
	return &PostingService{movements: movements}
}

// Post validates and persists a movement set. Validation runs before any
// write: every entry must carry exactly one positive side, and the debit and
// credit totals must match to the cent. An unbalanced set is rejected whole.
func (s *PostingService) Post(ctx context.Context, entries []Entry, origin Origin, actorID uuid.UUID, occurredAt time.Time) ([]*LedgerMovement, error) {
	if len(entries) == 0 {
		return nil, shared.NewValidationError("movement set is empty")
	}

	totalDebit := valueobject.Zero()
	totalCredit := valueobject.Zero()

	for i, entry := range entries {
		if entry.AccountCode == "" {
			return nil, shared.NewValidationError(fmt.Sprintf("entry %d has no account code", i))
		}
		if entry.IsDebit() == entry.IsCredit() {
			return nil, shared.NewValidationError(fmt.Sprintf("entry %d must carry exactly one of debit or credit", i))
		}
		if entry.Amount().IsNegative() || entry.Amount().IsZero() {
			return nil, shared.NewValidationError(fmt.Sprintf("entry %d amount must be positive", i))
		}
		totalDebit = totalDebit.Add(entry.Debit)
		totalCredit = totalCredit.Add(entry.Credit)
	}

	if !totalDebit.Equals(totalCredit) {
		return nil, shared.ErrUnbalancedPosting
	}

	movements := make([]*LedgerMovement, 0, len(entries))
	for _, entry := range entries {
		movements = append(movements, NewLedgerMovement(entry, origin, actorID, occurredAt))
	}

	if err := s.movements.Create(ctx, movements); err != nil {
		return nil, fmt.Errorf("failed to append ledger movements: %w", err)
	}
	return movements, nil
}

// Reverse posts the exact offsets of previously recorded movements under the
// same origin. The offset set balances by construction whenever the original
// set did.
func (s *PostingService) Reverse(ctx context.Context, origin Origin, actorID uuid.UUID, occurredAt time.Time, description string) ([]*LedgerMovement, error) {
	originals, err := s.movements.FindByOrigin(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for reversal: %w", err)
	}
	if len(originals) == 0 {
		return nil, shared.ErrNotFound
	}
	return s.Post(ctx, ReversalEntries(originals, description), origin, actorID, occurredAt)
}
