package accounting

import (
	"time"

	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// Origin identifies the business record a movement was posted for. Movements
// are queried and reversed by origin, never individually edited.
type Origin struct {
	Table string
	ID    uuid.UUID
}

// SaleOrigin builds the origin reference for a sale record
func SaleOrigin(saleID uuid.UUID) Origin {
	return Origin{Table: "sales", ID: saleID}
}

// ReceivableOrigin builds the origin reference for a receivable record
func ReceivableOrigin(receivableID uuid.UUID) Origin {
	return Origin{Table: "receivables", ID: receivableID}
}

// LedgerMovement is one side of a double-entry posting. A movement carries
// either a debit or a credit amount, never both. Rows are append-only;
// corrections happen through offsetting movements.
type LedgerMovement struct {
	shared.BaseEntity
	AccountCode string
	Origin      Origin
	Debit       valueobject.Money
	Credit      valueobject.Money
	Description string
	ActorID     uuid.UUID
	OccurredAt  time.Time
}

// Entry is the write-model for a single movement before it is persisted
type Entry struct {
	AccountCode string
	Debit       valueobject.Money
	Credit      valueobject.Money
	Description string
}

// DebitEntry builds an entry debiting the given account
func DebitEntry(accountCode string, amount valueobject.Money, description string) Entry {
	return Entry{
		AccountCode: accountCode,
		Debit:       amount,
		Description: description,
	}
}

// CreditEntry builds an entry crediting the given account
func CreditEntry(accountCode string, amount valueobject.Money, description string) Entry {
	return Entry{
		AccountCode: accountCode,
		Credit:      amount,
		Description: description,
	}
}

// IsDebit reports whether the entry carries a debit amount
func (e Entry) IsDebit() bool {
	return !e.Debit.IsZero()
}

// IsCredit reports whether the entry carries a credit amount
func (e Entry) IsCredit() bool {
	return !e.Credit.IsZero()
}

// Amount returns whichever side of the entry is populated
func (e Entry) Amount() valueobject.Money {
	if e.IsDebit() {
		return e.Debit
	}
	return e.Credit
}

// ReversalEntries derives the exact offsetting entries for a set of posted
// movements: each debit becomes a credit of the same amount against the same
// account, and vice versa.
func ReversalEntries(movements []*LedgerMovement, description string) []Entry {
	entries := make([]Entry, 0, len(movements))
	for _, mv := range movements {
		if !mv.Debit.IsZero() {
			entries = append(entries, CreditEntry(mv.AccountCode, mv.Debit, description))
		} else {
			entries = append(entries, DebitEntry(mv.AccountCode, mv.Credit, description))
		}
	}
	return entries
}

// NewLedgerMovement materializes an entry into a persistable movement
func NewLedgerMovement(entry Entry, origin Origin, actorID uuid.UUID, occurredAt time.Time) *LedgerMovement {
	return &LedgerMovement{
		BaseEntity:  shared.NewBaseEntity(),
		AccountCode: entry.AccountCode,
		Origin:      origin,
		Debit:       entry.Debit,
		Credit:      entry.Credit,
		Description: entry.Description,
		ActorID:     actorID,
		OccurredAt:  occurredAt,
	}
}
