package accounting

import (
	"fmt"

	"github.com/contaerp/backend/internal/domain/shared"
)

// AccountRole identifies the semantic role an account plays in postings.
// The engine never works with raw account codes directly; every posting
// resolves its accounts through the injected ChartOfAccounts.
type AccountRole string

const (
	RoleCash        AccountRole = "cash"
	RoleReceivables AccountRole = "receivables"
	RoleInventory   AccountRole = "inventory"
	RoleRevenue     AccountRole = "revenue"
	RoleCostOfGoods AccountRole = "cost_of_goods"
	RolePayables    AccountRole = "payables"
	RoleTaxPayable  AccountRole = "tax_payable"
)

// AllRoles returns every role the chart must bind
func AllRoles() []AccountRole {
	return []AccountRole{
		RoleCash,
		RoleReceivables,
		RoleInventory,
		RoleRevenue,
		RoleCostOfGoods,
		RolePayables,
		RoleTaxPayable,
	}
}

// IsValid checks if the role is a known AccountRole
func (r AccountRole) IsValid() bool {
	switch r {
	case RoleCash, RoleReceivables, RoleInventory, RoleRevenue,
		RoleCostOfGoods, RolePayables, RoleTaxPayable:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r AccountRole) String() string {
	return string(r)
}

// ChartOfAccounts is the static role-to-account-code reference supplied to
// the engine at construction time. It is read-only; account management lives
// outside this system.
type ChartOfAccounts struct {
	accounts map[AccountRole]string
}

// NewChartOfAccounts builds a chart from a role-to-code map. Every role must
// be bound to a non-empty code, and no two roles may share a code.
func NewChartOfAccounts(accounts map[AccountRole]string) (*ChartOfAccounts, error) {
	bound := make(map[AccountRole]string, len(accounts))
	seen := make(map[string]AccountRole, len(accounts))

	for role, code := range accounts {
		if !role.IsValid() {
			return nil, shared.NewValidationError(fmt.Sprintf("unknown account role %q", role))
		}
		if code == "" {
			return nil, shared.NewValidationError(fmt.Sprintf("account role %q has an empty code", role))
		}
		if other, dup := seen[code]; dup {
			return nil, shared.NewValidationError(fmt.Sprintf("account code %q is bound to both %q and %q", code, other, role))
		}
		bound[role] = code
		seen[code] = role
	}

	for _, role := range AllRoles() {
		if _, ok := bound[role]; !ok {
			return nil, shared.NewValidationError(fmt.Sprintf("account role %q is not bound to any code", role))
		}
	}

	return &ChartOfAccounts{accounts: bound}, nil
}

// DefaultChartOfAccounts returns a chart with a conventional small-business
// numbering, used when configuration supplies no overrides
func DefaultChartOfAccounts() *ChartOfAccounts {
	chart, err := NewChartOfAccounts(map[AccountRole]string{
		RoleCash:        "1000",
		RoleReceivables: "1100",
		RoleInventory:   "1200",
		RolePayables:    "2000",
		RoleTaxPayable:  "2100",
		RoleRevenue:     "4000",
		RoleCostOfGoods: "5000",
	})
	if err != nil {
		panic(err)
	}
	return chart
}

// Account returns the account code bound to the given role
func (c *ChartOfAccounts) Account(role AccountRole) string {
	return c.accounts[role]
}

// Codes returns a copy of the full role-to-code binding
func (c *ChartOfAccounts) Codes() map[AccountRole]string {
	out := make(map[AccountRole]string, len(c.accounts))
	for role, code := range c.accounts {
		out[role] = code
	}
	return out
}
