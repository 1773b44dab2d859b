package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetSpec describes one budget to create with an account.
type BudgetSpec struct {
	Name  Category        `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}

// DefaultBudgetSpecs pairs the given limits with the default categories, in menu order.
func DefaultBudgetSpecs(limits [BudgetCount]decimal.Decimal) [BudgetCount]BudgetSpec {
	var specs [BudgetCount]BudgetSpec
	for i, c := range DefaultCategories {
		specs[i] = BudgetSpec{Name: c, Limit: limits[i]}
	}
	return specs
}

// Account is a bank account with a balance and a fixed set of category budgets.
type Account struct {
	id        string
	ownerName string
	balance   decimal.Decimal
	budgets   [BudgetCount]*Budget
}

// AccountSummary is a read-only view of an account.
type AccountSummary struct {
	ID        string           `json:"id"`
	OwnerName string           `json:"ownerName"`
	Balance   decimal.Decimal  `json:"balance"`
	Budgets   []BudgetSnapshot `json:"budgets"`
}

// TransactionOutcome is the result of a successfully processed transaction.
// History is set when the budget is exceeded or over its warning threshold.
type TransactionOutcome struct {
	Transaction   Transaction     `json:"transaction"`
	Budget        BudgetSnapshot  `json:"budget"`
	Balance       decimal.Decimal `json:"balance"`
	Notices       []Notice        `json:"notices"`
	History       []Transaction   `json:"history,omitempty"`
	SessionLocked bool            `json:"sessionLocked"`
}

// NoticeMessages returns the notice texts in the order they were raised.
func (o *TransactionOutcome) NoticeMessages() []string {
	msgs := make([]string, len(o.Notices))
	for i, n := range o.Notices {
		msgs[i] = n.Message
	}
	return msgs
}

// HasNotice reports whether a notice of the given kind was raised.
func (o *TransactionOutcome) HasNotice(kind NoticeKind) bool {
	for _, n := range o.Notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}

// NewAccount creates an account holding one budget per BudgetSpec.
// Limits must be positive, categories unique, and the opening balance non-negative.
func NewAccount(id, ownerName string, openingBalance decimal.Decimal, specs [BudgetCount]BudgetSpec) (*Account, error) {
	if openingBalance.IsNegative() {
		return nil, newDomainError(ErrInvalidAmount, "", "opening balance must not be negative")
	}

	a := &Account{
		id:        id,
		ownerName: ownerName,
		balance:   openingBalance,
	}

	for i, spec := range specs {
		for _, prev := range specs[:i] {
			if prev.Name.Matches(string(spec.Name)) {
				return nil, newDomainError(ErrDuplicateBudget, string(spec.Name), "")
			}
		}

		b, err := NewBudget(spec.Name, spec.Limit)
		if err != nil {
			return nil, err
		}
		a.budgets[i] = b
	}

	return a, nil
}

// ID returns the account number.
func (a *Account) ID() string { return a.id }

// OwnerName returns the name of the bank the account is held with.
func (a *Account) OwnerName() string { return a.ownerName }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// Budget returns the budget at a 0-based index.
func (a *Account) Budget(index int) (*Budget, error) {
	if index < 0 || index >= BudgetCount {
		return nil, newDomainError(ErrUnknownBudget, "", fmt.Sprintf("budget index %d is out of range", index))
	}
	return a.budgets[index], nil
}

// BudgetIndex resolves a category name to its 0-based index.
func (a *Account) BudgetIndex(name string) (int, error) {
	for i, b := range a.budgets {
		if b.name.Matches(name) {
			return i, nil
		}
	}
	return -1, newDomainError(ErrUnknownBudget, name, "")
}

// Process validates req, applies it to the balance and budget, and evaluates the
// budget against policy. Validation failures leave the account untouched.
// A nil tracker counts locks for this call only.
func (a *Account) Process(req TransactionRequest, policy Policy, tracker *LockTracker) (*TransactionOutcome, error) {
	if tracker == nil {
		tracker = &LockTracker{}
	}

	budget, err := a.Budget(req.BudgetIndex)
	if err != nil {
		return nil, err
	}

	// Locking is checked before the amount so a locked budget rejects everything.
	if budget.Locked() {
		return nil, newDomainError(ErrBudgetLocked, string(budget.name), "")
	}

	if !req.Amount.IsPositive() {
		return nil, newDomainError(ErrInvalidAmount, string(budget.name), "")
	}

	if a.balance.LessThan(req.Amount) {
		return nil, newDomainError(ErrInsufficientBalance, string(budget.name),
			fmt.Sprintf("balance %s cannot cover %s", a.balance.StringFixed(2), req.Amount.StringFixed(2)))
	}

	if err := budget.Apply(req.Amount); err != nil {
		return nil, err
	}
	a.balance = a.balance.Sub(req.Amount)

	t := budget.Record(req.Timestamp, req.Amount, req.Location)

	outcome := &TransactionOutcome{Transaction: t, Notices: []Notice{}}
	a.evaluate(budget, policy, tracker, outcome)

	outcome.Budget = budget.Snapshot()
	outcome.Balance = a.balance
	outcome.SessionLocked = tracker.SessionLocked()
	return outcome, nil
}

func (a *Account) evaluate(budget *Budget, policy Policy, tracker *LockTracker, outcome *TransactionOutcome) {
	used := budget.PercentUsed()

	switch {
	case budget.Exceeded():
		outcome.Notices = append(outcome.Notices, Notice{Kind: NoticeExceeded, Budget: budget.name, Message: policy.Notification()})
		outcome.History = budget.Transactions()
	case policy.ExceedsWarning(used):
		outcome.Notices = append(outcome.Notices, Notice{Kind: NoticeWarning, Budget: budget.name, Message: NotificationWarning})
		outcome.History = budget.Transactions()
	}

	if !policy.ExceedsLock(used) || !budget.Lock() {
		return
	}
	outcome.Notices = append(outcome.Notices, budgetLockedNotice(budget.name))

	if tracker.recordBudgetLock(policy) {
		outcome.Notices = append(outcome.Notices, sessionLockedNotice(budget.name, tracker.LockedBudgets()))
	}
}

// Budgets returns snapshots of all budgets in menu order.
func (a *Account) Budgets() []BudgetSnapshot {
	out := make([]BudgetSnapshot, 0, BudgetCount)
	for _, b := range a.budgets {
		out = append(out, b.Snapshot())
	}
	return out
}

// Transactions returns the history of the budget at a 0-based index.
func (a *Account) Transactions(index int) ([]Transaction, error) {
	b, err := a.Budget(index)
	if err != nil {
		return nil, err
	}
	return b.Transactions(), nil
}

// Summary returns the account details with every budget.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:        a.id,
		OwnerName: a.ownerName,
		Balance:   a.balance,
		Budgets:   a.Budgets(),
	}
}
