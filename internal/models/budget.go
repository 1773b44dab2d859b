package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Budget tracks spending against a fixed limit for one category.
// Spent always equals the sum of the recorded transaction amounts when
// Apply and Record are used together, as Account.Process does.
type Budget struct {
	name         Category
	limit        decimal.Decimal
	spent        decimal.Decimal
	transactions []Transaction
	locked       bool
}

// BudgetSnapshot is a read-only copy of a budget's state.
type BudgetSnapshot struct {
	Name             Category        `json:"name"`
	Limit            decimal.Decimal `json:"limit"`
	Spent            decimal.Decimal `json:"spent"`
	AmountLeft       decimal.Decimal `json:"amountLeft"`
	PercentUsed      decimal.Decimal `json:"percentUsed"`
	Locked           bool            `json:"locked"`
	TransactionCount int             `json:"transactionCount"`
}

// NewBudget creates an unlocked budget with nothing spent.
func NewBudget(name Category, limit decimal.Decimal) (*Budget, error) {
	if !limit.IsPositive() {
		return nil, newDomainError(ErrInvalidLimit, string(name), "")
	}
	return &Budget{
		name:  name,
		limit: limit,
		spent: decimal.Zero,
	}, nil
}

// Name returns the budget category.
func (b *Budget) Name() Category { return b.name }

// Limit returns the spending limit fixed at creation.
func (b *Budget) Limit() decimal.Decimal { return b.limit }

// Spent returns the total amount applied to the budget.
func (b *Budget) Spent() decimal.Decimal { return b.spent }

// Locked reports whether spending against the budget is frozen.
func (b *Budget) Locked() bool { return b.locked }

// AmountLeft returns limit - spent. A negative value means the budget is exceeded.
func (b *Budget) AmountLeft() decimal.Decimal {
	return b.limit.Sub(b.spent)
}

// PercentUsed returns spent as a percentage of the limit.
func (b *Budget) PercentUsed() decimal.Decimal {
	return b.spent.Div(b.limit).Mul(hundred)
}

// Exceeded reports whether more than the limit has been spent.
func (b *Budget) Exceeded() bool {
	return b.AmountLeft().IsNegative()
}

// Apply adds amount to the spent total. It does not record a transaction.
func (b *Budget) Apply(amount decimal.Decimal) error {
	if b.locked {
		return newDomainError(ErrBudgetLocked, string(b.name), "")
	}
	b.spent = b.spent.Add(amount)
	return nil
}

// Record appends a transaction to the history without validating it.
func (b *Budget) Record(timestamp time.Time, amount decimal.Decimal, location string) Transaction {
	t := Transaction{
		Category:  b.name,
		Timestamp: timestamp,
		Amount:    amount,
		Location:  location,
	}
	b.transactions = append(b.transactions, t)
	return t
}

// Lock freezes the budget. It returns true only when the budget was previously unlocked,
// so callers can count each transition once.
func (b *Budget) Lock() bool {
	if b.locked {
		return false
	}
	b.locked = true
	return true
}

// Transactions returns a copy of the recorded history, oldest first.
func (b *Budget) Transactions() []Transaction {
	out := make([]Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// Snapshot returns the budget's current state.
func (b *Budget) Snapshot() BudgetSnapshot {
	return BudgetSnapshot{
		Name:             b.name,
		Limit:            b.limit,
		Spent:            b.spent,
		AmountLeft:       b.AmountLeft(),
		PercentUsed:      b.PercentUsed(),
		Locked:           b.locked,
		TransactionCount: len(b.transactions),
	}
}
