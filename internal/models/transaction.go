package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one recorded spend against a budget. It is never modified after creation.
type Transaction struct {
	Category  Category        `json:"category"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
	Location  string          `json:"location"`
}

// TransactionRequest is a parsed, not yet validated spend submitted by a caller.
// BudgetIndex is 0-based.
type TransactionRequest struct {
	BudgetIndex int             `json:"budgetIndex"`
	Amount      decimal.Decimal `json:"amount"`
	Location    string          `json:"location"`
	Timestamp   time.Time       `json:"timestamp"`
}
