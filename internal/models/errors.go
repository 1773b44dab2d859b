package models

import "fmt"

// ErrorCode identifies the kind of a DomainError.
type ErrorCode string

const (
	CodeUnknownBudget       ErrorCode = "UNKNOWN_BUDGET"
	CodeBudgetLocked        ErrorCode = "BUDGET_LOCKED"
	CodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	CodeInvalidLimit        ErrorCode = "INVALID_LIMIT"
	CodeDuplicateBudget     ErrorCode = "DUPLICATE_BUDGET"
)

// DomainError is a recoverable rejection raised by the budget rules.
// Two DomainErrors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    ErrorCode
	Budget  string
	Message string
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnknownBudget       = DomainError{Code: CodeUnknownBudget, Message: "unknown budget"}
	ErrBudgetLocked        = DomainError{Code: CodeBudgetLocked, Message: "budget is locked"}
	ErrInvalidAmount       = DomainError{Code: CodeInvalidAmount, Message: "amount must be greater than zero"}
	ErrInsufficientBalance = DomainError{Code: CodeInsufficientBalance, Message: "insufficient balance"}
	ErrInvalidLimit        = DomainError{Code: CodeInvalidLimit, Message: "budget limit must be greater than zero"}
	ErrDuplicateBudget     = DomainError{Code: CodeDuplicateBudget, Message: "duplicate budget category"}
)

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Budget == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Budget)
}

// Is matches any DomainError carrying the same code.
func (e DomainError) Is(target error) bool {
	t, ok := target.(DomainError)
	return ok && t.Code == e.Code
}

func newDomainError(sentinel DomainError, budget, message string) error {
	err := sentinel
	err.Budget = budget
	if message != "" {
		err.Message = message
	}
	return err
}
