package models

import "fmt"

const (
	NotificationPolite  = "Hey buddy, please be aware of your spendings :) You have exceeded the limit for this budget."
	NotificationRude    = "You suck at managing your finances. You have exceeded the limit for this budget."
	NotificationWarning = "Warning! You are getting close to your budget limit."
)

// NoticeKind classifies a notice produced while evaluating a transaction.
type NoticeKind string

const (
	NoticeExceeded      NoticeKind = "exceeded"
	NoticeWarning       NoticeKind = "warning"
	NoticeBudgetLocked  NoticeKind = "budget_locked"
	NoticeSessionLocked NoticeKind = "session_locked"
)

// Notice is a message for the user about the state of one of their budgets.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Budget  Category   `json:"budget"`
	Message string     `json:"message"`
}

func budgetLockedNotice(budget Category) Notice {
	return Notice{
		Kind:    NoticeBudgetLocked,
		Budget:  budget,
		Message: fmt.Sprintf("The budget %q has been locked. No further transactions can be recorded against it.", budget),
	}
}

func sessionLockedNotice(budget Category, lockedBudgets int) Notice {
	return Notice{
		Kind:    NoticeSessionLocked,
		Budget:  budget,
		Message: fmt.Sprintf("%d budgets are locked. Your account is locked and you will be logged out.", lockedBudgets),
	}
}
