package models

import (
	"errors"
	"strings"
)

// LockTracker counts the budgets locked under one user and holds the
// session lock that follows once enough of them are locked.
type LockTracker struct {
	lockedBudgets int
	sessionLocked bool
}

// LockedBudgets returns how many budgets have transitioned to locked.
func (t *LockTracker) LockedBudgets() int { return t.lockedBudgets }

// SessionLocked reports whether the user's session is locked. The flag is never cleared.
func (t *LockTracker) SessionLocked() bool { return t.sessionLocked }

// recordBudgetLock counts one budget lock transition and reports whether it
// caused the session to lock.
func (t *LockTracker) recordBudgetLock(policy Policy) bool {
	t.lockedBudgets++
	if t.sessionLocked || !policy.CanLockAccount(t.lockedBudgets) {
		return false
	}
	t.sessionLocked = true
	return true
}

// User is a household member with a behavioural policy and a bank account.
type User struct {
	ID      string
	Name    string
	Age     int
	Email   string
	Policy  Policy
	Account *Account

	locks LockTracker
}

// NewUser creates a user of the given type owning account.
func NewUser(id, name string, age int, userType UserType, account *Account) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("user name is required")
	}
	if account == nil {
		return nil, errors.New("user account is required")
	}
	policy, err := PolicyFor(userType)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:      id,
		Name:    name,
		Age:     age,
		Policy:  policy,
		Account: account,
	}, nil
}

// Type returns the display name of the user's policy.
func (u *User) Type() string { return u.Policy.DisplayName }

// Notification returns the exceeded-budget message in the user's tone.
func (u *User) Notification() string { return u.Policy.Notification() }

// LockedBudgets returns how many of the user's budgets have been locked.
func (u *User) LockedBudgets() int { return u.locks.LockedBudgets() }

// CanLockAccount reports whether the user's account lockout has been reached.
func (u *User) CanLockAccount() bool { return u.Policy.CanLockAccount(u.locks.LockedBudgets()) }

// SessionLocked reports whether the user must be logged out.
func (u *User) SessionLocked() bool { return u.locks.SessionLocked() }

// RecordTransaction processes req against the user's account under the user's policy.
func (u *User) RecordTransaction(req TransactionRequest) (*TransactionOutcome, error) {
	return u.Account.Process(req, u.Policy, &u.locks)
}

// SubmitTransaction processes req for user.
func SubmitTransaction(user *User, req TransactionRequest) (*TransactionOutcome, error) {
	return user.RecordTransaction(req)
}

// String renders the user as shown in the login roster.
func (u *User) String() string {
	return u.Name + " (" + u.Type() + ")"
}
