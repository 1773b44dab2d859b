package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UserType selects one of the fixed behavioural policies.
type UserType string

const (
	UserTypeLenient         UserType = "lenient"
	UserTypePermissive      UserType = "permissive"
	UserTypeStrictMonitored UserType = "strict-monitored"
)

// Tone is the register of the notification shown when a budget is exceeded.
type Tone string

const (
	TonePolite Tone = "polite"
	ToneRude   Tone = "rude"
)

// AccountLockThreshold is the number of locked budgets that locks the session
// of a user whose policy can lock accounts.
const AccountLockThreshold = 2

// Policy holds the thresholds and tone governing one user's warning and lock behaviour.
// A nil LockPercent means budgets never lock.
type Policy struct {
	Type           UserType         `json:"type"`
	DisplayName    string           `json:"displayName"`
	WarningPercent decimal.Decimal  `json:"warningPercent"`
	LockPercent    *decimal.Decimal `json:"lockPercent,omitempty"`
	Lockable       bool             `json:"lockable"`
	LocksAccount   bool             `json:"locksAccount"`
	Tone           Tone             `json:"tone"`
}

func percent(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var policies = map[UserType]Policy{
	UserTypeLenient: {
		Type:           UserTypeLenient,
		DisplayName:    "Angel",
		WarningPercent: decimal.NewFromInt(90),
		Tone:           TonePolite,
	},
	UserTypePermissive: {
		Type:           UserTypePermissive,
		DisplayName:    "Troublemaker",
		WarningPercent: decimal.NewFromInt(75),
		LockPercent:    percent(120),
		Lockable:       true,
		Tone:           TonePolite,
	},
	UserTypeStrictMonitored: {
		Type:           UserTypeStrictMonitored,
		DisplayName:    "Rebel",
		WarningPercent: decimal.NewFromInt(90),
		LockPercent:    percent(100),
		Lockable:       true,
		LocksAccount:   true,
		Tone:           ToneRude,
	},
}

// UserTypes lists the policy variants in menu order.
var UserTypes = []UserType{UserTypeLenient, UserTypePermissive, UserTypeStrictMonitored}

// PolicyFor returns the fixed policy of a user type.
func PolicyFor(t UserType) (Policy, error) {
	p, ok := policies[t]
	if !ok {
		return Policy{}, fmt.Errorf("unknown user type %q", t)
	}
	if p.LockPercent != nil {
		p.LockPercent = percent(p.LockPercent.IntPart())
	}
	return p, nil
}

// ParseUserType accepts a variant name, a display name, or a 1-based menu number.
func ParseUserType(s string) (UserType, error) {
	s = strings.TrimSpace(s)
	for i, t := range UserTypes {
		p := policies[t]
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, p.DisplayName) || s == fmt.Sprint(i+1) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

// Notification returns the exceeded-budget message in the policy's tone.
func (p Policy) Notification() string {
	if p.Tone == ToneRude {
		return NotificationRude
	}
	return NotificationPolite
}

// ExceedsWarning reports whether percentUsed is above the warning threshold.
func (p Policy) ExceedsWarning(percentUsed decimal.Decimal) bool {
	return percentUsed.GreaterThan(p.WarningPercent)
}

// ExceedsLock reports whether a budget at percentUsed must lock under this policy.
func (p Policy) ExceedsLock(percentUsed decimal.Decimal) bool {
	return p.Lockable && p.LockPercent != nil && percentUsed.GreaterThan(*p.LockPercent)
}

// CanLockAccount reports whether lockedBudgets is enough to lock the session.
func (p Policy) CanLockAccount(lockedBudgets int) bool {
	return p.LocksAccount && lockedBudgets >= AccountLockThreshold
}
