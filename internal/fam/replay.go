package fam

import (
	"errors"

	"github.com/rocjay1/fam/internal/models"
)

// RowFailure is a statement row the account rejected.
type RowFailure struct {
	Row     int              `json:"row"`
	Code    models.ErrorCode `json:"code,omitempty"`
	Message string           `json:"message"`
}

// ReplayReport summarises one statement applied to a user's account.
type ReplayReport struct {
	UserID        string                       `json:"userId"`
	Applied       int                          `json:"applied"`
	Skipped       int                          `json:"skipped"`
	Outcomes      []*models.TransactionOutcome `json:"outcomes"`
	Failures      []RowFailure                 `json:"failures"`
	SessionLocked bool                         `json:"sessionLocked"`
}

// Notices returns every notice raised while replaying, in order.
func (r *ReplayReport) Notices() []models.Notice {
	var out []models.Notice
	for _, o := range r.Outcomes {
		out = append(out, o.Notices...)
	}
	return out
}

// ReplayStatement applies requests in order to userID's account, independent of
// who is logged in. Rejected rows are collected and replay continues; it stops
// once the user's session locks, counting the remaining rows as skipped.
// A non-empty digest already applied to the user fails with ErrDuplicateStatement.
func (m *Moderator) ReplayStatement(userID, digest string, requests []models.TransactionRequest) (*ReplayReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.household.Find(userID)
	if u == nil {
		return nil, ErrUnknownUser
	}
	if u.SessionLocked() {
		return nil, ErrUserLocked
	}
	if digest != "" {
		seen := m.applied[userID]
		if _, ok := seen[digest]; ok {
			return nil, ErrDuplicateStatement
		}
		if seen == nil {
			seen = make(map[string]struct{})
			m.applied[userID] = seen
		}
		seen[digest] = struct{}{}
	}

	report := &ReplayReport{
		UserID:   userID,
		Outcomes: []*models.TransactionOutcome{},
		Failures: []RowFailure{},
	}

	for i, req := range requests {
		if u.SessionLocked() {
			report.Skipped = len(requests) - i
			break
		}
		if req.Timestamp.IsZero() {
			req.Timestamp = m.now()
		}

		outcome, err := models.SubmitTransaction(u, req)
		if err != nil {
			failure := RowFailure{Row: i + 1, Message: err.Error()}
			var domainErr models.DomainError
			if errors.As(err, &domainErr) {
				failure.Code = domainErr.Code
			}
			report.Failures = append(report.Failures, failure)
			continue
		}
		logOutcome(u, outcome)
		report.Applied++
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.SessionLocked = u.SessionLocked()
	return report, nil
}
