// Package fam is the household moderator: it registers users, tracks who is
// logged in and routes transactions to the current user's account.
package fam

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNotLoggedIn         = errors.New("no user is logged in")
	ErrUserLocked          = errors.New("your account is locked, you have been logged out")
	ErrUnknownUser         = errors.New("unknown user")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrDuplicateStatement  = errors.New("statement has already been applied")
)

// RegisterRequest holds the details collected when a user registers.
type RegisterRequest struct {
	Name          string                              `json:"name"`
	Age           int                                 `json:"age"`
	Email         string                              `json:"email,omitempty"`
	UserType      string                              `json:"userType"`
	AccountNumber string                              `json:"accountNumber,omitempty"`
	BankName      string                              `json:"bankName"`
	Balance       decimal.Decimal                     `json:"balance"`
	Limits        [models.BudgetCount]decimal.Decimal `json:"limits"`
}

// UserInfo is the public view of a registered user.
type UserInfo struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Email         string          `json:"email,omitempty"`
	UserType      models.UserType `json:"userType"`
	Type          string          `json:"type"`
	LockedBudgets int             `json:"lockedBudgets"`
	SessionLocked bool            `json:"sessionLocked"`
}

func infoFor(u *models.User) UserInfo {
	return UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		Age:           u.Age,
		Email:         u.Email,
		UserType:      u.Policy.Type,
		Type:          u.Type(),
		LockedBudgets: u.LockedBudgets(),
		SessionLocked: u.SessionLocked(),
	}
}

// Moderator owns the household roster and the current session.
// It is safe for concurrent use.
type Moderator struct {
	mu        sync.Mutex
	household models.Household
	current   *models.User
	applied   map[string]map[string]struct{}

	newID func() string
	now   func() time.Time
}

// New creates a moderator with an empty household.
func New() *Moderator {
	return &Moderator{
		applied: make(map[string]map[string]struct{}),
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Register validates req, creates the user's account and logs the new user in.
func (m *Moderator) Register(req RegisterRequest) (UserInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return UserInfo{}, fmt.Errorf("%w: name is required", ErrInvalidRegistration)
	}
	if req.Age <= 0 {
		return UserInfo{}, fmt.Errorf("%w: age must be a positive number", ErrInvalidRegistration)
	}
	userType, err := models.ParseUserType(req.UserType)
	if err != nil {
		return UserInfo{}, fmt.Errorf("%w: %v", ErrInvalidRegistration, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	accountNumber := strings.TrimSpace(req.AccountNumber)
	if accountNumber == "" {
		accountNumber = m.newID()
	}
	account, err := models.NewAccount(accountNumber, strings.TrimSpace(req.BankName), req.Balance, models.DefaultBudgetSpecs(req.Limits))
	if err != nil {
		return UserInfo{}, err
	}

	user, err := models.NewUser(m.newID(), name, req.Age, userType, account)
	if err != nil {
		return UserInfo{}, fmt.Errorf("%w: %v", ErrInvalidRegistration, err)
	}
	user.Email = strings.TrimSpace(req.Email)

	m.household.Members = append(m.household.Members, user)
	m.current = user

	slog.Info("registered user", "userId", user.ID, "type", user.Type())
	return infoFor(user), nil
}

// Users returns the roster in registration order.
func (m *Moderator) Users() []UserInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]UserInfo, 0, len(m.household.Members))
	for _, u := range m.household.Members {
		out = append(out, infoFor(u))
	}
	return out
}

// User returns a registered user by ID.
func (m *Moderator) User(userID string) (UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.household.Find(userID)
	if u == nil {
		return UserInfo{}, ErrUnknownUser
	}
	return infoFor(u), nil
}

// Login makes userID the current user. A user whose session is locked cannot log in.
func (m *Moderator) Login(userID string) (UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.household.Find(userID)
	if u == nil {
		return UserInfo{}, ErrUnknownUser
	}
	if u.SessionLocked() {
		return UserInfo{}, ErrUserLocked
	}
	m.current = u
	slog.Info("user logged in", "userId", u.ID)
	return infoFor(u), nil
}

// Logout ends the current session.
func (m *Moderator) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ErrNotLoggedIn
	}
	slog.Info("user logged out", "userId", m.current.ID)
	m.current = nil
	return nil
}

// Current returns the logged in user.
func (m *Moderator) Current() (UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.currentUser()
	if err != nil {
		return UserInfo{}, err
	}
	return infoFor(u), nil
}

// currentUser must be called with mu held. A locked session is ended here.
func (m *Moderator) currentUser() (*models.User, error) {
	if m.current == nil {
		return nil, ErrNotLoggedIn
	}
	if m.current.SessionLocked() {
		slog.Warn("forcing logout of locked user", "userId", m.current.ID, "lockedBudgets", m.current.LockedBudgets())
		m.current = nil
		return nil, ErrUserLocked
	}
	return m.current, nil
}

// RecordTransaction submits req for the current user and returns that user
// alongside the outcome, both resolved under one lock. A zero timestamp is
// replaced with the current time. When the transaction locks the session the
// outcome is still returned and the next call on the session fails.
func (m *Moderator) RecordTransaction(req models.TransactionRequest) (UserInfo, *models.TransactionOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.currentUser()
	if err != nil {
		return UserInfo{}, nil, err
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = m.now()
	}

	outcome, err := models.SubmitTransaction(u, req)
	if err != nil {
		return UserInfo{}, nil, err
	}
	logOutcome(u, outcome)
	return infoFor(u), outcome, nil
}

// Budgets returns the current user's budgets.
func (m *Moderator) Budgets() ([]models.BudgetSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.currentUser()
	if err != nil {
		return nil, err
	}
	return u.Account.Budgets(), nil
}

// Transactions returns the history of one of the current user's budgets.
func (m *Moderator) Transactions(index int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.currentUser()
	if err != nil {
		return nil, err
	}
	return u.Account.Transactions(index)
}

// AccountDetails returns the current user's bank account.
func (m *Moderator) AccountDetails() (models.AccountSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.currentUser()
	if err != nil {
		return models.AccountSummary{}, err
	}
	return u.Account.Summary(), nil
}

// Alerts returns every member budget that is above its owner's warning threshold.
func (m *Moderator) Alerts() []models.BudgetAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.household.GetAlerts()
}

// Household returns balances and spending totalled across every member.
func (m *Moderator) Household() models.HouseholdSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.household.Summary()
}

func logOutcome(u *models.User, outcome *models.TransactionOutcome) {
	for _, n := range outcome.Notices {
		switch n.Kind {
		case models.NoticeBudgetLocked:
			slog.Warn("budget locked", "userId", u.ID, "budget", n.Budget, "lockedBudgets", u.LockedBudgets())
		case models.NoticeSessionLocked:
			slog.Warn("session locked", "userId", u.ID, "lockedBudgets", u.LockedBudgets())
		}
	}
}
