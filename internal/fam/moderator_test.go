package fam

import (
	"fmt"
	"testing"
	"time"

	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestModerator() *Moderator {
	m := New()
	n := 0
	m.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	m.now = func() time.Time { return fixedNow }
	return m
}

func registration(name, userType string) RegisterRequest {
	var limits [models.BudgetCount]decimal.Decimal
	for i := range limits {
		limits[i] = decimal.NewFromInt(100)
	}
	return RegisterRequest{
		Name:          name,
		Age:           14,
		UserType:      userType,
		AccountNumber: "ACC-" + name,
		BankName:      "Credit Union",
		Balance:       decimal.NewFromInt(1000),
		Limits:        limits,
	}
}

func spend(index int, amount int64) models.TransactionRequest {
	return models.TransactionRequest{BudgetIndex: index, Amount: decimal.NewFromInt(amount), Location: "Shop"}
}

func TestRegister_Validation(t *testing.T) {
	m := newTestModerator()

	req := registration("", "angel")
	_, err := m.Register(req)
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	req = registration("Ann", "angel")
	req.Age = 0
	_, err = m.Register(req)
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	_, err = m.Register(registration("Ann", "saint"))
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	req = registration("Ann", "angel")
	req.Limits[1] = decimal.Zero
	_, err = m.Register(req)
	assert.ErrorIs(t, err, models.ErrInvalidLimit)

	assert.Empty(t, m.Users())
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestRegister_LogsInNewUser(t *testing.T) {
	m := newTestModerator()

	info, err := m.Register(registration("Ann", "2"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", info.ID)
	assert.Equal(t, models.UserTypePermissive, info.UserType)
	assert.Equal(t, "Troublemaker", info.Type)

	current, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, info, current)

	details, err := m.AccountDetails()
	require.NoError(t, err)
	assert.Equal(t, "ACC-Ann", details.ID)
	assert.Equal(t, "Credit Union", details.OwnerName)
	assert.True(t, details.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestRegister_GeneratesAccountNumber(t *testing.T) {
	m := newTestModerator()
	req := registration("Ann", "angel")
	req.AccountNumber = ""

	info, err := m.Register(req)
	require.NoError(t, err)
	assert.Equal(t, "id-2", info.ID)

	details, err := m.AccountDetails()
	require.NoError(t, err)
	assert.Equal(t, "id-1", details.ID)
}

func TestLoginLogout(t *testing.T) {
	m := newTestModerator()
	ann, err := m.Register(registration("Ann", "angel"))
	require.NoError(t, err)
	bob, err := m.Register(registration("Bob", "rebel"))
	require.NoError(t, err)

	users := m.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "Ann", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)

	require.NoError(t, m.Logout())
	assert.ErrorIs(t, m.Logout(), ErrNotLoggedIn)

	_, err = m.Budgets()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = m.Login("nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)

	info, err := m.Login(ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.ID, info.ID)

	_, err = m.User(bob.ID)
	require.NoError(t, err)
	_, err = m.User("nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestRecordTransaction_OperatesOnCurrentUser(t *testing.T) {
	m := newTestModerator()
	ann, err := m.Register(registration("Ann", "angel"))
	require.NoError(t, err)
	_, err = m.Register(registration("Bob", "angel"))
	require.NoError(t, err)

	actor, outcome, err := m.RecordTransaction(spend(0, 40))
	require.NoError(t, err)
	assert.Equal(t, "Bob", actor.Name)
	assert.Equal(t, fixedNow, outcome.Transaction.Timestamp)

	_, err = m.Login(ann.ID)
	require.NoError(t, err)
	budgets, err := m.Budgets()
	require.NoError(t, err)
	assert.True(t, budgets[0].Spent.IsZero(), "Bob's spend must not touch Ann's budgets")

	_, _, err = m.RecordTransaction(spend(5, 1))
	assert.ErrorIs(t, err, models.ErrUnknownBudget)

	_, err = m.Transactions(-1)
	assert.ErrorIs(t, err, models.ErrUnknownBudget)
}

func TestRecordTransaction_KeepsSuppliedTimestamp(t *testing.T) {
	m := newTestModerator()
	_, err := m.Register(registration("Ann", "angel"))
	require.NoError(t, err)

	ts := time.Date(2023, 12, 24, 18, 0, 0, 0, time.UTC)
	req := spend(3, 5)
	req.Timestamp = ts
	_, _, err = m.RecordTransaction(req)
	require.NoError(t, err)

	txs, err := m.Transactions(3)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, ts, txs[0].Timestamp)
}

func TestSessionLock_ForcesLogout(t *testing.T) {
	m := newTestModerator()
	rebel, err := m.Register(registration("Rex", "rebel"))
	require.NoError(t, err)

	_, outcome, err := m.RecordTransaction(spend(2, 105))
	require.NoError(t, err)
	assert.False(t, outcome.SessionLocked)

	actor, outcome, err := m.RecordTransaction(spend(1, 120))
	require.NoError(t, err)
	assert.True(t, outcome.SessionLocked)
	assert.True(t, actor.SessionLocked)
	assert.Equal(t, 2, actor.LockedBudgets)
	assert.True(t, outcome.HasNotice(models.NoticeSessionLocked))

	_, err = m.Budgets()
	assert.ErrorIs(t, err, ErrUserLocked)
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn, "the locked user is logged out")

	_, err = m.Login(rebel.ID)
	assert.ErrorIs(t, err, ErrUserLocked)

	info, err := m.User(rebel.ID)
	require.NoError(t, err)
	assert.True(t, info.SessionLocked)
	assert.Equal(t, 2, info.LockedBudgets)
}

func TestAlerts(t *testing.T) {
	m := newTestModerator()
	_, err := m.Register(registration("Ann", "angel"))
	require.NoError(t, err)
	_, _, err = m.RecordTransaction(spend(1, 95))
	require.NoError(t, err)

	alerts := m.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Ann", alerts[0].UserName)
	assert.Equal(t, models.CategoryClothing, alerts[0].Budget.Name)
}
