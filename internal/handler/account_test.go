package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// switchingModerator logs another user in just before a transaction is
// recorded, as a concurrent login request would.
type switchingModerator struct {
	*fam.Moderator
	switchTo string
}

func (s *switchingModerator) RecordTransaction(req models.TransactionRequest) (fam.UserInfo, *models.TransactionOutcome, error) {
	if s.switchTo != "" {
		if _, err := s.Moderator.Login(s.switchTo); err != nil {
			return fam.UserInfo{}, nil, err
		}
	}
	return s.Moderator.RecordTransaction(req)
}

func spentOn(t *testing.T, m *fam.Moderator, userID string, index int) decimal.Decimal {
	t.Helper()
	_, err := m.Login(userID)
	require.NoError(t, err)
	budgets, err := m.Budgets()
	require.NoError(t, err)
	return budgets[index].Spent
}

func TestHandleTransactions_NoticesNameTheChargedUser(t *testing.T) {
	m := fam.New()
	deps := newTestDeps()
	deps.Moderator = m

	var published []NoticeMessage
	deps.Queue = &MockQueueClient{
		EnqueueMessageFunc: func(ctx context.Context, queueName string, message any) error {
			published = append(published, message.(NoticeMessage))
			return nil
		},
	}
	h := NewRouter(deps)
	ann := registerUser(t, h, "Ann", "angel")
	bob := registerUser(t, h, "Bob", "angel")

	w := doJSON(t, h, http.MethodPost, "/api/transactions", map[string]any{"budget": 2, "amount": 95})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, published, 1)
	assert.Equal(t, bob.ID, published[0].UserID)
	assert.Equal(t, "Bob", published[0].UserName)

	// Ann logs in between the request arriving and the spend being recorded.
	deps.Moderator = &switchingModerator{Moderator: m, switchTo: ann.ID}
	w = doJSON(t, h, http.MethodPost, "/api/transactions", map[string]any{"budget": 1, "amount": 150})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, published, 2)
	assert.Equal(t, ann.ID, published[1].UserID)
	assert.Equal(t, "Ann", published[1].UserName)

	assert.True(t, spentOn(t, m, ann.ID, 0).Equal(decimal.NewFromInt(150)))
	assert.True(t, spentOn(t, m, bob.ID, 0).IsZero())
	assert.True(t, spentOn(t, m, bob.ID, 1).Equal(decimal.NewFromInt(95)))
}

func TestHandleHousehold(t *testing.T) {
	h := NewRouter(newTestDeps())

	w := doJSON(t, h, http.MethodGet, "/api/household", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[models.HouseholdSummary](t, w).Members)

	registerUser(t, h, "Ann", "angel")
	w = doJSON(t, h, http.MethodPost, "/api/transactions", map[string]any{"budget": "Eating Out", "amount": 30})
	require.Equal(t, http.StatusCreated, w.Code)
	registerUser(t, h, "Bob", "troublemaker")
	w = doJSON(t, h, http.MethodPost, "/api/transactions", map[string]any{"budget": "Eating Out", "amount": 20})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/household", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[models.HouseholdSummary](t, w)
	assert.Equal(t, 2, summary.Members)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(1950)))
	assert.True(t, summary.TotalSpent.Equal(decimal.NewFromInt(50)))
	require.Len(t, summary.Categories, models.BudgetCount)
	assert.Equal(t, models.CategoryEatingOut, summary.Categories[2].Category)
	assert.True(t, summary.Categories[2].Spent.Equal(decimal.NewFromInt(50)))
}
