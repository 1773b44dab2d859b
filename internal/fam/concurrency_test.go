package fam

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerator_ConcurrentSessionsAndReplays(t *testing.T) {
	const (
		workers   = 4
		perWorker = 25
	)

	m := newTestModerator()
	ann, err := m.Register(registration("Ann", "angel"))
	require.NoError(t, err)
	bob, err := m.Register(registration("Bob", "angel"))
	require.NoError(t, err)
	cal, err := m.Register(registration("Cal", "angel"))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		chargedMu sync.Mutex
		charged   = map[string]int64{}
		applied   = 0
	)

	for w := 0; w < workers; w++ {
		wg.Add(2)

		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				who := ann.ID
				if (w+i)%2 == 1 {
					who = bob.ID
				}
				if _, err := m.Login(who); err != nil {
					t.Errorf("login: %v", err)
					return
				}
				actor, _, err := m.RecordTransaction(spend(0, 1))
				if err != nil {
					t.Errorf("record: %v", err)
					return
				}
				chargedMu.Lock()
				charged[actor.ID]++
				chargedMu.Unlock()
			}
		}(w)

		go func(w int) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				report, err := m.ReplayStatement(cal.ID, fmt.Sprintf("stmt-%d-%d", w, i), []models.TransactionRequest{spend(3, 1), spend(3, 1)})
				if err != nil {
					t.Errorf("replay: %v", err)
					return
				}
				chargedMu.Lock()
				applied += report.Applied
				chargedMu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, int64(workers*perWorker), charged[ann.ID]+charged[bob.ID])
	assert.Equal(t, workers*5*2, applied)

	for _, u := range []UserInfo{ann, bob} {
		_, err := m.Login(u.ID)
		require.NoError(t, err)
		budgets, err := m.Budgets()
		require.NoError(t, err)
		assert.True(t, budgets[0].Spent.Equal(decimal.NewFromInt(charged[u.ID])),
			"%s was charged %d but spent %s", u.Name, charged[u.ID], budgets[0].Spent)
	}

	_, err = m.Login(cal.ID)
	require.NoError(t, err)
	budgets, err := m.Budgets()
	require.NoError(t, err)
	assert.True(t, budgets[3].Spent.Equal(decimal.NewFromInt(int64(applied))))

	summary := m.Household()
	assert.True(t, summary.TotalSpent.Equal(decimal.NewFromInt(int64(workers*perWorker+applied))))
}

func TestModerator_Household(t *testing.T) {
	m := newTestModerator()
	_, err := m.Register(registration("Ann", "angel"))
	require.NoError(t, err)
	_, _, err = m.RecordTransaction(spend(2, 40))
	require.NoError(t, err)

	summary := m.Household()
	assert.Equal(t, 1, summary.Members)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(960)))
	assert.True(t, summary.Categories[2].Spent.Equal(decimal.NewFromInt(40)))
}
