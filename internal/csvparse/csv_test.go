package csvparse

import (
	"testing"
	"time"

	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatement_Valid(t *testing.T) {
	content := `Date,Budget,Amount,Location
2025-08-17,Eating Out,42.5,Pizza Place
2025-08-18T10:15:00Z,4,10.00,
2025-08-19 18:30,clothing and accessories,$19.99,Mall`

	requests, errors := ParseStatement(content)
	require.Empty(t, errors)
	require.Len(t, requests, 3)

	assert.Equal(t, 2, requests[0].BudgetIndex)
	assert.True(t, requests[0].Amount.Equal(decimal.NewFromFloat(42.5)))
	assert.Equal(t, "Pizza Place", requests[0].Location)
	assert.Equal(t, time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC), requests[0].Timestamp)

	assert.Equal(t, 3, requests[1].BudgetIndex)
	assert.Equal(t, "", requests[1].Location)
	assert.Equal(t, time.Date(2025, 8, 18, 10, 15, 0, 0, time.UTC), requests[1].Timestamp)

	assert.Equal(t, 1, requests[2].BudgetIndex)
	assert.True(t, requests[2].Amount.Equal(decimal.RequireFromString("19.99")))
}

func TestParseStatement_WhitespaceAndColumnOrder(t *testing.T) {
	content := ` Location , Amount , Budget , Date
 Arcade , 5 , Games and Entertainment , 2025-08-17 `

	requests, errors := ParseStatement(content)
	require.Empty(t, errors)
	require.Len(t, requests, 1)
	assert.Equal(t, 0, requests[0].BudgetIndex)
	assert.Equal(t, "Arcade", requests[0].Location)
}

func TestParseStatement_RowErrors(t *testing.T) {
	content := `Date,Budget,Amount,Location
2025-08-17,Eating Out,42.5,Diner
bad-date,Eating Out,10.0,Diner
2025-08-17,Groceries,10.0,Store
2025-08-17,Eating Out,ten,Diner
2025-08-17,Eating Out`

	requests, errors := ParseStatement(content)
	assert.Len(t, requests, 1)
	require.Len(t, errors, 4)
	assert.Contains(t, errors[0], "Row 3")
	assert.Contains(t, errors[1], "unknown Budget")
	assert.Contains(t, errors[2], "invalid Amount")
	assert.Contains(t, errors[3], "Not enough fields")
}

func TestParseStatement_KeepsNonPositiveAndOutOfRange(t *testing.T) {
	content := `Date,Budget,Amount
2025-08-17,9,10
2025-08-17,1,-3`

	requests, errors := ParseStatement(content)
	require.Empty(t, errors)
	require.Len(t, requests, 2)
	assert.Equal(t, 8, requests[0].BudgetIndex)
	assert.True(t, requests[1].Amount.IsNegative())
}

func TestParseStatement_MissingColumn(t *testing.T) {
	_, errors := ParseStatement("Date,Amount\n2025-08-17,10")
	require.Len(t, errors, 1)
	assert.Contains(t, errors[0], "Budget")
}

func TestParseStatement_EmptyAndHeaderOnly(t *testing.T) {
	for _, content := range []string{"", "Date,Budget,Amount,Location"} {
		requests, errors := ParseStatement(content)
		assert.Empty(t, requests)
		assert.Empty(t, errors)
	}
}

func TestResolveBudget(t *testing.T) {
	idx, err := ResolveBudget(string(models.CategoryMisc))
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	idx, err = ResolveBudget("1")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = ResolveBudget("")
	assert.Error(t, err)
}
