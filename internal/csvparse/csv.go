package csvparse

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
)

// Required statement columns. Location is optional.
const (
	ColumnDate     = "Date"
	ColumnBudget   = "Budget"
	ColumnAmount   = "Amount"
	ColumnLocation = "Location"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

// ParseStatement parses a bank statement CSV into transaction requests in file order.
// It returns the requests and an error message for every row that could not be parsed.
// Amounts are not validated here; the account rejects non-positive values.
func ParseStatement(content string) ([]models.TransactionRequest, []string) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, []string{fmt.Sprintf("Failed to read CSV: %v", err)}
	}

	if len(records) < 2 {
		return []models.TransactionRequest{}, nil
	}

	headers := parseHeaders(records[0])
	for _, col := range []string{ColumnDate, ColumnBudget, ColumnAmount} {
		if !contains(headers, col) {
			return nil, []string{fmt.Sprintf("Missing column: %s", col)}
		}
	}

	requests := []models.TransactionRequest{}
	var errors []string

	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < len(headers) {
			errors = append(errors, fmt.Sprintf("Row %d: Not enough fields", rowNum))
			continue
		}

		row := make(map[string]string, len(headers))
		for j, header := range headers {
			row[header] = strings.TrimSpace(record[j])
		}

		req, err := mapToRequest(row)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		requests = append(requests, *req)
	}

	return requests, errors
}

// ResolveBudget maps a category name or a 1-based menu number to a 0-based budget index.
// Numbers are not range checked so the account can report them as unknown budgets.
func ResolveBudget(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing %s", ColumnBudget)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, nil
	}
	for i, c := range models.DefaultCategories {
		if c.Matches(s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s: %s", ColumnBudget, s)
}

// ParseTimestamp accepts RFC 3339, "2006-01-02 15:04" or a bare date, interpreted as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s format: %s", ColumnDate, s)
}

func parseHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, h := range row {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return headers
}

func contains(headers []string, col string) bool {
	for _, h := range headers {
		if strings.EqualFold(h, col) {
			return true
		}
	}
	return false
}

func lookup(row map[string]string, col string) string {
	if v, ok := row[col]; ok {
		return v
	}
	for k, v := range row {
		if strings.EqualFold(k, col) {
			return v
		}
	}
	return ""
}

func mapToRequest(row map[string]string) (*models.TransactionRequest, error) {
	dateStr := lookup(row, ColumnDate)
	if dateStr == "" {
		return nil, fmt.Errorf("missing %s", ColumnDate)
	}
	ts, err := ParseTimestamp(dateStr)
	if err != nil {
		return nil, err
	}

	index, err := ResolveBudget(lookup(row, ColumnBudget))
	if err != nil {
		return nil, err
	}

	amountStr := lookup(row, ColumnAmount)
	if amountStr == "" {
		return nil, fmt.Errorf("missing %s", ColumnAmount)
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(amountStr, "$"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", ColumnAmount, amountStr)
	}

	return &models.TransactionRequest{
		BudgetIndex: index,
		Amount:      amount,
		Location:    lookup(row, ColumnLocation),
		Timestamp:   ts,
	}, nil
}
