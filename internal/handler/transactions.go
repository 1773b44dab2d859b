package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocjay1/fam/internal/csvparse"
	"github.com/rocjay1/fam/internal/models"
	"github.com/shopspring/decimal"
)

// budgetRef names a budget by category or 1-based menu number, as a JSON string or number.
type budgetRef string

func (b *budgetRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = budgetRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = budgetRef(n.String())
	return nil
}

type transactionBody struct {
	Budget    budgetRef       `json:"budget"`
	Amount    decimal.Decimal `json:"amount"`
	Location  string          `json:"location"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

func (b transactionBody) toRequest() (models.TransactionRequest, error) {
	index, err := csvparse.ResolveBudget(string(b.Budget))
	if err != nil {
		return models.TransactionRequest{}, err
	}
	req := models.TransactionRequest{
		BudgetIndex: index,
		Amount:      b.Amount,
		Location:    b.Location,
	}
	if b.Timestamp != nil {
		req.Timestamp = b.Timestamp.UTC()
	}
	return req, nil
}

// HandleTransactions lists a budget's history (GET ?budget=) or records a spend (POST).
func (d *Dependencies) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		index, err := csvparse.ResolveBudget(r.URL.Query().Get("budget"))
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		transactions, err := d.Moderator.Transactions(index)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, transactions)

	case http.MethodPost:
		var body transactionBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			slog.Warn("invalid transaction body", "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req, err := body.toRequest()
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, outcome, err := d.Moderator.RecordTransaction(req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}

		slog.Info("recorded transaction",
			"userId", user.ID,
			"budget", outcome.Transaction.Category,
			"amount", outcome.Transaction.Amount.StringFixed(2),
			"notices", len(outcome.Notices),
		)
		d.publishNotices(r.Context(), user, outcome.Notices, outcome.SessionLocked)
		WriteJSON(w, http.StatusCreated, outcome)

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
