package handler

import "net/http"

// HandleBudgets returns the current user's budgets in menu order.
func (d *Dependencies) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	budgets, err := d.Moderator.Budgets()
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, budgets)
}

// HandleAccount returns the current user's bank account details.
func (d *Dependencies) HandleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	account, err := d.Moderator.AccountDetails()
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

// HandleHousehold returns balances and spending totalled across the household.
// It needs no login.
func (d *Dependencies) HandleHousehold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	WriteJSON(w, http.StatusOK, d.Moderator.Household())
}
