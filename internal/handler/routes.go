package handler

import (
	"log/slog"
	"net/http"
)

// NewRouter registers every API route and Functions trigger on a new mux.
func NewRouter(d *Dependencies) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users", d.HandleUsers)
	mux.HandleFunc("POST /api/users", d.HandleUsers)
	mux.HandleFunc("POST /api/login", d.HandleLogin)
	mux.HandleFunc("POST /api/logout", d.HandleLogout)
	mux.HandleFunc("GET /api/session", d.HandleSession)

	mux.HandleFunc("GET /api/budgets", d.HandleBudgets)
	mux.HandleFunc("GET /api/transactions", d.HandleTransactions)
	mux.HandleFunc("POST /api/transactions", d.HandleTransactions)
	mux.HandleFunc("GET /api/account", d.HandleAccount)
	mux.HandleFunc("GET /api/household", d.HandleHousehold)

	mux.HandleFunc("GET /api/contacts", d.HandleContacts)
	mux.HandleFunc("POST /api/contacts", d.HandleContacts)
	mux.HandleFunc("DELETE /api/contacts", d.HandleContacts)

	mux.HandleFunc("POST /api/upload", d.HandleUpload)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Functions host triggers.
	mux.HandleFunc("/HttpTrigger", HandleHTTPTrigger(mux))
	mux.HandleFunc("/ProcessQueue", d.ProcessQueue)
	mux.HandleFunc("/DigestTrigger", d.HandleDigestTrigger)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("unmatched request", "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusNotFound, "Not found")
	})

	return mux
}
