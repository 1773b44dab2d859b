package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocjay1/fam/internal/fam"
	"github.com/stretchr/testify/require"
)

func newTestDeps() *Dependencies {
	return &Dependencies{
		Moderator:      fam.New(),
		StatementQueue: "statement-jobs",
		NoticeQueue:    "budget-notices",
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func registerBody(name, userType string) map[string]any {
	return map[string]any{
		"name":          name,
		"age":           15,
		"userType":      userType,
		"accountNumber": "ACC-" + name,
		"bankName":      "Credit Union",
		"balance":       "1000",
		"limits":        []string{"100", "100", "100", "100"},
	}
}

func registerUser(t *testing.T, h http.Handler, name, userType string) fam.UserInfo {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/users", registerBody(name, userType))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[fam.UserInfo](t, w)
}
