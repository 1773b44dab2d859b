package handler

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/rocjay1/fam/internal/fam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triggerPayload(method, url, body string, isBase64 bool) map[string]any {
	return map[string]any{
		"Data": map[string]any{
			"req": map[string]any{
				"Url":             url,
				"Method":          method,
				"Headers":         map[string][]string{"Content-Type": {"application/json"}},
				"Body":            body,
				"isBase64Encoded": isBase64,
			},
		},
		"Metadata": map[string]any{},
	}
}

func TestHandleHTTPTrigger_WrapsResponse(t *testing.T) {
	h := NewRouter(newTestDeps())

	register := `{"name":"Ann","age":12,"userType":"angel","bankName":"CU","balance":"50","limits":["10","10","10","10"]}`
	w := doJSON(t, h, http.MethodPost, "/HttpTrigger", triggerPayload(http.MethodPost, "http://localhost:7071/api/users", register, false))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[HTTPTriggerResponse](t, w)
	assert.Equal(t, http.StatusCreated, resp.Outputs.Res.StatusCode)
	assert.Equal(t, "application/json", resp.Outputs.Res.Headers["Content-Type"])
	assert.Contains(t, resp.Outputs.Res.Body, `"name":"Ann"`)

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"userId":"missing"}`))
	w = doJSON(t, h, http.MethodPost, "/HttpTrigger", triggerPayload(http.MethodPost, "http://localhost:7071/api/login", encoded, true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, decode[HTTPTriggerResponse](t, w).Outputs.Res.StatusCode)

	w = doJSON(t, h, http.MethodPost, "/HttpTrigger", triggerPayload(http.MethodGet, "http://localhost:7071/api/users", "", false))
	resp = decode[HTTPTriggerResponse](t, w)
	assert.Equal(t, http.StatusOK, resp.Outputs.Res.StatusCode)
	assert.Contains(t, resp.Outputs.Res.Body, "Ann")
}

func TestHandleHTTPTrigger_BadPayload(t *testing.T) {
	h := HandleHTTPTrigger(http.NotFoundHandler())
	w := doJSON(t, h, http.MethodPost, "/HttpTrigger", "nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerBody(t *testing.T) {
	assert.Nil(t, triggerBody("", false))
	assert.Equal(t, `{"a":1}`, string(triggerBody(`{"a":1}`, false)))

	encoded := base64.StdEncoding.EncodeToString([]byte("Date,Budget,Amount"))
	assert.Equal(t, "Date,Budget,Amount", string(triggerBody(encoded, true)))
	assert.Equal(t, "not base64!", string(triggerBody("not base64!", true)))

	// Plain text that happens to be valid base64 is left alone unless flagged.
	assert.Equal(t, "abcd", string(triggerBody("abcd", false)))
	assert.Equal(t, encoded, string(triggerBody(encoded, false)))
}

func TestHealth(t *testing.T) {
	w := doJSON(t, NewRouter(newTestDeps()), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, NewRouter(newTestDeps()), http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

var _ Moderator = (*fam.Moderator)(nil)
