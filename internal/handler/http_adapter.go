package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
)

// HTTPTriggerRequest is the payload the Functions host posts for HTTP triggers
// when request forwarding is disabled.
type HTTPTriggerRequest struct {
	Data struct {
		Req struct {
			URL             string              `json:"Url"`
			Method          string              `json:"Method"`
			Query           map[string]string   `json:"Query"`
			Headers         map[string][]string `json:"Headers"`
			Params          map[string]string   `json:"Params"`
			Body            string              `json:"Body"`
			IsBase64Encoded bool                `json:"isBase64Encoded"`
		} `json:"req"`
	} `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// HTTPTriggerResponse is the reply the host expects for HTTP triggers.
type HTTPTriggerResponse struct {
	Outputs struct {
		Res struct {
			StatusCode int               `json:"statusCode"`
			Headers    map[string]string `json:"headers"`
			Body       string            `json:"body"`
		} `json:"res"`
	} `json:"Outputs"`
	Logs        []string `json:"Logs,omitempty"`
	ReturnValue any      `json:"ReturnValue,omitempty"`
}

// triggerBody returns the wrapped request body, base64-decoded only when the
// host flagged it as encoded.
func triggerBody(body string, isBase64 bool) []byte {
	if body == "" {
		return nil
	}
	if !isBase64 {
		return []byte(body)
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		slog.Warn("body flagged as base64 failed to decode", "error", err)
		return []byte(body)
	}
	return decoded
}

// HandleHTTPTrigger unwraps a host HTTP trigger invocation, serves it with next
// and wraps the recorded response.
func HandleHTTPTrigger(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invokeReq HTTPTriggerRequest
		if err := json.NewDecoder(r.Body).Decode(&invokeReq); err != nil {
			slog.Error("failed to unmarshal HTTP trigger request", "error", err)
			http.Error(w, "Failed to unmarshal request", http.StatusBadRequest)
			return
		}
		in := invokeReq.Data.Req

		var body io.Reader = http.NoBody
		if data := triggerBody(in.Body, in.IsBase64Encoded); data != nil {
			body = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(r.Context(), in.Method, in.URL, body)
		if err != nil {
			slog.Error("failed to create internal request", "error", err)
			http.Error(w, "Failed to create internal request", http.StatusInternalServerError)
			return
		}
		for k, values := range in.Headers {
			for _, v := range values {
				req.Header.Add(k, v)
			}
		}

		slog.Debug("serving wrapped HTTP request", "method", req.Method, "path", req.URL.Path)
		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, req)
		res := recorder.Result()
		defer res.Body.Close()
		resBody, _ := io.ReadAll(res.Body)

		var out HTTPTriggerResponse
		out.Outputs.Res.StatusCode = res.StatusCode
		out.Outputs.Res.Headers = make(map[string]string, len(res.Header))
		for k, v := range res.Header {
			out.Outputs.Res.Headers[k] = strings.Join(v, ", ")
		}
		out.Outputs.Res.Body = string(resBody)

		WriteJSON(w, http.StatusOK, out)
	}
}
