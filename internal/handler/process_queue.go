package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocjay1/fam/internal/csvparse"
	"github.com/rocjay1/fam/internal/fam"
)

// invokeRequest is the payload the Functions host posts to custom handler triggers.
type invokeRequest struct {
	Data     map[string]any `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// invokeResponse is the custom handler reply for non-HTTP triggers.
type invokeResponse struct {
	Outputs     map[string]any `json:"Outputs,omitempty"`
	Logs        []string       `json:"Logs,omitempty"`
	ReturnValue any            `json:"ReturnValue,omitempty"`
}

// decodeQueueItem extracts the queue message, which the host sends either as
// a JSON string or as an already decoded object.
func decodeQueueItem(data map[string]any, v any) error {
	item, ok := data["queueItem"]
	if !ok {
		if item, ok = data["queueitem"]; !ok {
			return errors.New("missing queueItem in Data")
		}
	}

	var raw []byte
	switch value := item.(type) {
	case string:
		raw = []byte(value)
	case map[string]any:
		var err error
		if raw, err = json.Marshal(value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unexpected queueItem type %T", item)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid queueItem JSON: %w", err)
	}
	return nil
}

// ProcessQueue replays a queued statement against its member's account.
// Messages that can never succeed are consumed with 200; only storage failures return 500 so the host retries.
func (d *Dependencies) ProcessQueue(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var invokeReq invokeRequest
	if err := json.Unmarshal(body, &invokeReq); err != nil {
		slog.Error("failed to unmarshal queue request", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
		return
	}

	var job StatementJob
	if err := decodeQueueItem(invokeReq.Data, &job); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if job.BlobName == "" || job.UserID == "" {
		slog.Warn("statement job missing fields", "job", job)
		WriteError(w, http.StatusBadRequest, "Missing blobName or userId")
		return
	}
	if d.Blob == nil {
		WriteError(w, http.StatusServiceUnavailable, "Statement storage is not configured")
		return
	}

	ctx := r.Context()
	content, err := d.Blob.DownloadText(ctx, job.BlobName)
	if err != nil {
		slog.Error("failed to download statement", "blob_name", job.BlobName, "error", err)
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to download CSV: %v", err))
		return
	}

	requests, parseErrors := csvparse.ParseStatement(content)
	slog.Info("parsed statement", "blob_name", job.BlobName, "rows", len(requests), "errors", len(parseErrors))

	user, err := d.Moderator.User(job.UserID)
	if err != nil {
		slog.Warn("dropping statement for unknown user", "userId", job.UserID, "blob_name", job.BlobName)
		WriteJSON(w, http.StatusOK, invokeResponse{Logs: []string{err.Error()}})
		return
	}

	report, err := d.Moderator.ReplayStatement(job.UserID, job.Digest, requests)
	switch {
	case errors.Is(err, fam.ErrDuplicateStatement), errors.Is(err, fam.ErrUserLocked):
		slog.Warn("statement not replayed", "userId", job.UserID, "blob_name", job.BlobName, "reason", err)
		WriteJSON(w, http.StatusOK, invokeResponse{Logs: []string{err.Error()}})
		return
	case err != nil:
		slog.Error("statement replay failed", "userId", job.UserID, "error", err)
		WriteError(w, StatusFor(err), err.Error())
		return
	}

	for _, outcome := range report.Outcomes {
		d.publishNotices(ctx, user, outcome.Notices, outcome.SessionLocked)
	}

	problems := append([]string{}, parseErrors...)
	for _, f := range report.Failures {
		problems = append(problems, fmt.Sprintf("Transaction %d: %s", f.Row, f.Message))
	}
	if report.Skipped > 0 {
		problems = append(problems, fmt.Sprintf("%d transactions skipped because %s's account is locked", report.Skipped, user.Name))
	}
	if len(problems) > 0 && d.Email != nil {
		if recipients := d.recipientsFor(ctx, job.UserID); len(recipients) > 0 {
			if err := d.Email.SendErrorEmail(ctx, recipients, problems); err != nil {
				slog.Error("failed to send statement error email", "userId", job.UserID, "error", err)
			}
		}
	}

	slog.Info("statement replay complete",
		"userId", job.UserID,
		"blob_name", job.BlobName,
		"applied", report.Applied,
		"failed", len(report.Failures),
		"skipped", report.Skipped,
		"session_locked", report.SessionLocked,
	)
	WriteJSON(w, http.StatusOK, invokeResponse{Logs: problems, ReturnValue: report})
}
