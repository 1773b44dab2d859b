package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rocjay1/fam/internal/utils"
)

const maxStatementBytes = 10 << 20

// StatementJob is the statement queue message telling ProcessQueue what to replay.
type StatementJob struct {
	UserID   string `json:"userId"`
	BlobName string `json:"blobName"`
	Filename string `json:"filename"`
	Digest   string `json:"digest"`
}

// HandleUpload stores a statement CSV for a member and queues it for replay.
// The member is the form's userId, or the current user when it is omitted.
func (d *Dependencies) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if d.Blob == nil || d.Queue == nil {
		WriteError(w, http.StatusServiceUnavailable, "Statement storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxStatementBytes); err != nil {
		slog.Warn("failed to parse multipart form", "error", err, "max_size_mb", maxStatementBytes>>20)
		WriteError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		current, err := d.Moderator.Current()
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		userID = current.ID
	} else if _, err := d.Moderator.User(userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to get file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded file", "filename", header.Filename, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	content := string(data)

	filename := filepath.Base(header.Filename)
	job := StatementJob{
		UserID:   userID,
		BlobName: fmt.Sprintf("%s/%s-%s", userID, time.Now().UTC().Format("20060102-150405"), filename),
		Filename: filename,
		Digest:   utils.GenerateSHA256Hash(content),
	}
	slog.Info("received statement upload", "userId", userID, "filename", filename, "size_bytes", len(data))

	if err := d.Blob.UploadText(r.Context(), job.BlobName, content); err != nil {
		slog.Error("failed to upload statement", "blob_name", job.BlobName, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to upload blob: "+err.Error())
		return
	}

	if err := d.Queue.EnqueueMessage(r.Context(), d.StatementQueue, job); err != nil {
		slog.Error("failed to enqueue statement job", "queue", d.StatementQueue, "blob_name", job.BlobName, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to enqueue message: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "queued",
		"blobName": job.BlobName,
		"digest":   job.Digest,
	})
}
