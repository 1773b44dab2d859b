package handler

import (
	"log/slog"
	"net/http"
)

// HandleDigestTrigger emails every guardian a summary of the household's
// budgets that are above their warning threshold.
func (d *Dependencies) HandleDigestTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	alerts := d.Moderator.Alerts()
	if len(alerts) == 0 {
		slog.Info("no budgets need attention; skipping digest")
		WriteJSON(w, http.StatusOK, invokeResponse{})
		return
	}

	recipients := d.recipientsFor(ctx, "")
	if len(recipients) == 0 || d.Email == nil {
		slog.Warn("no guardian to receive digest", "alerts", len(alerts))
		WriteJSON(w, http.StatusOK, invokeResponse{})
		return
	}

	if err := d.Email.SendDigest(ctx, recipients, alerts); err != nil {
		slog.Error("failed to send digest", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to send digest")
		return
	}

	slog.Info("digest sent", "alerts", len(alerts), "recipients", len(recipients))
	WriteJSON(w, http.StatusOK, invokeResponse{ReturnValue: map[string]int{"alerts": len(alerts)}})
}
