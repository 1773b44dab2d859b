package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/models"
)

// NoticeMessage is published to the notice queue for every transaction that raised notices.
type NoticeMessage struct {
	UserID        string          `json:"userId"`
	UserName      string          `json:"userName"`
	Notices       []models.Notice `json:"notices"`
	SessionLocked bool            `json:"sessionLocked"`
	PublishedAt   time.Time       `json:"publishedAt"`
}

func lockNotices(notices []models.Notice) []models.Notice {
	var out []models.Notice
	for _, n := range notices {
		if n.Kind == models.NoticeBudgetLocked || n.Kind == models.NoticeSessionLocked {
			out = append(out, n)
		}
	}
	return out
}

// publishNotices fans notices out to the notice queue and emails guardians about
// lock events. Failures are logged and never reported to the caller.
func (d *Dependencies) publishNotices(ctx context.Context, user fam.UserInfo, notices []models.Notice, sessionLocked bool) {
	if len(notices) == 0 {
		return
	}

	if d.Queue != nil {
		msg := NoticeMessage{
			UserID:        user.ID,
			UserName:      user.Name,
			Notices:       notices,
			SessionLocked: sessionLocked,
			PublishedAt:   time.Now().UTC(),
		}
		if err := d.Queue.EnqueueMessage(ctx, d.NoticeQueue, msg); err != nil {
			slog.Error("failed to publish notices", "userId", user.ID, "queue", d.NoticeQueue, "error", err)
		}
	}

	locks := lockNotices(notices)
	if len(locks) == 0 {
		return
	}

	recipients := d.recipientsFor(ctx, user.ID)
	if len(recipients) == 0 || d.Email == nil {
		slog.Info("no guardian to notify of lock", "userId", user.ID)
		return
	}
	if err := d.Email.SendLockAlert(ctx, recipients, user.Name, locks); err != nil {
		slog.Error("failed to send lock alert", "userId", user.ID, "error", err)
	}
}

// recipientsFor returns the guardian emails following userID; an empty userID selects all.
func (d *Dependencies) recipientsFor(ctx context.Context, userID string) []string {
	if d.Contacts == nil {
		return nil
	}
	contacts, err := d.Contacts.GetContacts(ctx)
	if err != nil {
		slog.Error("failed to load guardian contacts", "error", err)
		return nil
	}
	return models.RecipientsFor(contacts, userID)
}
