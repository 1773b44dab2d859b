package handler

import (
	"context"

	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/models"
)

// Moderator is the household controller the handlers drive.
type Moderator interface {
	Register(req fam.RegisterRequest) (fam.UserInfo, error)
	Users() []fam.UserInfo
	User(userID string) (fam.UserInfo, error)
	Login(userID string) (fam.UserInfo, error)
	Logout() error
	Current() (fam.UserInfo, error)
	RecordTransaction(req models.TransactionRequest) (fam.UserInfo, *models.TransactionOutcome, error)
	Budgets() ([]models.BudgetSnapshot, error)
	Transactions(index int) ([]models.Transaction, error)
	AccountDetails() (models.AccountSummary, error)
	Alerts() []models.BudgetAlert
	Household() models.HouseholdSummary
	ReplayStatement(userID, digest string, requests []models.TransactionRequest) (*fam.ReplayReport, error)
}

// BlobClient stores uploaded statements.
type BlobClient interface {
	UploadText(ctx context.Context, blobName, content string) error
	DownloadText(ctx context.Context, blobName string) (string, error)
}

// QueueClient publishes queue messages.
type QueueClient interface {
	EnqueueMessage(ctx context.Context, queueName string, message any) error
}

// EmailClient sends guardian emails.
type EmailClient interface {
	SendLockAlert(ctx context.Context, recipients []string, userName string, notices []models.Notice) error
	SendDigest(ctx context.Context, recipients []string, alerts []models.BudgetAlert) error
	SendErrorEmail(ctx context.Context, recipients []string, errors []string) error
}

// ContactClient reads and writes the guardian contact directory.
type ContactClient interface {
	GetContacts(ctx context.Context) ([]models.Contact, error)
	SaveContact(ctx context.Context, contact models.Contact) error
	DeleteContact(ctx context.Context, id string) error
}
