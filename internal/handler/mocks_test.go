package handler

import (
	"context"

	"github.com/rocjay1/fam/internal/models"
)

// MockBlobClient is a mock implementation of BlobClient
type MockBlobClient struct {
	UploadTextFunc   func(ctx context.Context, blobName, content string) error
	DownloadTextFunc func(ctx context.Context, blobName string) (string, error)
}

func (m *MockBlobClient) UploadText(ctx context.Context, blobName, content string) error {
	if m.UploadTextFunc != nil {
		return m.UploadTextFunc(ctx, blobName, content)
	}
	return nil
}

func (m *MockBlobClient) DownloadText(ctx context.Context, blobName string) (string, error) {
	if m.DownloadTextFunc != nil {
		return m.DownloadTextFunc(ctx, blobName)
	}
	return "", nil
}

// MockQueueClient is a mock implementation of QueueClient
type MockQueueClient struct {
	EnqueueMessageFunc func(ctx context.Context, queueName string, message any) error
}

func (m *MockQueueClient) EnqueueMessage(ctx context.Context, queueName string, message any) error {
	if m.EnqueueMessageFunc != nil {
		return m.EnqueueMessageFunc(ctx, queueName, message)
	}
	return nil
}

// MockEmailClient is a mock implementation of EmailClient
type MockEmailClient struct {
	SendLockAlertFunc  func(ctx context.Context, recipients []string, userName string, notices []models.Notice) error
	SendDigestFunc     func(ctx context.Context, recipients []string, alerts []models.BudgetAlert) error
	SendErrorEmailFunc func(ctx context.Context, recipients []string, errors []string) error
}

func (m *MockEmailClient) SendLockAlert(ctx context.Context, recipients []string, userName string, notices []models.Notice) error {
	if m.SendLockAlertFunc != nil {
		return m.SendLockAlertFunc(ctx, recipients, userName, notices)
	}
	return nil
}

func (m *MockEmailClient) SendDigest(ctx context.Context, recipients []string, alerts []models.BudgetAlert) error {
	if m.SendDigestFunc != nil {
		return m.SendDigestFunc(ctx, recipients, alerts)
	}
	return nil
}

func (m *MockEmailClient) SendErrorEmail(ctx context.Context, recipients []string, errors []string) error {
	if m.SendErrorEmailFunc != nil {
		return m.SendErrorEmailFunc(ctx, recipients, errors)
	}
	return nil
}

// MockContactClient is a mock implementation of ContactClient
type MockContactClient struct {
	GetContactsFunc   func(ctx context.Context) ([]models.Contact, error)
	SaveContactFunc   func(ctx context.Context, contact models.Contact) error
	DeleteContactFunc func(ctx context.Context, id string) error
}

func (m *MockContactClient) GetContacts(ctx context.Context) ([]models.Contact, error) {
	if m.GetContactsFunc != nil {
		return m.GetContactsFunc(ctx)
	}
	return nil, nil
}

func (m *MockContactClient) SaveContact(ctx context.Context, contact models.Contact) error {
	if m.SaveContactFunc != nil {
		return m.SaveContactFunc(ctx, contact)
	}
	return nil
}

func (m *MockContactClient) DeleteContact(ctx context.Context, id string) error {
	if m.DeleteContactFunc != nil {
		return m.DeleteContactFunc(ctx, id)
	}
	return nil
}
