package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/rocjay1/fam/internal/config"
	"github.com/rocjay1/fam/internal/models"
)

const contactsPartition = "CONTACTS"

// ErrContactNotFound is returned when deleting a contact that does not exist.
var ErrContactNotFound = errors.New("contact not found")

// ContactService keeps the guardian contact directory in Azure Table Storage.
type ContactService struct {
	client *aztables.Client
}

// NewContactService creates a ContactService and ensures its table exists.
func NewContactService(ctx context.Context, cfg config.StorageConfig) (*ContactService, error) {
	tableURL := cfg.TableServiceURL
	if tableURL == "" {
		return nil, fmt.Errorf("TABLE_SERVICE_URL is required")
	}

	var serviceClient *aztables.ServiceClient
	if isLocal(tableURL) {
		name, key := azuriteCredentials()
		cred, err := aztables.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		serviceClient, err = aztables.NewServiceClientWithSharedKey(tableURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client with shared key: %w", err)
		}
	} else {
		cred, err := newDefaultAzureCredential("table")
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		serviceClient, err = aztables.NewServiceClient(tableURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client: %w", err)
		}
	}

	if _, err := serviceClient.CreateTable(ctx, cfg.ContactsTable, nil); err != nil {
		var azErr *azcore.ResponseError
		if !errors.As(err, &azErr) || azErr.ErrorCode != "TableAlreadyExists" {
			return nil, fmt.Errorf("failed to create table %s: %w", cfg.ContactsTable, err)
		}
	}

	slog.Info("contact service initialized", "table_url", tableURL, "table", cfg.ContactsTable)
	return &ContactService{client: serviceClient.NewClient(cfg.ContactsTable)}, nil
}

type contactEntity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	Name         string `json:"Name"`
	Email        string `json:"Email"`
	UserID       string `json:"UserID,omitempty"`
}

func toContactEntity(c models.Contact) contactEntity {
	return contactEntity{
		PartitionKey: contactsPartition,
		RowKey:       c.ID,
		Name:         c.Name,
		Email:        c.Email,
		UserID:       c.UserID,
	}
}

func parseContactEntity(data []byte) (models.Contact, error) {
	var e contactEntity
	if err := json.Unmarshal(data, &e); err != nil {
		return models.Contact{}, fmt.Errorf("failed to unmarshal contact entity: %w", err)
	}
	return models.Contact{ID: e.RowKey, Name: e.Name, Email: e.Email, UserID: e.UserID}, nil
}

// GetContacts lists every guardian contact.
func (s *ContactService) GetContacts(ctx context.Context) ([]models.Contact, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", contactsPartition)
	pager := s.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	contacts := []models.Contact{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list contacts: %w", err)
		}
		for _, entity := range resp.Entities {
			c, err := parseContactEntity(entity)
			if err != nil {
				slog.Warn("skipping malformed contact", "error", err)
				continue
			}
			contacts = append(contacts, c)
		}
	}
	return contacts, nil
}

// SaveContact inserts or replaces a contact.
func (s *ContactService) SaveContact(ctx context.Context, c models.Contact) error {
	data, err := json.Marshal(toContactEntity(c))
	if err != nil {
		return fmt.Errorf("failed to marshal contact: %w", err)
	}
	if _, err := s.client.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace}); err != nil {
		return fmt.Errorf("failed to save contact %s: %w", c.ID, err)
	}
	return nil
}

// DeleteContact removes a contact by ID.
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	_, err := s.client.DeleteEntity(ctx, contactsPartition, id, nil)
	if err != nil {
		var azErr *azcore.ResponseError
		if errors.As(err, &azErr) && azErr.StatusCode == http.StatusNotFound {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	return nil
}
