package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/rocjay1/fam/internal/config"
	"github.com/rocjay1/fam/internal/models"
)

const emailAPIVersion = "2023-03-31"

// EmailService sends guardian notifications via the Azure Communication Services REST API.
type EmailService struct {
	endpoint   string
	sender     string
	cred       azcore.TokenCredential
	httpClient *http.Client
}

// NewEmailService creates an EmailService. A nil cred uses DefaultAzureCredential.
func NewEmailService(cfg config.EmailConfig, cred azcore.TokenCredential) (*EmailService, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		return nil, fmt.Errorf("COMMUNICATION_SERVICES_ENDPOINT is required")
	}

	sender := cfg.SenderEmail
	if sender == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is required")
	}

	if cred == nil {
		var err error
		cred, err = newDefaultAzureCredential("email")
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
	}

	return &EmailService{
		endpoint:   endpoint,
		sender:     sender,
		cred:       cred,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type emailAddress struct {
	Address string `json:"address"`
}

type emailRecipients struct {
	To []emailAddress `json:"to"`
}

type emailContent struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type emailRequest struct {
	SenderAddress string          `json:"senderAddress"`
	Content       emailContent    `json:"content"`
	Recipients    emailRecipients `json:"recipients"`
}

// SendEmail sends an HTML email to the recipients.
func (s *EmailService) SendEmail(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients for %q", subject)
	}

	token, err := s.cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{"https://communication.azure.com//.default"},
	})
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	recipients := make([]emailAddress, len(to))
	for i, email := range to {
		recipients[i] = emailAddress{Address: email}
	}

	reqBody := emailRequest{
		SenderAddress: s.sender,
		Content: emailContent{
			Subject: subject,
			HTML:    body,
		},
		Recipients: emailRecipients{
			To: recipients,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	url := fmt.Sprintf("%s/emails:send?api-version=%s", s.endpoint, emailAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.Token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	slog.Info("email sent", "subject", subject, "recipient_count", len(to))
	return nil
}

// SendLockAlert tells guardians that a member's budgets have locked.
func (s *EmailService) SendLockAlert(ctx context.Context, recipients []string, userName string, notices []models.Notice) error {
	subject := fmt.Sprintf("FAM - %s has a locked budget", userName)
	for _, n := range notices {
		if n.Kind == models.NoticeSessionLocked {
			subject = fmt.Sprintf("FAM - %s's account is locked", userName)
			break
		}
	}
	return s.SendEmail(ctx, recipients, subject, RenderLockAlertBody(userName, notices))
}

// SendDigest sends the daily summary of budgets over their warning threshold.
func (s *EmailService) SendDigest(ctx context.Context, recipients []string, alerts []models.BudgetAlert) error {
	return s.SendEmail(ctx, recipients, "FAM - Daily budget digest", RenderDigestBody(alerts))
}

// SendErrorEmail reports statement rows that could not be applied.
func (s *EmailService) SendErrorEmail(ctx context.Context, recipients []string, errors []string) error {
	return s.SendEmail(ctx, recipients, "FAM - Statement rows rejected", RenderErrorBody(errors))
}
