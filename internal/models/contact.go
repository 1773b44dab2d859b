package models

import (
	"errors"
	"net/mail"
	"strings"
)

// Contact is a guardian who is emailed when a member's budgets lock.
// An empty UserID means the contact follows every member.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID string `json:"userId,omitempty"`
}

// Validate checks that the contact can receive email.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("contact name is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("contact email is invalid")
	}
	return nil
}

// Follows reports whether the contact should hear about userID.
func (c Contact) Follows(userID string) bool {
	return c.UserID == "" || c.UserID == userID
}

// RecipientsFor returns the distinct emails of contacts following userID.
// An empty userID selects every contact.
func RecipientsFor(contacts []Contact, userID string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range contacts {
		if userID != "" && !c.Follows(userID) {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(c.Email))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out
}
