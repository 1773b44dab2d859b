package models

import (
	"github.com/shopspring/decimal"
)

// Household is the group of users registered with the moderator.
type Household struct {
	Members []*User `json:"members"`
}

// BudgetAlert names a member budget that is above the member's warning threshold.
type BudgetAlert struct {
	UserID   string         `json:"userId"`
	UserName string         `json:"userName"`
	Email    string         `json:"email,omitempty"`
	Budget   BudgetSnapshot `json:"budget"`
}

// CategoryTotal is what the household has spent in one category.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
}

// HouseholdSummary is the household-wide view of balances and spending.
type HouseholdSummary struct {
	Members    int             `json:"members"`
	Balance    decimal.Decimal `json:"balance"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	Categories []CategoryTotal `json:"categories"`
	Emails     []string        `json:"emails"`
}

// Summary totals balances and spending across members, categories in menu order.
func (h *Household) Summary() HouseholdSummary {
	categories := make([]CategoryTotal, 0, BudgetCount)
	for _, c := range DefaultCategories {
		categories = append(categories, CategoryTotal{Category: c, Spent: h.GetExpenses(c)})
	}
	emails := h.GetEmails()
	if emails == nil {
		emails = []string{}
	}
	return HouseholdSummary{
		Members:    len(h.Members),
		Balance:    h.GetBalance(),
		TotalSpent: h.GetExpenses(""),
		Categories: categories,
		Emails:     emails,
	}
}

// GetExpenses sums what every member has spent, optionally filtered by category.
func (h *Household) GetExpenses(category Category) decimal.Decimal {
	total := decimal.Zero
	for _, u := range h.Members {
		for _, b := range u.Account.Budgets() {
			if category != "" && b.Name != category {
				continue
			}
			total = total.Add(b.Spent)
		}
	}
	return total
}

// GetBalance sums the balances of every member account.
func (h *Household) GetBalance() decimal.Decimal {
	total := decimal.Zero
	for _, u := range h.Members {
		total = total.Add(u.Account.Balance())
	}
	return total
}

// GetAlerts returns every budget above its owner's warning threshold, in roster order.
func (h *Household) GetAlerts() []BudgetAlert {
	var alerts []BudgetAlert
	for _, u := range h.Members {
		for _, b := range u.Account.Budgets() {
			if b.AmountLeft.IsNegative() || u.Policy.ExceedsWarning(b.PercentUsed) {
				alerts = append(alerts, BudgetAlert{
					UserID:   u.ID,
					UserName: u.Name,
					Email:    u.Email,
					Budget:   b,
				})
			}
		}
	}
	return alerts
}

// GetEmails returns the emails of members that have one.
func (h *Household) GetEmails() []string {
	var emails []string
	for _, u := range h.Members {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}
	return emails
}

// Find returns the member with the given ID, or nil.
func (h *Household) Find(id string) *User {
	for _, u := range h.Members {
		if u.ID == id {
			return u
		}
	}
	return nil
}
