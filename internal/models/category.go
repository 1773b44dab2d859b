package models

import "strings"

// Category names a budget within an account.
type Category string

const (
	CategoryGames     Category = "Games and Entertainment"
	CategoryClothing  Category = "Clothing and Accessories"
	CategoryEatingOut Category = "Eating Out"
	CategoryMisc      Category = "Miscellaneous"
)

// BudgetCount is the fixed number of budgets every account carries.
const BudgetCount = 4

// DefaultCategories lists the budget categories in menu order.
var DefaultCategories = [BudgetCount]Category{
	CategoryGames,
	CategoryClothing,
	CategoryEatingOut,
	CategoryMisc,
}

// Matches reports whether name refers to this category, ignoring case and surrounding space.
func (c Category) Matches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), string(c))
}
