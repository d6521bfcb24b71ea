package model

import "time"

// DefaultExpenseName is recorded when add_expense is called without a name.
const DefaultExpenseName = "Unnamed Expense"

// Expense is a single recorded spend attributed to exactly one category.
type Expense struct {
	ID         int64
	CategoryID int64
	Name       string
	Amount     int64
	Date       time.Time
}
