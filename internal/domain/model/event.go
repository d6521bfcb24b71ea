package model

import "time"

// EventType identifies what a LedgerEvent records.
type EventType string

const (
	EventCategoryAdded EventType = "category.added"
	EventExpenseAdded  EventType = "expense.added"
)

// LedgerEvent is emitted after a category or expense has been persisted.
type LedgerEvent struct {
	Type      EventType
	Category  string
	Name      string
	Amount    int64
	Timestamp time.Time
}
