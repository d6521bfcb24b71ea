package driven

import (
	"context"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// ExpenseStore defines the driven port for expense persistence. Callers must
// verify the category exists before calling Add.
type ExpenseStore interface {
	Add(ctx context.Context, categoryID int64, name string, amount int64) (model.Expense, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Expense, error)
	Count(ctx context.Context) (int64, error)
}
