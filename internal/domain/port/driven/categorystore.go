// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// ErrCategoryNotFound indicates no category matches the requested name.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryStore defines the driven port for category persistence.
// ListAll returns a nil slice and a nil error when there are no categories;
// a non-nil error always means the storage itself failed.
// FindIDByName returns ErrCategoryNotFound if no category has the given name.
type CategoryStore interface {
	Add(ctx context.Context, name string, budget int64) (model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	FindIDByName(ctx context.Context, name string) (int64, error)
}
