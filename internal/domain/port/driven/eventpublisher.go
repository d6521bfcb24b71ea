package driven

import (
	"context"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// EventPublisher fans ledger events out to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event model.LedgerEvent) error
}
