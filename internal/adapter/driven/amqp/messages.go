package amqp

import (
	"encoding/json"
	"time"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// ledgerMessage is the JSON body published for every ledger event.
type ledgerMessage struct {
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Name      string    `json:"name,omitempty"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

func encodeEvent(event model.LedgerEvent) ([]byte, error) {
	return json.Marshal(ledgerMessage{
		Type:      string(event.Type),
		Category:  event.Category,
		Name:      event.Name,
		Amount:    event.Amount,
		Currency:  "JPY",
		Timestamp: event.Timestamp,
	})
}
