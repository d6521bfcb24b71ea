package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// CategoryResponse is the JSON representation of a category.
type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Budget    int64  `json:"budget"`
	CreatedAt string `json:"created_at"`
}

// StatsResponse summarizes the ledger.
type StatsResponse struct {
	Categories  int    `json:"categories"`
	Expenses    int64  `json:"expenses"`
	TotalBudget int64  `json:"total_budget"`
	Currency    string `json:"currency"`
}

func toCategoryResponse(c model.Category) CategoryResponse {
	resp := CategoryResponse{ID: c.ID, Name: c.Name, Budget: c.Budget}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
