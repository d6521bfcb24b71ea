// Package httphandler is the HTTP driving adapter: a health probe, a
// read-only view of the ledger and the command reference.
package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/budgetbot/internal/application"
	"github.com/ericfisherdev/budgetbot/internal/domain/port/driven"
)

// Handler serves the HTTP API.
type Handler struct {
	categories driven.CategoryStore
	expenses   driven.ExpenseStore
	help       []byte
	logger     *slog.Logger
}

// NewHandler creates a Handler. commands feeds the /help page.
func NewHandler(
	categories driven.CategoryStore,
	expenses driven.ExpenseStore,
	commands []application.CommandInfo,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		categories: categories,
		expenses:   expenses,
		help:       []byte(renderHelpPage(commands)),
		logger:     logger,
	}
}

// NewServeMux registers all routes and wraps them with logging and recovery
// middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/categories", h.ListCategories)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /help", h.Help)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health reports that the process is serving requests.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListCategories returns every category ordered by name. Unlike the bot
// reply, a storage failure is reported as a 500 rather than an empty list.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Stats returns row counts for the ledger.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	expenses, err := h.expenses.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var budget int64
	for _, c := range categories {
		budget += c.Budget
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Categories:  len(categories),
		Expenses:    expenses,
		TotalBudget: budget,
		Currency:    "JPY",
	})
}

// Help serves the command reference as HTML.
func (h *Handler) Help(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.help)
}
