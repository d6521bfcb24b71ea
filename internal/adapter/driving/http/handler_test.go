package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/budgetbot/internal/adapter/driving/http"
	"github.com/ericfisherdev/budgetbot/internal/application"
	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// --- Mock implementations ---

type mockCategoryStore struct {
	categories []model.Category
	err        error
}

func (m *mockCategoryStore) Add(_ context.Context, _ string, _ int64) (model.Category, error) {
	return model.Category{}, nil
}
func (m *mockCategoryStore) ListAll(_ context.Context) ([]model.Category, error) {
	return m.categories, m.err
}
func (m *mockCategoryStore) FindIDByName(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type mockExpenseStore struct {
	count int64
	err   error
}

func (m *mockExpenseStore) Add(_ context.Context, _ int64, _ string, _ int64) (model.Expense, error) {
	return model.Expense{}, nil
}
func (m *mockExpenseStore) ListByCategory(_ context.Context, _ int64) ([]model.Expense, error) {
	return nil, nil
}
func (m *mockExpenseStore) Count(_ context.Context) (int64, error) {
	return m.count, m.err
}

// --- Helper functions ---

func setupServer(categories *mockCategoryStore, expenses *mockExpenseStore) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	commands := []application.CommandInfo{
		{Name: "categories", Usage: "/categories", Description: "List categories and their budgets"},
		{Name: "add_category", Usage: "/add_category <category_name> <budget>", Description: "Create a category"},
	}
	h := httphandler.NewHandler(categories, expenses, commands, logger)
	return httphandler.NewServeMux(h, logger)
}

func do(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHealth(t *testing.T) {
	srv := setupServer(&mockCategoryStore{}, &mockExpenseStore{})

	rec := do(t, srv, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httphandler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	_, err := time.Parse(time.RFC3339, resp.Time)
	assert.NoError(t, err)
}

func TestListCategories(t *testing.T) {
	created := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	srv := setupServer(&mockCategoryStore{categories: []model.Category{
		{ID: 2, Name: "Books", Budget: 120, CreatedAt: created},
		{ID: 1, Name: "Food", Budget: 500, CreatedAt: created},
	}}, &mockExpenseStore{})

	rec := do(t, srv, "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var resp []httphandler.CategoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Books", resp[0].Name)
	assert.Equal(t, int64(120), resp[0].Budget)
	assert.Equal(t, "2026-10-14T08:00:00Z", resp[0].CreatedAt)
}

func TestListCategories_EmptyIsArray(t *testing.T) {
	srv := setupServer(&mockCategoryStore{}, &mockExpenseStore{})

	rec := do(t, srv, "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListCategories_StorageError(t *testing.T) {
	srv := setupServer(&mockCategoryStore{err: errors.New("boom")}, &mockExpenseStore{})

	rec := do(t, srv, "/api/v1/categories")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	srv := setupServer(&mockCategoryStore{categories: []model.Category{
		{ID: 1, Name: "Food", Budget: 500},
		{ID: 2, Name: "Books", Budget: 120},
	}}, &mockExpenseStore{count: 3})

	rec := do(t, srv, "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":2,"expenses":3,"total_budget":620,"currency":"JPY"}`, rec.Body.String())
}

func TestStats_ExpenseCountError(t *testing.T) {
	srv := setupServer(&mockCategoryStore{}, &mockExpenseStore{err: errors.New("boom")})

	rec := do(t, srv, "/api/v1/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHelp(t *testing.T) {
	srv := setupServer(&mockCategoryStore{}, &mockExpenseStore{})

	rec := do(t, srv, "/help")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "<code>/categories</code>")
	assert.Contains(t, body, "&lt;category_name&gt;")
	assert.Contains(t, body, "List categories and their budgets")
}

func TestUnknownRoute(t *testing.T) {
	srv := setupServer(&mockCategoryStore{}, &mockExpenseStore{})

	rec := do(t, srv, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
