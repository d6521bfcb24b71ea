package application_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/budgetbot/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/budgetbot/internal/application"
	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

type ledger struct {
	router     *application.Router
	categories *sqliteadapter.CategoryRepo
	expenses   *sqliteadapter.ExpenseRepo
}

func newLedger(t *testing.T) ledger {
	t.Helper()

	db, err := sqliteadapter.NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqliteadapter.RunMigrations(db.Writer))

	categories := sqliteadapter.NewCategoryRepo(db)
	expenses := sqliteadapter.NewExpenseRepo(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return ledger{
		router:     application.NewRouter(categories, expenses, nil, logger),
		categories: categories,
		expenses:   expenses,
	}
}

func run(l ledger, name string, args ...string) string {
	return l.router.Dispatch(context.Background(), model.Command{ChatID: 7, Name: name, Args: args})
}

func TestLedger_AddCategoryThenList(t *testing.T) {
	l := newLedger(t)

	run(l, model.CommandAddCategory, "Transport", "300")
	run(l, model.CommandAddCategory, "Food", "500")

	reply := run(l, model.CommandCategories)
	assert.Equal(t, "Categories:\nFood: 500 JPY\nTransport: 300 JPY\n", reply)
}

func TestLedger_EmptyCategories(t *testing.T) {
	l := newLedger(t)

	assert.Equal(t, "No categories found. Please add a category using /add_category.", run(l, model.CommandCategories))
}

func TestLedger_BudgetNotNumberInsertsNothing(t *testing.T) {
	l := newLedger(t)

	assert.Equal(t, "Budget must be a number.", run(l, model.CommandAddCategory, "Food", "abc"))

	categories, err := l.categories.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestLedger_AddCategoryTwiceStoresTwoRows(t *testing.T) {
	l := newLedger(t)

	run(l, model.CommandAddCategory, "Food", "500")
	run(l, model.CommandAddCategory, "Food", "500")

	categories, err := l.categories.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Food", categories[1].Name)
}

func TestLedger_AddExpenseBindsToCategory(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	run(l, model.CommandAddCategory, "Food", "500")
	foodID, err := l.categories.FindIDByName(ctx, "Food")
	require.NoError(t, err)

	reply := run(l, model.CommandAddExpense, "Food", "100", "Lunch")
	assert.Equal(t, "Expense of Lunch with 100 JPY added to category 'Food'.", reply)

	expenses, err := l.expenses.ListByCategory(ctx, foodID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Lunch", expenses[0].Name)
	assert.Equal(t, int64(100), expenses[0].Amount)
}

func TestLedger_AddExpenseDefaultName(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	run(l, model.CommandAddCategory, "Food", "500")
	run(l, model.CommandAddExpense, "Food", "100")

	foodID, err := l.categories.FindIDByName(ctx, "Food")
	require.NoError(t, err)

	expenses, err := l.expenses.ListByCategory(ctx, foodID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Unnamed Expense", expenses[0].Name)
}

func TestLedger_AddExpenseUnknownCategoryInsertsNothing(t *testing.T) {
	l := newLedger(t)

	assert.Equal(t, "Category 'Food' not found.", run(l, model.CommandAddExpense, "Food", "100", "Lunch"))

	n, err := l.expenses.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLedger_NamesStoredVerbatim(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	assert.Equal(t, "Category 'Food<Lunch>' with budget 500 JPY added successfully.",
		run(l, model.CommandAddCategory, "Food<Lunch>", "500"))
	run(l, model.CommandAddCategory, "<Gift>", "200")
	run(l, model.CommandAddCategory, "Food", "300")

	assert.Equal(t, "Categories:\n<Gift>: 200 JPY\nFood: 300 JPY\nFood<Lunch>: 500 JPY\n",
		run(l, model.CommandCategories))

	reply := run(l, model.CommandAddExpense, "Food<Lunch>", "100", "a<b>c")
	assert.Equal(t, "Expense of a<b>c with 100 JPY added to category 'Food<Lunch>'.", reply)

	tagged, err := l.categories.FindIDByName(ctx, "Food<Lunch>")
	require.NoError(t, err)
	plain, err := l.categories.FindIDByName(ctx, "Food")
	require.NoError(t, err)
	require.NotEqual(t, plain, tagged)

	expenses, err := l.expenses.ListByCategory(ctx, tagged)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "a<b>c", expenses[0].Name)

	none, err := l.expenses.ListByCategory(ctx, plain)
	require.NoError(t, err)
	assert.Empty(t, none)
}
