package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
	"github.com/ericfisherdev/budgetbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ExpenseStore = (*ExpenseRepo)(nil)

// ExpenseRepo is the SQLite implementation of the ExpenseStore port interface.
type ExpenseRepo struct {
	db *DB
}

// NewExpenseRepo creates a new ExpenseRepo backed by the given DB.
func NewExpenseRepo(db *DB) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

// Add inserts an expense bound to categoryID. The date column defaults to the
// insert time.
func (r *ExpenseRepo) Add(ctx context.Context, categoryID int64, name string, amount int64) (model.Expense, error) {
	const query = `INSERT INTO expenses (category_id, name, amount) VALUES (?, ?, ?) RETURNING id, date`

	e := model.Expense{CategoryID: categoryID, Name: name, Amount: amount}
	var date string

	if err := r.db.Writer.QueryRowContext(ctx, query, categoryID, name, amount).Scan(&e.ID, &date); err != nil {
		return model.Expense{}, fmt.Errorf("add expense %q to category %d: %w", name, categoryID, err)
	}

	var err error
	e.Date, err = parseTime(date)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parse date: %w", err)
	}

	return e, nil
}

// ListByCategory returns the expenses recorded against categoryID, oldest first.
func (r *ExpenseRepo) ListByCategory(ctx context.Context, categoryID int64) ([]model.Expense, error) {
	const query = `
		SELECT id, category_id, name, amount, date
		FROM expenses
		WHERE category_id = ?
		ORDER BY id
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list expenses for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var (
			e      model.Expense
			name   sql.NullString
			amount sql.NullInt64
			date   sql.NullString
		)

		if err := rows.Scan(&e.ID, &e.CategoryID, &name, &amount, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}

		e.Name = name.String
		e.Amount = amount.Int64
		if date.Valid {
			e.Date, err = parseTime(date.String)
			if err != nil {
				return nil, fmt.Errorf("parse date: %w", err)
			}
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// Count returns the number of recorded expenses.
func (r *ExpenseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}
