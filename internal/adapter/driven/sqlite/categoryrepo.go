package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
	"github.com/ericfisherdev/budgetbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CategoryStore = (*CategoryRepo)(nil)

// CategoryRepo is the SQLite implementation of the CategoryStore port interface.
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo creates a new CategoryRepo backed by the given DB.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Add inserts a category. Duplicate names are accepted and produce a second
// row; created_at is assigned by the database.
func (r *CategoryRepo) Add(ctx context.Context, name string, budget int64) (model.Category, error) {
	const query = `INSERT INTO categories (name, budget) VALUES (?, ?) RETURNING id, created_at`

	c := model.Category{Name: name, Budget: budget}
	var createdAt string

	if err := r.db.Writer.QueryRowContext(ctx, query, name, budget).Scan(&c.ID, &createdAt); err != nil {
		return model.Category{}, fmt.Errorf("add category %q: %w", name, err)
	}

	var err error
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Category{}, fmt.Errorf("parse created_at: %w", err)
	}

	return c, nil
}

// ListAll returns every category ordered by name. Zero rows yields a nil
// slice and a nil error.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, budget, created_at FROM categories ORDER BY name, id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// FindIDByName returns the id of the oldest category with the given name, or
// driven.ErrCategoryNotFound.
func (r *CategoryRepo) FindIDByName(ctx context.Context, name string) (int64, error) {
	const query = `SELECT id FROM categories WHERE name = ? ORDER BY id LIMIT 1`

	var id int64
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("find category %q: %w", name, driven.ErrCategoryNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("find category %q: %w", name, err)
	}

	return id, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (model.Category, error) {
	var (
		c         model.Category
		name      sql.NullString
		budget    sql.NullInt64
		createdAt sql.NullString
	)

	if err := s.Scan(&c.ID, &name, &budget, &createdAt); err != nil {
		return model.Category{}, err
	}

	c.Name = name.String
	c.Budget = budget.Int64

	if createdAt.Valid {
		t, err := parseTime(createdAt.String)
		if err != nil {
			return model.Category{}, fmt.Errorf("parse created_at: %w", err)
		}
		c.CreatedAt = t
	}

	return c, nil
}

// parseTime tries the datetime layouts SQLite and the driver produce.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
