// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
	"github.com/ericfisherdev/budgetbot/internal/domain/port/driven"
)

type handlerFunc func(ctx context.Context, args []string) string

// Router maps inbound commands to their handlers. Every call to Dispatch
// returns one reply string; user-input and storage errors are turned into
// reply text and never returned to the transport. The transport is
// responsible for fitting the reply into a single message.
type Router struct {
	categories driven.CategoryStore
	expenses   driven.ExpenseStore
	events     driven.EventPublisher
	logger     *slog.Logger
	handlers   map[string]handlerFunc
	now        func() time.Time
}

// NewRouter creates a Router with its command table. events may be nil.
func NewRouter(
	categories driven.CategoryStore,
	expenses driven.ExpenseStore,
	events driven.EventPublisher,
	logger *slog.Logger,
) *Router {
	r := &Router{
		categories: categories,
		expenses:   expenses,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}

	r.handlers = map[string]handlerFunc{
		model.CommandStart:       r.start,
		model.CommandExpenses:    r.dailyExpenses,
		model.CommandAddCategory: r.addCategory,
		model.CommandCategories:  r.listCategories,
		model.CommandAddExpense:  r.addExpense,
	}

	return r
}

// CommandInfo describes a registered command for menus and help output.
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
}

var commandInfos = []CommandInfo{
	{Name: model.CommandStart, Usage: "/start", Description: "Show the welcome message"},
	{Name: model.CommandExpenses, Usage: "/expenses <amount...>", Description: "Total the amounts given in the message"},
	{Name: model.CommandAddCategory, Usage: "/add_category <category_name> <budget>", Description: "Create a spending category with a JPY budget"},
	{Name: model.CommandCategories, Usage: "/categories", Description: "List categories and their budgets"},
	{Name: model.CommandAddExpense, Usage: "/add_expense <category_name> <amount> [name]", Description: "Record an expense against a category"},
}

// Commands returns the registered commands in menu order.
func (r *Router) Commands() []CommandInfo {
	out := make([]CommandInfo, len(commandInfos))
	copy(out, commandInfos)
	return out
}

// Dispatch runs the handler for cmd and returns the reply text. Free text and
// unknown commands get the usage hint.
func (r *Router) Dispatch(ctx context.Context, cmd model.Command) string {
	handler, ok := r.handlers[cmd.Name]
	if !cmd.IsCommand() || !ok {
		r.logger.Debug("no handler for message", "command", cmd.Name, "chat_id", cmd.ChatID)
		return replyFallback
	}

	r.logger.Debug("handling command", "command", cmd.Name, "args", len(cmd.Args), "chat_id", cmd.ChatID)
	return handler(ctx, cmd.Args)
}

func (r *Router) start(_ context.Context, _ []string) string {
	return replyWelcome
}

// dailyExpenses totals the numbers given in the message itself. Nothing is
// read from or written to the expenses table.
func (r *Router) dailyExpenses(_ context.Context, args []string) string {
	return fmt.Sprintf(formatDailyExpenses, SumNumericTokens(args).String())
}

func (r *Router) addCategory(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return replyAddCategoryUsage
	}

	budget, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return replyBudgetNotNumber
	}

	name := args[0]

	category, err := r.categories.Add(ctx, name, budget)
	if err != nil {
		r.logger.Error("failed to add category", "name", name, "error", err)
		return replyStorageFailure
	}

	r.logger.Info("category added", "id", category.ID, "name", category.Name, "budget", category.Budget)
	r.publish(ctx, model.LedgerEvent{
		Type:     model.EventCategoryAdded,
		Category: category.Name,
		Amount:   category.Budget,
	})

	return fmt.Sprintf(formatCategoryAdded, category.Name, category.Budget)
}

// listCategories replies with one line per category. A storage failure is
// logged and answered with the same prompt as an empty ledger.
func (r *Router) listCategories(ctx context.Context, _ []string) string {
	categories, err := r.categories.ListAll(ctx)
	if err != nil {
		r.logger.Error("failed to list categories", "error", err)
		return replyNoCategories
	}

	if len(categories) == 0 {
		return replyNoCategories
	}

	var b strings.Builder
	b.WriteString(categoriesHeader)
	for _, c := range categories {
		fmt.Fprintf(&b, formatCategoryLine, c.Name, c.Budget)
	}

	return b.String()
}

func (r *Router) addExpense(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return replyAddExpenseUsage
	}

	categoryName := args[0]

	name := model.DefaultExpenseName
	if len(args) > 2 {
		name = args[2]
	}

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return replyAmountNotNumber
	}

	categoryID, err := r.categories.FindIDByName(ctx, categoryName)
	if errors.Is(err, driven.ErrCategoryNotFound) {
		return fmt.Sprintf(formatCategoryMissing, categoryName)
	}
	if err != nil {
		r.logger.Error("failed to look up category", "category", categoryName, "error", err)
		return replyStorageFailure
	}

	expense, err := r.expenses.Add(ctx, categoryID, name, amount)
	if err != nil {
		r.logger.Error("failed to add expense",
			"category_id", categoryID,
			"name", name,
			"amount", amount,
			"error", err,
		)
		return replyStorageFailure
	}

	r.logger.Info("expense added",
		"id", expense.ID,
		"category_id", expense.CategoryID,
		"name", expense.Name,
		"amount", expense.Amount,
	)
	r.publish(ctx, model.LedgerEvent{
		Type:     model.EventExpenseAdded,
		Category: categoryName,
		Name:     expense.Name,
		Amount:   expense.Amount,
	})

	return fmt.Sprintf(formatExpenseAdded, expense.Name, expense.Amount, categoryName)
}

// publish sends a ledger event. Failures are logged only; the reply to the
// user does not depend on downstream consumers.
func (r *Router) publish(ctx context.Context, event model.LedgerEvent) {
	if r.events == nil {
		return
	}

	event.Timestamp = r.now().UTC()
	if err := r.events.Publish(ctx, event); err != nil {
		r.logger.Warn("failed to publish ledger event", "type", event.Type, "error", err)
	}
}
