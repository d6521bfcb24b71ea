package model

// Command names understood by the bot.
const (
	CommandStart       = "start"
	CommandExpenses    = "expenses"
	CommandAddCategory = "add_category"
	CommandCategories  = "categories"
	CommandAddExpense  = "add_expense"
)

// Command is a transport-independent inbound message. Name is empty for free
// text; Args holds the whitespace-separated tokens that followed the command.
type Command struct {
	ChatID int64
	Name   string
	Args   []string
	Text   string
}

// IsCommand reports whether the message addressed a named command.
func (c Command) IsCommand() bool {
	return c.Name != ""
}
