package application

// Fixed bot replies.
const (
	replyWelcome          = "Welcome to the Expense Tracker Bot! Use /expenses to calculate your daily expenses."
	replyFallback         = "Please use the /expenses command followed by your expenses in JPY."
	replyAddCategoryUsage = "Usage: /add_category <category_name> <budget>"
	replyAddExpenseUsage  = "Usage: /add_expense <category_name> <amount> <name>"
	replyBudgetNotNumber  = "Budget must be a number."
	replyAmountNotNumber  = "Amount must be a number."
	replyNoCategories     = "No categories found. Please add a category using /add_category."
	replyStorageFailure   = "Something went wrong. Please try again later."

	formatDailyExpenses   = "Your expenses today is: %s JPY."
	formatCategoryAdded   = "Category '%s' with budget %d JPY added successfully."
	formatCategoryLine    = "%s: %d JPY\n"
	formatCategoryMissing = "Category '%s' not found."
	formatExpenseAdded    = "Expense of %s with %d JPY added to category '%s'."

	categoriesHeader = "Categories:\n"
)
