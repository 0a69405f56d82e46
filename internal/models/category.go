package models

// Category classifies transactions and bills for display and grouping.
// It carries no correctness weight in the ledger.
type Category struct {
	ID      string `json:"id" badgerhold:"key"`
	UserID  string `json:"user_id,omitempty" badgerhold:"index"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	Color   string `json:"color,omitempty"`
	BgColor string `json:"bg_color,omitempty"`
	Flow    Flow   `json:"flow"`
}

// DefaultCategories returns the starter category set seeded for a new user.
func DefaultCategories(userID string) []Category {
	return []Category{
		{ID: userID + ":salary", UserID: userID, Name: "Salary", Icon: "briefcase", Color: "#2e7d32", Flow: FlowIncome},
		{ID: userID + ":groceries", UserID: userID, Name: "Groceries", Icon: "cart", Color: "#ef6c00", Flow: FlowExpense},
		{ID: userID + ":rent", UserID: userID, Name: "Rent", Icon: "home", Color: "#6a1b9a", Flow: FlowExpense},
		{ID: userID + ":utilities", UserID: userID, Name: "Utilities", Icon: "bolt", Color: "#1565c0", Flow: FlowExpense},
		{ID: userID + ":transport", UserID: userID, Name: "Transport", Icon: "car", Color: "#00838f", Flow: FlowExpense},
		{ID: userID + ":entertainment", UserID: userID, Name: "Entertainment", Icon: "film", Color: "#ad1457", Flow: FlowExpense},
		{ID: userID + ":health", UserID: userID, Name: "Health", Icon: "heart", Color: "#c62828", Flow: FlowExpense},
		{ID: userID + ":other", UserID: userID, Name: "Other", Icon: "dots", Color: "#546e7a", Flow: FlowExpense},
	}
}
