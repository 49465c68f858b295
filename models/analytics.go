package models

// Summary holds the headline totals computed over a user's entries within an
// optional date window.
//
// NetIncome is always TotalIncome - TotalExpense. SavingsRate is the net
// share of income as a percentage rounded to two decimals, and is defined as
// exactly 0 when TotalIncome is 0 so that the value is never NaN or infinite.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetIncome    float64 `json:"netIncome"`
	SavingsRate  float64 `json:"savingsRate"`
}

// CategoryTotal is the summed amount for one category within a type.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryBreakdown groups the per-category totals of a single entry type.
type CategoryBreakdown struct {
	Type       EntryType       `json:"type"`
	Categories []CategoryTotal `json:"categories"`
}

// MonthlyTrend is the summed amount for one (year, month, type) group.
// A sequence of trends is always ordered ascending by year, then month.
type MonthlyTrend struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Type  EntryType `json:"type"`
	Total float64   `json:"total"`
}

// Analytics bundles the three independent aggregates served by the
// analytics endpoint. None of it is persisted; every request recomputes
// the aggregates from the entry store.
type Analytics struct {
	Summary           Summary             `json:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	MonthlyTrends     []MonthlyTrend      `json:"monthlyTrends"`
}

// TypeCategoryTotal is the raw two-level grouping row produced by the store:
// total amount per (type, category) pair. The service layer regroups these
// rows into [CategoryBreakdown] lists.
type TypeCategoryTotal struct {
	Type     EntryType
	Category string
	Total    float64
}
