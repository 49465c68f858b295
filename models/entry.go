// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package models

import "time"

// EntryType is the closed enumeration of financial entry kinds.
// The sign of an entry's amount in computations is implied purely by its type.
type EntryType string

// Supported entry types.
const (
	EntryTypeIncome     EntryType = "income"
	EntryTypeExpense    EntryType = "expense"
	EntryTypeInvestment EntryType = "investment"
	EntryTypeSavings    EntryType = "savings"
)

// Valid reports whether t is one of the supported entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeIncome, EntryTypeExpense, EntryTypeInvestment, EntryTypeSavings:
		return true
	}
	return false
}

// RecurringFrequency is the enumeration of supported recurrence intervals.
// It is meaningful only when an entry is marked as recurring.
type RecurringFrequency string

// Supported recurrence intervals.
const (
	FrequencyDaily   RecurringFrequency = "daily"
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// Valid reports whether f is one of the supported recurrence intervals.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// FinancialEntry is a single financial transaction record owned by a user.
//
// Amount is a sign-less magnitude; whether it counts towards income or
// expense is decided by Type. Date is the calendar moment of the transaction
// itself and is independent of CreatedAt.
type FinancialEntry struct {
	// EntryID is the server-assigned identifier of the record.
	EntryID int64 `json:"id"`

	// UserID is the identifier of the owning user. Every read and write of
	// the record is scoped to this value.
	UserID int64 `json:"userId"`

	Type        EntryType `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`

	// Date is the transaction date. Defaults to the creation moment when
	// the client omits it.
	Date time.Time `json:"date"`

	// Tags is an unordered set of free-form labels.
	Tags []string `json:"tags"`

	// IsRecurring marks the entry as repeating.
	IsRecurring bool `json:"isRecurring"`

	// RecurringFrequency is nil unless IsRecurring is true.
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the FinancialEntry model.
func (e FinancialEntry) TableName() string {
	return "financial_entries"
}

// EntryFilter carries the optional narrowing criteria shared by the list,
// analytics, and CSV export operations. UserID is always set by the caller
// from the authenticated session, never from client input.
type EntryFilter struct {
	UserID    int64
	Type      EntryType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// EntryPage carries pagination parameters for list queries.
type EntryPage struct {
	// Page is the 1-based page number.
	Page int

	// Limit is the number of entries per page.
	Limit int
}

// Offset returns the number of rows to skip for the page.
func (p EntryPage) Offset() int {
	return (p.Page - 1) * p.Limit
}

// EntryUpdate describes a partial update of a financial entry.
// Nil fields are left untouched.
type EntryUpdate struct {
	Type               *EntryType          `json:"type"`
	Category           *string             `json:"category"`
	Amount             *float64            `json:"amount"`
	Description        *string             `json:"description"`
	Date               *time.Time          `json:"date"`
	Tags               *[]string           `json:"tags"`
	IsRecurring        *bool               `json:"isRecurring"`
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u EntryUpdate) IsEmpty() bool {
	return u.Type == nil && u.Category == nil && u.Amount == nil &&
		u.Description == nil && u.Date == nil && u.Tags == nil &&
		u.IsRecurring == nil && u.RecurringFrequency == nil
}
