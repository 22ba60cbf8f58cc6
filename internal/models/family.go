package models

import "github.com/shopspring/decimal"

// Family is a family unit whose members share care costs.
type Family struct {
	// ID is the unique identifier for the family (UUID format).
	ID string

	// Name is the display name of the family (e.g., "Mom's care team").
	Name string

	// MonthlyBudget is the spending ceiling compared against each month's bills.
	MonthlyBudget decimal.Decimal

	// CreatedAt is the Unix timestamp when the family was created.
	CreatedAt int64
}

// Member identifies a person who can receive a share of a family-split bill.
// Members are referenced, never mutated, by allocations.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// FamilyID is the family this member belongs to.
	FamilyID string

	// DisplayName is the name shown next to the member's share.
	DisplayName string

	// UserID links the member to a registered account. Empty for members
	// who do not log in themselves.
	UserID string

	// CreatedAt is the Unix timestamp when the member joined the family.
	CreatedAt int64
}
