package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Strategy decides who bears a bill.
type Strategy string

const (
	// StrategyEstate bills are paid from the care recipient's own funds and
	// carry no allocations.
	StrategyEstate Strategy = "ESTATE"
	// StrategyFamilySplit bills are divided among family members.
	StrategyFamilySplit Strategy = "FAMILY_SPLIT"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyEstate || s == StrategyFamilySplit
}

// SplitType is the method used to divide a family-split bill.
type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitPercentage SplitType = "PERCENTAGE"
	SplitCustom     SplitType = "CUSTOM"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitPercentage, SplitCustom:
		return true
	}
	return false
}

// BillStatus is the payment status of a bill.
type BillStatus string

const (
	StatusPending BillStatus = "PENDING"
	StatusPaid    BillStatus = "PAID"
)

// Bill is a single trackable expense of a family.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// FamilyID is the family the bill belongs to.
	FamilyID string

	// Description is a non-empty human-readable label (e.g., "Pharmacy co-pay").
	Description string

	// Amount is the bill total. Fixed once allocations are computed against it.
	Amount decimal.Decimal

	// DueDate is optional. When set it dates the bill for budget periods.
	DueDate *time.Time

	// Status is PENDING until the bill is marked paid.
	Status BillStatus

	// PaidAt is set only when Status transitions to PAID.
	PaidAt *time.Time

	// ReceiptURL is an opaque reference returned by receipt storage.
	ReceiptURL string

	// Strategy records who bears the bill.
	Strategy Strategy

	// SplitType is set only for family-split bills.
	SplitType SplitType

	// Allocations are the members' shares. Empty for estate bills.
	Allocations []Allocation

	// CreatedBy is the user ID who recorded the bill.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64
}

// EffectiveDate is the date used to place the bill in a budget period:
// the due date when present, otherwise the creation time.
func (b *Bill) EffectiveDate() time.Time {
	if b.DueDate != nil {
		return b.DueDate.UTC()
	}
	return time.Unix(b.CreatedAt, 0).UTC()
}

// IsPaid reports whether the bill has been paid.
func (b *Bill) IsPaid() bool {
	return b.Status == StatusPaid
}

// Allocation is one member's share of a family-split bill.
type Allocation struct {
	BillID   string
	MemberID string

	// Amount is the member's share in currency units, two decimal places.
	Amount decimal.Decimal

	// Percentage is Amount / bill total × 100, kept for display.
	Percentage decimal.Decimal
}

// DateRange is a half-open interval [From, To). A zero bound leaves that
// side unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	return r.To.IsZero() || t.Before(r.To)
}

// MonthRange returns the UTC calendar month containing t.
func MonthRange(t time.Time) DateRange {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}
