package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type Family struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	CreatedAt     int64           `json:"created_at"`
}

type Member struct {
	ID          string `json:"id"`
	FamilyID    string `json:"family_id"`
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// Allocation is one member's share of a bill, or one row of a split preview.
type Allocation struct {
	MemberID    string          `json:"member_id"`
	DisplayName string          `json:"display_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// Validation tells an editor whether the rows add up to the bill total.
// Reason is "shortfall", "excess" or empty.
type Validation struct {
	Valid      bool            `json:"valid"`
	Total      decimal.Decimal `json:"total"`
	Allocated  decimal.Decimal `json:"allocated"`
	Difference decimal.Decimal `json:"difference"`
	Reason     string          `json:"reason,omitempty"`
}

type Bill struct {
	ID          string          `json:"id"`
	FamilyID    string          `json:"family_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Strategy    string          `json:"strategy"`
	SplitType   string          `json:"split_type,omitempty"`
	Allocations []Allocation    `json:"allocations"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   int64           `json:"created_at"`
}

type ContributionSummary struct {
	MemberID      string          `json:"member_id"`
	DisplayName   string          `json:"display_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	Percentage    decimal.Decimal `json:"percentage"`
	BillCount     int             `json:"bill_count"`
}

type BudgetSnapshot struct {
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentSpent decimal.Decimal `json:"percent_spent"`
	BillCount    int             `json:"bill_count"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
}
