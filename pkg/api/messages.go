package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthService

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Password    string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FamilyService

// CreateFamilyRequest creates a family with the caller as its first member.
// DisplayName defaults to the caller's account name and MonthlyBudget to
// the server's configured default.
type CreateFamilyRequest struct {
	Name          string           `json:"name" validate:"required,max=100"`
	DisplayName   string           `json:"display_name,omitempty" validate:"max=100"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
}

type CreateFamilyResponse struct {
	Family *Family `json:"family"`
	Member *Member `json:"member"`
}

type GetFamilyRequest struct {
	FamilyID string `json:"family_id" validate:"required"`
}

type GetFamilyResponse struct {
	Family  *Family  `json:"family"`
	Members []Member `json:"members"`
}

type ListFamiliesRequest struct{}

type ListFamiliesResponse struct {
	Families []Family `json:"families"`
}

// AddMemberRequest registers a family member. UserID links the member to a
// caregiver account so that user can access the family.
type AddMemberRequest struct {
	FamilyID    string `json:"family_id" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	UserID      string `json:"user_id,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct {
	FamilyID string `json:"family_id" validate:"required"`
}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type SetMonthlyBudgetRequest struct {
	FamilyID      string          `json:"family_id" validate:"required"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

type SetMonthlyBudgetResponse struct {
	Family *Family `json:"family"`
}

// BillService

// PreviewSplitRequest computes split rows without saving anything.
// MemberIDs narrows the split to a subset of the family; empty means all.
// Percentages (PERCENTAGE) and Amounts (CUSTOM) are keyed by member ID.
type PreviewSplitRequest struct {
	FamilyID    string                     `json:"family_id" validate:"required"`
	Amount      decimal.Decimal            `json:"amount"`
	SplitType   string                     `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE CUSTOM"`
	MemberIDs   []string                   `json:"member_ids,omitempty" validate:"dive,required"`
	Percentages map[string]decimal.Decimal `json:"percentages,omitempty"`
	Amounts     map[string]decimal.Decimal `json:"amounts,omitempty"`
}

type PreviewSplitResponse struct {
	SplitType   string       `json:"split_type"`
	Allocations []Allocation `json:"allocations"`
	Validation  *Validation  `json:"validation"`
}

// SwitchSplitTypeRequest asks for the default rows of a split type, as an
// editor shows them right after the type is changed.
type SwitchSplitTypeRequest struct {
	FamilyID  string          `json:"family_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	SplitType string          `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE CUSTOM"`
	MemberIDs []string        `json:"member_ids,omitempty" validate:"dive,required"`
}

type SwitchSplitTypeResponse struct {
	SplitType   string       `json:"split_type"`
	Allocations []Allocation `json:"allocations"`
	Validation  *Validation  `json:"validation"`
}

// CreateBillRequest confirms a bill. SplitType and the member fields are
// read only for FAMILY_SPLIT bills.
type CreateBillRequest struct {
	FamilyID    string                     `json:"family_id" validate:"required"`
	Description string                     `json:"description" validate:"required,max=200"`
	Amount      decimal.Decimal            `json:"amount"`
	DueDate     *time.Time                 `json:"due_date,omitempty"`
	Strategy    string                     `json:"strategy" validate:"required,oneof=ESTATE FAMILY_SPLIT"`
	SplitType   string                     `json:"split_type,omitempty" validate:"required_if=Strategy FAMILY_SPLIT"`
	MemberIDs   []string                   `json:"member_ids,omitempty" validate:"dive,required"`
	Percentages map[string]decimal.Decimal `json:"percentages,omitempty"`
	Amounts     map[string]decimal.Decimal `json:"amounts,omitempty"`
	ReceiptURL  string                     `json:"receipt_url,omitempty" validate:"max=2048"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

// ListBillsRequest lists a family's bills, optionally within [From, To)
// by effective date.
type ListBillsRequest struct {
	FamilyID string     `json:"family_id" validate:"required"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
}

// MarkBillPaidRequest marks a bill paid. PaidAt defaults to now.
type MarkBillPaidRequest struct {
	BillID string     `json:"bill_id" validate:"required"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

type MarkBillPaidResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type DeleteBillResponse struct{}

type AttachReceiptRequest struct {
	BillID     string `json:"bill_id" validate:"required"`
	ReceiptURL string `json:"receipt_url" validate:"required,max=2048"`
}

type AttachReceiptResponse struct {
	Bill *Bill `json:"bill"`
}

// ReportService

// GetContributionSummaryRequest aggregates allocations of every bill of the
// family, or only those within [From, To) when given.
type GetContributionSummaryRequest struct {
	FamilyID string     `json:"family_id" validate:"required"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

type GetContributionSummaryResponse struct {
	Summaries  []ContributionSummary `json:"summaries"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
}

// GetBudgetSnapshotRequest reads a calendar month (UTC). Zero Year and Month
// mean the current month.
type GetBudgetSnapshotRequest struct {
	FamilyID string `json:"family_id" validate:"required"`
	Year     int    `json:"year,omitempty" validate:"omitempty,min=1970,max=9999"`
	Month    int    `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
}

type GetBudgetSnapshotResponse struct {
	Snapshot *BudgetSnapshot `json:"snapshot"`
}

// ReceiptService

// UploadReceiptRequest stores a receipt file. Data is base64 in JSON. When
// BillID is set the stored reference is attached to that bill.
type UploadReceiptRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"data"`
	BillID      string `json:"bill_id,omitempty"`
}

type UploadReceiptResponse struct {
	URL  string `json:"url"`
	Bill *Bill  `json:"bill,omitempty"`
}
