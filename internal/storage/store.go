// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/models"
)

// ErrNotFound is wrapped by stores when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// FamilyLedger is a consistent read of a family: its members and the bills
// (with allocations) in the requested period.
type FamilyLedger struct {
	Family  *models.Family
	Members []models.Member
	Bills   []*models.Bill
}

// Store defines the interface for CareShare storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateFamily persists a new family. ID and CreatedAt are populated by the store.
	CreateFamily(ctx context.Context, family *models.Family) error

	// GetFamily retrieves a family by its ID.
	GetFamily(ctx context.Context, familyID string) (*models.Family, error)

	// ListFamiliesByUser returns the families the user belongs to as a member.
	ListFamiliesByUser(ctx context.Context, userID string) ([]*models.Family, error)

	// SetMonthlyBudget replaces the family's monthly budget ceiling.
	SetMonthlyBudget(ctx context.Context, familyID string, budget decimal.Decimal) error

	// AddMember registers a member in a family. ID and CreatedAt are populated by the store.
	AddMember(ctx context.Context, member *models.Member) error

	// ListMembers returns a family's members in registration order.
	ListMembers(ctx context.Context, familyID string) ([]models.Member, error)

	// CreateBill persists a bill and all of its allocations atomically.
	// Either every row is written or none is.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill with its allocations.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBillsByFamily returns a family's bills with allocations, newest first.
	// A nil period returns every bill; otherwise bills are matched on their
	// effective date (due date, else creation time).
	ListBillsByFamily(ctx context.Context, familyID string, period *models.DateRange) ([]*models.Bill, error)

	// GetAllocationsForBill returns a bill's allocations.
	GetAllocationsForBill(ctx context.Context, billID string) ([]models.Allocation, error)

	// GetFamilyLedger reads family, members and bills in one read-only transaction.
	GetFamilyLedger(ctx context.Context, familyID string, period *models.DateRange) (*FamilyLedger, error)

	// MarkBillPaid sets status PAID and the paid date. Repeating it on a paid
	// bill only moves the paid date.
	MarkBillPaid(ctx context.Context, billID string, paidAt time.Time) error

	// SetReceiptURL attaches a receipt reference to a bill.
	SetReceiptURL(ctx context.Context, billID, receiptURL string) error

	// DeleteBill removes a bill and its allocations.
	DeleteBill(ctx context.Context, billID string) error

	// CreateUser inserts a registered user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil, nil when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
