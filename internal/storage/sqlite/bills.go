package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/calculator"
	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/internal/storage"
)

var errEstateAllocations = errors.New("estate bills cannot carry allocations")

const billColumns = `id, family_id, description, amount, due_date, status, paid_at,
	receipt_url, strategy, split_type, created_by, created_at`

// CreateBill inserts a bill and its allocations in one transaction.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.Strategy == models.StrategyEstate && len(bill.Allocations) > 0 {
		return errEstateAllocations
	}
	if bill.Strategy == models.StrategyFamilySplit {
		if err := checkAllocations(bill); err != nil {
			return err
		}
	}
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Status == "" {
		bill.Status = models.StatusPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var splitType sql.NullString
	if bill.Strategy == models.StrategyFamilySplit {
		splitType = stringOrNull(string(bill.SplitType))
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills ("+billColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		bill.ID,
		bill.FamilyID,
		bill.Description,
		bill.Amount.StringFixed(2),
		unixOrNull(bill.DueDate),
		string(bill.Status),
		unixOrNull(bill.PaidAt),
		stringOrNull(bill.ReceiptURL),
		string(bill.Strategy),
		splitType,
		bill.CreatedBy,
		bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range bill.Allocations {
		a := &bill.Allocations[i]
		a.BillID = bill.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO allocations (bill_id, member_id, position, amount, percentage) VALUES (?, ?, ?, ?, ?)",
			a.BillID, a.MemberID, i, a.Amount.StringFixed(2), a.Percentage.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert allocation for member %s: %w", a.MemberID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its allocations.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+billColumns+" FROM bills WHERE id = ?", billID)
	bill, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	bill.Allocations, err = s.GetAllocationsForBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// checkAllocations rejects family-split shares that miss the bill total.
func checkAllocations(bill *models.Bill) error {
	amounts := make([]decimal.Decimal, len(bill.Allocations))
	allocated := decimal.Zero
	for i, a := range bill.Allocations {
		amounts[i] = a.Amount
		allocated = allocated.Add(a.Amount)
	}
	if calculator.IsAllocationValid(bill.Amount, amounts) {
		return nil
	}
	return &calculator.InvalidAllocationError{Total: bill.Amount, Allocated: allocated}
}

// ListBillsByFamily returns the family's bills newest first, optionally
// restricted to an effective-date range.
func (s *SQLiteStore) ListBillsByFamily(ctx context.Context, familyID string, period *models.DateRange) ([]*models.Bill, error) {
	return listBills(ctx, s.db, familyID, period)
}

func listBills(ctx context.Context, q querier, familyID string, period *models.DateRange) ([]*models.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills WHERE family_id = ?"
	args := []any{familyID}
	if period != nil && !period.From.IsZero() {
		query += " AND COALESCE(due_date, created_at) >= ?"
		args = append(args, period.From.Unix())
	}
	if period != nil && !period.To.IsZero() {
		query += " AND COALESCE(due_date, created_at) < ?"
		args = append(args, period.To.Unix())
	}
	query += " ORDER BY COALESCE(due_date, created_at) DESC, created_at DESC, id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	byID := make(map[string]*models.Bill)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
		byID[bill.ID] = bill
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	rows.Close()

	if len(bills) == 0 {
		return bills, nil
	}

	// One query for every allocation of the family, attached by bill ID.
	arows, err := q.QueryContext(ctx,
		`SELECT a.bill_id, a.member_id, a.amount, a.percentage
		 FROM allocations a JOIN bills b ON b.id = a.bill_id
		 WHERE b.family_id = ? ORDER BY a.bill_id, a.position`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var a models.Allocation
		if err := arows.Scan(&a.BillID, &a.MemberID, &a.Amount, &a.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		if bill, ok := byID[a.BillID]; ok {
			bill.Allocations = append(bill.Allocations, a)
		}
	}
	if err := arows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}
	return bills, nil
}

// GetAllocationsForBill returns a bill's allocations in the order they were computed.
func (s *SQLiteStore) GetAllocationsForBill(ctx context.Context, billID string) ([]models.Allocation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, member_id, amount, percentage FROM allocations WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	defer rows.Close()

	var allocs []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := rows.Scan(&a.BillID, &a.MemberID, &a.Amount, &a.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocs = append(allocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}
	return allocs, nil
}

// GetFamilyLedger reads a family, its members and its bills within a single
// transaction so aggregates never see a half-applied write.
func (s *SQLiteStore) GetFamilyLedger(ctx context.Context, familyID string, period *models.DateRange) (*storage.FamilyLedger, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	family, err := getFamily(ctx, tx, familyID)
	if err != nil {
		return nil, err
	}
	members, err := listMembers(ctx, tx, familyID)
	if err != nil {
		return nil, err
	}
	bills, err := listBills(ctx, tx, familyID, period)
	if err != nil {
		return nil, err
	}
	return &storage.FamilyLedger{Family: family, Members: members, Bills: bills}, nil
}

// MarkBillPaid sets a bill's status to PAID with the given paid date.
func (s *SQLiteStore) MarkBillPaid(ctx context.Context, billID string, paidAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET status = ?, paid_at = ? WHERE id = ?",
		string(models.StatusPaid), paidAt.UTC().Unix(), billID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark bill paid: %w", err)
	}
	return expectOneRow(res, "bill", billID)
}

// SetReceiptURL stores a receipt reference on a bill.
func (s *SQLiteStore) SetReceiptURL(ctx context.Context, billID, receiptURL string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET receipt_url = ? WHERE id = ?",
		stringOrNull(receiptURL), billID,
	)
	if err != nil {
		return fmt.Errorf("failed to set receipt: %w", err)
	}
	return expectOneRow(res, "bill", billID)
}

// DeleteBill deletes a bill and its allocations.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Explicit delete so the cascade holds even without the foreign key pragma.
	if _, err := tx.ExecContext(ctx, "DELETE FROM allocations WHERE bill_id = ?", billID); err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if err := expectOneRow(res, "bill", billID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	var (
		bill       models.Bill
		dueDate    sql.NullInt64
		paidAt     sql.NullInt64
		receiptURL sql.NullString
		splitType  sql.NullString
		status     string
		strategy   string
	)
	err := row.Scan(
		&bill.ID,
		&bill.FamilyID,
		&bill.Description,
		&bill.Amount,
		&dueDate,
		&status,
		&paidAt,
		&receiptURL,
		&strategy,
		&splitType,
		&bill.CreatedBy,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	bill.DueDate = timeFromNull(dueDate)
	bill.PaidAt = timeFromNull(paidAt)
	bill.ReceiptURL = receiptURL.String
	bill.Status = models.BillStatus(status)
	bill.Strategy = models.Strategy(strategy)
	bill.SplitType = models.SplitType(splitType.String)
	return &bill, nil
}
