package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/internal/storage"
)

// CreateFamily persists a new family.
func (s *SQLiteStore) CreateFamily(ctx context.Context, family *models.Family) error {
	if family.ID == "" {
		family.ID = uuid.New().String()
	}
	if family.CreatedAt == 0 {
		family.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO families (id, name, monthly_budget, created_at) VALUES (?, ?, ?, ?)",
		family.ID, family.Name, family.MonthlyBudget.StringFixed(2), family.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert family: %w", err)
	}
	return nil
}

// GetFamily retrieves a family by ID.
func (s *SQLiteStore) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	return getFamily(ctx, s.db, familyID)
}

func getFamily(ctx context.Context, q querier, familyID string) (*models.Family, error) {
	family := &models.Family{}
	err := q.QueryRowContext(ctx,
		"SELECT id, name, monthly_budget, created_at FROM families WHERE id = ?",
		familyID,
	).Scan(&family.ID, &family.Name, &family.MonthlyBudget, &family.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("family %s: %w", familyID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

// ListFamiliesByUser returns the families in which userID is a member.
func (s *SQLiteStore) ListFamiliesByUser(ctx context.Context, userID string) ([]*models.Family, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT f.id, f.name, f.monthly_budget, f.created_at
		 FROM families f JOIN members m ON m.family_id = f.id
		 WHERE m.user_id = ? ORDER BY f.created_at, f.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		family := &models.Family{}
		if err := rows.Scan(&family.ID, &family.Name, &family.MonthlyBudget, &family.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, family)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate families: %w", err)
	}
	return families, nil
}

// SetMonthlyBudget updates a family's budget ceiling.
func (s *SQLiteStore) SetMonthlyBudget(ctx context.Context, familyID string, budget decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE families SET monthly_budget = ? WHERE id = ?",
		budget.StringFixed(2), familyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update monthly budget: %w", err)
	}
	return expectOneRow(res, "family", familyID)
}

// AddMember registers a new member in a family.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, family_id, display_name, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.FamilyID, member.DisplayName, stringOrNull(member.UserID), member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// ListMembers returns a family's members in the order they joined.
func (s *SQLiteStore) ListMembers(ctx context.Context, familyID string) ([]models.Member, error) {
	return listMembers(ctx, s.db, familyID)
}

func listMembers(ctx context.Context, q querier, familyID string) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, family_id, display_name, user_id, created_at
		 FROM members WHERE family_id = ? ORDER BY created_at, rowid`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var (
			m      models.Member
			userID sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.DisplayName, &userID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.UserID = userID.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func expectOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, storage.ErrNotFound)
	}
	return nil
}
