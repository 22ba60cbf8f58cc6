package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/calculator"
	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/pkg/api"
)

// displayPlaces is the precision of percentages returned to callers.
const displayPlaces = 4

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIFamily(f *models.Family) *api.Family {
	return &api.Family{
		ID:            f.ID,
		Name:          f.Name,
		MonthlyBudget: f.MonthlyBudget,
		CreatedAt:     f.CreatedAt,
	}
}

func toAPIMember(m models.Member) api.Member {
	return api.Member{
		ID:          m.ID,
		FamilyID:    m.FamilyID,
		DisplayName: m.DisplayName,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

func toAPIMembers(members []models.Member) []api.Member {
	out := make([]api.Member, len(members))
	for i, m := range members {
		out[i] = toAPIMember(m)
	}
	return out
}

// toAPIBill converts a bill. names maps member IDs to display names.
func toAPIBill(b *models.Bill, names map[string]string) *api.Bill {
	allocs := make([]api.Allocation, len(b.Allocations))
	for i, a := range b.Allocations {
		allocs[i] = api.Allocation{
			MemberID:    a.MemberID,
			DisplayName: names[a.MemberID],
			Amount:      a.Amount,
			Percentage:  a.Percentage.Round(displayPlaces),
		}
	}
	return &api.Bill{
		ID:          b.ID,
		FamilyID:    b.FamilyID,
		Description: b.Description,
		Amount:      b.Amount,
		DueDate:     b.DueDate,
		Status:      string(b.Status),
		PaidAt:      b.PaidAt,
		ReceiptURL:  b.ReceiptURL,
		Strategy:    string(b.Strategy),
		SplitType:   string(b.SplitType),
		Allocations: allocs,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
	}
}

func toAPIShares(shares []calculator.Share) []api.Allocation {
	out := make([]api.Allocation, len(shares))
	for i, s := range shares {
		out[i] = api.Allocation{
			MemberID:    s.MemberID,
			DisplayName: s.DisplayName,
			Amount:      s.Amount,
			Percentage:  s.Percentage.Round(displayPlaces),
		}
	}
	return out
}

func toAPIValidation(v calculator.Validation) *api.Validation {
	return &api.Validation{
		Valid:      v.Valid,
		Total:      v.Total,
		Allocated:  v.Allocated,
		Difference: v.Difference,
		Reason:     v.Reason(),
	}
}

func memberNames(members []models.Member) map[string]string {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.DisplayName
	}
	return names
}

func roundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(displayPlaces)
}
