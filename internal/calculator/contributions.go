package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/models"
)

// ContributionSummary is one member's share of everything the family has split.
type ContributionSummary struct {
	MemberID    string
	DisplayName string

	// TotalAmount is the sum of the member's allocations across all bills.
	TotalAmount decimal.Decimal
	// PaidAmount and PendingAmount split TotalAmount by the bill's status.
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal

	// Percentage is TotalAmount over the family total × 100; zero when the
	// family total is zero.
	Percentage decimal.Decimal

	// BillCount is the number of bills the member has a share in.
	BillCount int
}

// Summarize rolls allocations up per member.
//
// Algorithm:
//   - For each bill: add every allocation to its member's paid or pending sum
//   - Grand total: sum over all members
//   - Percentage: member total / grand total × 100
//
// Every registered member gets a row, in registration order, even with no
// allocations. Allocations for members not in the registry are appended
// after them. Estate bills carry no allocations and contribute nothing.
func Summarize(members []models.Member, bills []*models.Bill) []ContributionSummary {
	index := make(map[string]int, len(members))
	summaries := make([]ContributionSummary, 0, len(members))
	for _, m := range members {
		if _, exists := index[m.ID]; exists {
			continue
		}
		index[m.ID] = len(summaries)
		summaries = append(summaries, newSummary(m.ID, m.DisplayName))
	}

	grand := decimal.Zero
	for _, bill := range bills {
		for _, alloc := range bill.Allocations {
			i, exists := index[alloc.MemberID]
			if !exists {
				i = len(summaries)
				index[alloc.MemberID] = i
				summaries = append(summaries, newSummary(alloc.MemberID, alloc.MemberID))
			}
			s := &summaries[i]
			if bill.IsPaid() {
				s.PaidAmount = s.PaidAmount.Add(alloc.Amount)
			} else {
				s.PendingAmount = s.PendingAmount.Add(alloc.Amount)
			}
			s.TotalAmount = s.TotalAmount.Add(alloc.Amount)
			s.BillCount++
			grand = grand.Add(alloc.Amount)
		}
	}

	if grand.IsZero() {
		return summaries
	}
	for i := range summaries {
		summaries[i].Percentage = summaries[i].TotalAmount.Mul(hundred).Div(grand)
	}
	return summaries
}

func newSummary(memberID, name string) ContributionSummary {
	return ContributionSummary{
		MemberID:      memberID,
		DisplayName:   name,
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		Percentage:    decimal.Zero,
	}
}
