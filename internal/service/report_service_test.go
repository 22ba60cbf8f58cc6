package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/careshare/pkg/api"
)

func TestContributionSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, ids := env.familyWith(t, ana, "0", "Ben", "Cleo")

	equal, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
		FamilyID:    familyID,
		Description: "Pharmacy",
		Amount:      d("100"),
		Strategy:    "FAMILY_SPLIT",
		SplitType:   "EQUAL",
	}))
	require.NoError(t, err)
	_, err = env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
		FamilyID:    familyID,
		Description: "Home aide",
		Amount:      d("200"),
		Strategy:    "FAMILY_SPLIT",
		SplitType:   "CUSTOM",
		MemberIDs:   ids[:2],
		Amounts:     map[string]decimal.Decimal{ids[0]: d("120"), ids[1]: d("80")},
	}))
	require.NoError(t, err)
	_, err = env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
		FamilyID:    familyID,
		Description: "Property tax",
		Amount:      d("500"),
		Strategy:    "ESTATE",
	}))
	require.NoError(t, err)
	_, err = env.bill.MarkBillPaid(ctx, as(ana, &api.MarkBillPaidRequest{BillID: equal.Msg.Bill.ID}))
	require.NoError(t, err)

	resp, err := env.report.GetContributionSummary(ctx, as(ana, &api.GetContributionSummaryRequest{FamilyID: familyID}))
	require.NoError(t, err)
	assert.Equal(t, "300.00", resp.Msg.GrandTotal.StringFixed(2), "estate bills are not contributions")

	rows := resp.Msg.Summaries
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ana", "Ben", "Cleo"}, []string{rows[0].DisplayName, rows[1].DisplayName, rows[2].DisplayName})

	assert.Equal(t, "153.34", rows[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "33.34", rows[0].PaidAmount.StringFixed(2))
	assert.Equal(t, "120.00", rows[0].PendingAmount.StringFixed(2))
	assert.Equal(t, 2, rows[0].BillCount)
	assert.Equal(t, "113.33", rows[1].TotalAmount.StringFixed(2))
	assert.Equal(t, "33.33", rows[2].TotalAmount.StringFixed(2))
	assert.Equal(t, 1, rows[2].BillCount)

	assert.Equal(t, "51.1133", rows[0].Percentage.StringFixed(4))
	assert.Equal(t, "37.7767", rows[1].Percentage.StringFixed(4))
	assert.Equal(t, "11.1100", rows[2].Percentage.StringFixed(4))
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Percentage)
	}
	assert.True(t, sum.Sub(d("100")).Abs().LessThan(d("0.01")), "percentages sum to %s", sum)
}

func TestContributionSummaryEstateOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, _ := env.familyWith(t, ana, "0", "Ben")

	_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
		FamilyID:    familyID,
		Description: "Property tax",
		Amount:      d("500"),
		Strategy:    "ESTATE",
	}))
	require.NoError(t, err)

	resp, err := env.report.GetContributionSummary(ctx, as(ana, &api.GetContributionSummaryRequest{FamilyID: familyID}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.GrandTotal.IsZero())
	require.Len(t, resp.Msg.Summaries, 2)
	for _, r := range resp.Msg.Summaries {
		assert.True(t, r.TotalAmount.IsZero())
		assert.True(t, r.Percentage.IsZero())
	}
}

func TestBudgetSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")

	t.Run("small pending bill", func(t *testing.T) {
		familyID, _ := env.familyWith(t, ana, "2400")
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Stamps",
			Amount:      d("0.35"),
			DueDate:     date(2026, time.June, 15),
			Strategy:    "FAMILY_SPLIT",
			SplitType:   "EQUAL",
		}))
		require.NoError(t, err)

		resp, err := env.report.GetBudgetSnapshot(ctx, as(ana, &api.GetBudgetSnapshotRequest{
			FamilyID: familyID,
			Year:     2026,
			Month:    6,
		}))
		require.NoError(t, err)
		snap := resp.Msg.Snapshot
		assert.Equal(t, "2400.00", snap.Budget.StringFixed(2))
		assert.Equal(t, "0.35", snap.Spent.StringFixed(2))
		assert.Equal(t, "2399.65", snap.Remaining.StringFixed(2))
		assert.Equal(t, "0.0146", snap.PercentSpent.StringFixed(4))
		assert.Equal(t, 1, snap.BillCount)
		assert.True(t, snap.PeriodStart.Equal(*date(2026, time.June, 1)))
		assert.True(t, snap.PeriodEnd.Equal(*date(2026, time.July, 1)))
	})

	t.Run("estate bills spend the budget", func(t *testing.T) {
		familyID, _ := env.familyWith(t, ana, "1000", "Ben")
		for _, bill := range []*api.CreateBillRequest{
			{Description: "Property tax", Amount: d("500"), DueDate: date(2026, time.March, 3), Strategy: "ESTATE"},
			{Description: "Insurance", Amount: d("700"), DueDate: date(2026, time.March, 20), Strategy: "FAMILY_SPLIT", SplitType: "EQUAL"},
			{Description: "Next month", Amount: d("90"), DueDate: date(2026, time.April, 2), Strategy: "ESTATE"},
		} {
			bill.FamilyID = familyID
			_, err := env.bill.CreateBill(ctx, as(ana, bill))
			require.NoError(t, err)
		}

		resp, err := env.report.GetBudgetSnapshot(ctx, as(ana, &api.GetBudgetSnapshotRequest{
			FamilyID: familyID,
			Year:     2026,
			Month:    3,
		}))
		require.NoError(t, err)
		snap := resp.Msg.Snapshot
		assert.Equal(t, "1200.00", snap.Spent.StringFixed(2))
		assert.Equal(t, "-200.00", snap.Remaining.StringFixed(2), "over budget goes negative")
		assert.Equal(t, "120.0000", snap.PercentSpent.StringFixed(4))
		assert.Equal(t, 2, snap.BillCount)
	})

	t.Run("zero budget reports zero percent", func(t *testing.T) {
		familyID, _ := env.familyWith(t, ana, "0")
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Taxi",
			Amount:      d("25"),
			DueDate:     date(2026, time.January, 9),
			Strategy:    "ESTATE",
		}))
		require.NoError(t, err)

		resp, err := env.report.GetBudgetSnapshot(ctx, as(ana, &api.GetBudgetSnapshotRequest{
			FamilyID: familyID,
			Year:     2026,
			Month:    1,
		}))
		require.NoError(t, err)
		assert.True(t, resp.Msg.Snapshot.PercentSpent.IsZero())
		assert.Equal(t, "-25.00", resp.Msg.Snapshot.Remaining.StringFixed(2))
	})

	t.Run("outsider denied", func(t *testing.T) {
		familyID, _ := env.familyWith(t, ana, "10")
		eve := env.register(t, "Eve")
		_, err := env.report.GetBudgetSnapshot(ctx, as(eve, &api.GetBudgetSnapshotRequest{FamilyID: familyID}))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("invalid month", func(t *testing.T) {
		familyID, _ := env.familyWith(t, ana, "10")
		_, err := env.report.GetBudgetSnapshot(ctx, as(ana, &api.GetBudgetSnapshotRequest{FamilyID: familyID, Month: 13}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})
}
