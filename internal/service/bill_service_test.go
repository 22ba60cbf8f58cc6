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

func TestPreviewSplit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, ids := env.familyWith(t, ana, "0", "Ben", "Cleo")

	t.Run("equal split gives extra cents to the first members", func(t *testing.T) {
		resp, err := env.bill.PreviewSplit(ctx, as(ana, &api.PreviewSplitRequest{
			FamilyID:  familyID,
			Amount:    d("100.00"),
			SplitType: "EQUAL",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"33.34", "33.33", "33.33"}, amountsOf(resp.Msg.Allocations))
		assert.Equal(t, "Ana", resp.Msg.Allocations[0].DisplayName)
		assert.True(t, resp.Msg.Validation.Valid)
		assert.Empty(t, resp.Msg.Validation.Reason)
	})

	t.Run("percentage split keeps the total", func(t *testing.T) {
		resp, err := env.bill.PreviewSplit(ctx, as(ana, &api.PreviewSplitRequest{
			FamilyID:  familyID,
			Amount:    d("99.99"),
			SplitType: "PERCENTAGE",
			Percentages: map[string]decimal.Decimal{
				ids[0]: d("50"),
				ids[1]: d("30"),
				ids[2]: d("20"),
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"49.99", "30.00", "20.00"}, amountsOf(resp.Msg.Allocations))
		assert.True(t, resp.Msg.Validation.Valid)
	})

	t.Run("custom excess is reported, not rejected", func(t *testing.T) {
		resp, err := env.bill.PreviewSplit(ctx, as(ana, &api.PreviewSplitRequest{
			FamilyID:  familyID,
			Amount:    d("200"),
			SplitType: "CUSTOM",
			MemberIDs: ids[:2],
			Amounts:   map[string]decimal.Decimal{ids[0]: d("120"), ids[1]: d("90")},
		}))
		require.NoError(t, err)
		v := resp.Msg.Validation
		assert.False(t, v.Valid)
		assert.Equal(t, "excess", v.Reason)
		assert.Equal(t, "-10.00", v.Difference.StringFixed(2))
		assert.Equal(t, "210.00", v.Allocated.StringFixed(2))
	})

	t.Run("custom shortfall", func(t *testing.T) {
		resp, err := env.bill.PreviewSplit(ctx, as(ana, &api.PreviewSplitRequest{
			FamilyID:  familyID,
			Amount:    d("50"),
			SplitType: "CUSTOM",
			Amounts:   map[string]decimal.Decimal{ids[0]: d("20")},
		}))
		require.NoError(t, err)
		assert.False(t, resp.Msg.Validation.Valid)
		assert.Equal(t, "shortfall", resp.Msg.Validation.Reason)
		assert.Equal(t, "30.00", resp.Msg.Validation.Difference.StringFixed(2))
	})

	tests := []struct {
		name string
		req  *api.PreviewSplitRequest
	}{
		{"zero amount", &api.PreviewSplitRequest{FamilyID: familyID, Amount: d("0"), SplitType: "EQUAL"}},
		{"unknown split type", &api.PreviewSplitRequest{FamilyID: familyID, Amount: d("10"), SplitType: "RANDOM"}},
		{"member outside family", &api.PreviewSplitRequest{FamilyID: familyID, Amount: d("10"), SplitType: "EQUAL", MemberIDs: []string{"stranger"}}},
		{"percentage over 100", &api.PreviewSplitRequest{
			FamilyID: familyID, Amount: d("10"), SplitType: "PERCENTAGE",
			Percentages: map[string]decimal.Decimal{ids[0]: d("120")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.bill.PreviewSplit(ctx, as(ana, tt.req))
			requireCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestSwitchSplitType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, _ := env.familyWith(t, ana, "0", "Ben", "Cleo")

	resp, err := env.bill.SwitchSplitType(ctx, as(ana, &api.SwitchSplitTypeRequest{
		FamilyID:  familyID,
		Amount:    d("100"),
		SplitType: "PERCENTAGE",
	}))
	require.NoError(t, err)
	assert.Equal(t, "PERCENTAGE", resp.Msg.SplitType)
	assert.Equal(t, []string{"33.34", "33.33", "33.33"}, amountsOf(resp.Msg.Allocations))
	assert.True(t, resp.Msg.Validation.Valid)
}

func TestCreateBillScenarios(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, ids := env.familyWith(t, ana, "1000", "Ben", "Cleo")

	t.Run("equal family split", func(t *testing.T) {
		resp, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Pharmacy",
			Amount:      d("100"),
			Strategy:    "FAMILY_SPLIT",
			SplitType:   "EQUAL",
		}))
		require.NoError(t, err)
		bill := resp.Msg.Bill
		assert.Equal(t, "PENDING", bill.Status)
		assert.Equal(t, "EQUAL", bill.SplitType)
		assert.Equal(t, ana.user.ID, bill.CreatedBy)
		assert.Equal(t, []string{"33.34", "33.33", "33.33"}, amountsOf(bill.Allocations))

		got, err := env.bill.GetBill(ctx, as(ana, &api.GetBillRequest{BillID: bill.ID}))
		require.NoError(t, err)
		assert.Equal(t, amountsOf(bill.Allocations), amountsOf(got.Msg.Bill.Allocations))
		assert.Equal(t, "Ben", got.Msg.Bill.Allocations[1].DisplayName)
	})

	t.Run("invalid custom split is not saved", func(t *testing.T) {
		req := &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Home aide",
			Amount:      d("200"),
			Strategy:    "FAMILY_SPLIT",
			SplitType:   "CUSTOM",
			MemberIDs:   ids[:2],
			Amounts:     map[string]decimal.Decimal{ids[0]: d("120"), ids[1]: d("90")},
		}
		_, err := env.bill.CreateBill(ctx, as(ana, req))
		requireCode(t, err, connect.CodeInvalidArgument)
		var cerr *connect.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "-10.00", cerr.Meta().Get("Allocation-Difference"))

		list, err := env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{FamilyID: familyID}))
		require.NoError(t, err)
		for _, b := range list.Msg.Bills {
			assert.NotEqual(t, "Home aide", b.Description)
		}

		req.Amounts[ids[1]] = d("80")
		resp, err := env.bill.CreateBill(ctx, as(ana, req))
		require.NoError(t, err)
		assert.Equal(t, []string{"120.00", "80.00"}, amountsOf(resp.Msg.Bill.Allocations))
	})

	t.Run("estate bill has no allocations", func(t *testing.T) {
		resp, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Property tax",
			Amount:      d("500"),
			Strategy:    "ESTATE",
			SplitType:   "EQUAL",
		}))
		require.NoError(t, err)
		assert.Equal(t, "ESTATE", resp.Msg.Bill.Strategy)
		assert.Empty(t, resp.Msg.Bill.SplitType)
		assert.Empty(t, resp.Msg.Bill.Allocations)
	})

	t.Run("family split needs a split type", func(t *testing.T) {
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Groceries",
			Amount:      d("40"),
			Strategy:    "FAMILY_SPLIT",
		}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Refund",
			Amount:      d("-5"),
			Strategy:    "ESTATE",
		}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("blank description", func(t *testing.T) {
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "   ",
			Amount:      d("5"),
			Strategy:    "ESTATE",
		}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("outsider cannot create or read", func(t *testing.T) {
		eve := env.register(t, "Eve")
		_, err := env.bill.CreateBill(ctx, as(eve, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Sneaky",
			Amount:      d("5"),
			Strategy:    "ESTATE",
		}))
		requireCode(t, err, connect.CodePermissionDenied)

		list, err := env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{FamilyID: familyID}))
		require.NoError(t, err)
		require.NotEmpty(t, list.Msg.Bills)
		_, err = env.bill.GetBill(ctx, as(eve, &api.GetBillRequest{BillID: list.Msg.Bills[0].ID}))
		requireCode(t, err, connect.CodePermissionDenied)
	})
}

func TestBillLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, _ := env.familyWith(t, ana, "0", "Ben")

	created, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
		FamilyID:    familyID,
		Description: "Physio",
		Amount:      d("80"),
		DueDate:     date(2026, time.May, 10),
		Strategy:    "FAMILY_SPLIT",
		SplitType:   "EQUAL",
	}))
	require.NoError(t, err)
	billID := created.Msg.Bill.ID
	assert.Nil(t, created.Msg.Bill.PaidAt)

	t.Run("mark paid", func(t *testing.T) {
		paid, err := env.bill.MarkBillPaid(ctx, as(ana, &api.MarkBillPaidRequest{
			BillID: billID,
			PaidAt: date(2026, time.May, 12),
		}))
		require.NoError(t, err)
		assert.Equal(t, "PAID", paid.Msg.Bill.Status)
		require.NotNil(t, paid.Msg.Bill.PaidAt)
		assert.True(t, paid.Msg.Bill.PaidAt.Equal(*date(2026, time.May, 12)))
	})

	t.Run("marking again moves the paid date", func(t *testing.T) {
		paid, err := env.bill.MarkBillPaid(ctx, as(ana, &api.MarkBillPaidRequest{
			BillID: billID,
			PaidAt: date(2026, time.May, 14),
		}))
		require.NoError(t, err)
		assert.Equal(t, "PAID", paid.Msg.Bill.Status)
		assert.True(t, paid.Msg.Bill.PaidAt.Equal(*date(2026, time.May, 14)))
	})

	t.Run("paid date defaults to now", func(t *testing.T) {
		before := time.Now().UTC().Truncate(time.Second)
		paid, err := env.bill.MarkBillPaid(ctx, as(ana, &api.MarkBillPaidRequest{BillID: billID}))
		require.NoError(t, err)
		require.NotNil(t, paid.Msg.Bill.PaidAt)
		assert.False(t, paid.Msg.Bill.PaidAt.Before(before))
	})

	t.Run("attach receipt", func(t *testing.T) {
		resp, err := env.bill.AttachReceipt(ctx, as(ana, &api.AttachReceiptRequest{
			BillID:     billID,
			ReceiptURL: "https://files.example.com/physio.pdf",
		}))
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/physio.pdf", resp.Msg.Bill.ReceiptURL)
	})

	t.Run("delete removes bill and allocations", func(t *testing.T) {
		_, err := env.bill.DeleteBill(ctx, as(ana, &api.DeleteBillRequest{BillID: billID}))
		require.NoError(t, err)

		_, err = env.bill.GetBill(ctx, as(ana, &api.GetBillRequest{BillID: billID}))
		requireCode(t, err, connect.CodeNotFound)

		summary, err := env.report.GetContributionSummary(ctx, as(ana, &api.GetContributionSummaryRequest{FamilyID: familyID}))
		require.NoError(t, err)
		assert.True(t, summary.Msg.GrandTotal.IsZero())

		_, err = env.bill.DeleteBill(ctx, as(ana, &api.DeleteBillRequest{BillID: billID}))
		requireCode(t, err, connect.CodeNotFound)
	})
}

func TestListBillsByPeriod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, _ := env.familyWith(t, ana, "0")

	for _, due := range []*time.Time{
		date(2026, time.February, 27),
		date(2026, time.March, 1),
		date(2026, time.March, 31),
		date(2026, time.April, 1),
	} {
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Care " + due.Format("Jan 2"),
			Amount:      d("10"),
			DueDate:     due,
			Strategy:    "ESTATE",
		}))
		require.NoError(t, err)
	}

	resp, err := env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{
		FamilyID: familyID,
		From:     date(2026, time.March, 1),
		To:       date(2026, time.April, 1),
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Bills, 2)
	assert.Equal(t, "Care Mar 31", resp.Msg.Bills[0].Description, "newest first")
	assert.Equal(t, "Care Mar 1", resp.Msg.Bills[1].Description)

	all, err := env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{FamilyID: familyID}))
	require.NoError(t, err)
	assert.Len(t, all.Msg.Bills, 4)

	_, err = env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{
		FamilyID: familyID,
		From:     date(2026, time.April, 1),
		To:       date(2026, time.March, 1),
	}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestListBillsOpenLowerBound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")
	familyID, _ := env.familyWith(t, ana, "0")

	for _, due := range []*time.Time{
		date(1965, time.July, 1),
		date(2026, time.May, 1),
	} {
		_, err := env.bill.CreateBill(ctx, as(ana, &api.CreateBillRequest{
			FamilyID:    familyID,
			Description: "Care " + due.Format("2006"),
			Amount:      d("10"),
			DueDate:     due,
			Strategy:    "ESTATE",
		}))
		require.NoError(t, err)
	}

	resp, err := env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{
		FamilyID: familyID,
		To:       date(2000, time.January, 1),
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Bills, 1)
	assert.Equal(t, "Care 1965", resp.Msg.Bills[0].Description)

	resp, err = env.bill.ListBills(ctx, as(ana, &api.ListBillsRequest{
		FamilyID: familyID,
		From:     date(2000, time.January, 1),
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Bills, 1)
	assert.Equal(t, "Care 2026", resp.Msg.Bills[0].Description)
}
