package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/calculator"
	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/internal/storage"
	"github.com/mmynk/careshare/pkg/api"
	"github.com/mmynk/careshare/pkg/api/apiconnect"
)

// ReportService implements the Connect ReportService. Reports are computed
// from persisted allocations on every call and never stored.
type ReportService struct {
	store storage.Store
	now   func() time.Time
}

var _ apiconnect.ReportServiceHandler = (*ReportService)(nil)

// NewReportService creates a new ReportService.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// ledger reads the family snapshot and checks the caller belongs to it.
func (s *ReportService) ledger(ctx context.Context, familyID string, period *models.DateRange) (*storage.FamilyLedger, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.store.GetFamilyLedger(ctx, familyID, period)
	if err != nil {
		return nil, err
	}
	if !isMember(userID, ledger.Members) {
		return nil, errNotAMember
	}
	return ledger, nil
}

// GetContributionSummary rolls up each member's allocations.
func (s *ReportService) GetContributionSummary(ctx context.Context, req *connect.Request[api.GetContributionSummaryRequest]) (*connect.Response[api.GetContributionSummaryResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	period, err := dateRange(req.Msg.From, req.Msg.To)
	if err != nil {
		return nil, invalidArgument(err)
	}
	ledger, err := s.ledger(ctx, req.Msg.FamilyID, period)
	if err != nil {
		return nil, toConnectError(err)
	}

	summaries := calculator.Summarize(ledger.Members, ledger.Bills)
	grand := decimal.Zero
	out := make([]api.ContributionSummary, len(summaries))
	for i, cs := range summaries {
		grand = grand.Add(cs.TotalAmount)
		out[i] = api.ContributionSummary{
			MemberID:      cs.MemberID,
			DisplayName:   cs.DisplayName,
			TotalAmount:   cs.TotalAmount,
			PaidAmount:    cs.PaidAmount,
			PendingAmount: cs.PendingAmount,
			Percentage:    roundPercent(cs.Percentage),
			BillCount:     cs.BillCount,
		}
	}

	slog.Debug("Contribution summary computed",
		"family_id", req.Msg.FamilyID,
		"bills", len(ledger.Bills),
		"grand_total", grand.StringFixed(2),
	)
	return connect.NewResponse(&api.GetContributionSummaryResponse{
		Summaries:  out,
		GrandTotal: grand,
	}), nil
}

// GetBudgetSnapshot compares a calendar month's spending with the family's
// monthly budget. The current month is used when none is given.
func (s *ReportService) GetBudgetSnapshot(ctx context.Context, req *connect.Request[api.GetBudgetSnapshotRequest]) (*connect.Response[api.GetBudgetSnapshotResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	year, month := now.Year(), now.Month()
	if req.Msg.Year != 0 {
		year = req.Msg.Year
	}
	if req.Msg.Month != 0 {
		month = time.Month(req.Msg.Month)
	}
	period := models.MonthRange(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))

	ledger, err := s.ledger(ctx, req.Msg.FamilyID, &period)
	if err != nil {
		return nil, toConnectError(err)
	}

	snap := calculator.Snapshot(ledger.Family.MonthlyBudget, ledger.Bills)
	return connect.NewResponse(&api.GetBudgetSnapshotResponse{
		Snapshot: &api.BudgetSnapshot{
			Budget:       snap.Budget,
			Spent:        snap.Spent,
			Remaining:    snap.Remaining,
			PercentSpent: roundPercent(snap.PercentSpent),
			BillCount:    snap.BillCount,
			PeriodStart:  period.From,
			PeriodEnd:    period.To,
		},
	}), nil
}
