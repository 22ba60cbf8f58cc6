package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/calculator"
	"github.com/mmynk/careshare/internal/metrics"
	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/internal/storage"
	"github.com/mmynk/careshare/pkg/api"
	"github.com/mmynk/careshare/pkg/api/apiconnect"
)

var errNegativeAmount = errors.New("amount cannot be negative")

// BillService implements the Connect BillService: split previews and the
// bill record lifecycle.
type BillService struct {
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ apiconnect.BillServiceHandler = (*BillService)(nil)

// NewBillService creates a new BillService. m may be nil.
func NewBillService(store storage.Store, m *metrics.Metrics) *BillService {
	return &BillService{store: store, metrics: m, now: time.Now}
}

// splitInput is what every split computation needs, whichever RPC it comes from.
type splitInput struct {
	familyID    string
	amount      decimal.Decimal
	splitType   models.SplitType
	memberIDs   []string
	percentages map[string]decimal.Decimal
	amounts     map[string]decimal.Decimal
}

// computeSplit selects the members sharing the bill and runs the calculator.
func (s *BillService) computeSplit(ctx context.Context, in splitInput) (*calculator.Result, error) {
	registered, err := familyMembers(ctx, s.store, in.familyID)
	if err != nil {
		return nil, err
	}
	members, err := calculator.SelectMembers(models.StrategyFamilySplit, registered, in.memberIDs)
	if err != nil {
		return nil, err
	}
	return calculator.Calculate(calculator.Request{
		Total:       in.amount,
		SplitType:   in.splitType,
		Members:     members,
		Percentages: in.percentages,
		Amounts:     in.amounts,
	})
}

// PreviewSplit computes the rows for a split and reports whether they add
// up to the amount. Nothing is saved; an invalid split is not an error here.
func (s *BillService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	result, err := s.computeSplit(ctx, splitInput{
		familyID:    req.Msg.FamilyID,
		amount:      req.Msg.Amount,
		splitType:   models.SplitType(req.Msg.SplitType),
		memberIDs:   req.Msg.MemberIDs,
		percentages: req.Msg.Percentages,
		amounts:     req.Msg.Amounts,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Split previewed",
		"family_id", req.Msg.FamilyID,
		"split_type", result.SplitType,
		"valid", result.Validation.Valid,
	)
	return connect.NewResponse(&api.PreviewSplitResponse{
		SplitType:   string(result.SplitType),
		Allocations: toAPIShares(result.Shares),
		Validation:  toAPIValidation(result.Validation),
	}), nil
}

// SwitchSplitType returns the starting rows for a newly selected split type.
// Previous overrides are discarded.
func (s *BillService) SwitchSplitType(ctx context.Context, req *connect.Request[api.SwitchSplitTypeRequest]) (*connect.Response[api.SwitchSplitTypeResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	registered, err := familyMembers(ctx, s.store, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := calculator.SelectMembers(models.StrategyFamilySplit, registered, req.Msg.MemberIDs)
	if err != nil {
		return nil, toConnectError(err)
	}
	result, err := calculator.SwitchSplitType(req.Msg.Amount, models.SplitType(req.Msg.SplitType), members)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SwitchSplitTypeResponse{
		SplitType:   string(result.SplitType),
		Allocations: toAPIShares(result.Shares),
		Validation:  toAPIValidation(result.Validation),
	}), nil
}

// CreateBill confirms a bill. Family-split bills are saved only when their
// allocations add up to the amount; the bill and its allocations are
// written together or not at all.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Msg.Description)
	if description == "" {
		return nil, invalidArgument(errors.New("description is required"))
	}
	amount := req.Msg.Amount.Round(2)
	if amount.IsNegative() {
		return nil, invalidArgument(errNegativeAmount)
	}
	strategy := models.Strategy(req.Msg.Strategy)

	bill := &models.Bill{
		FamilyID:    req.Msg.FamilyID,
		Description: description,
		Amount:      amount,
		DueDate:     utcPtr(req.Msg.DueDate),
		Status:      models.StatusPending,
		ReceiptURL:  req.Msg.ReceiptURL,
		Strategy:    strategy,
		CreatedBy:   userID,
	}

	switch strategy {
	case models.StrategyEstate:
		// Borne by the care recipient: no allocations, split fields ignored.
		if _, err := familyMembers(ctx, s.store, req.Msg.FamilyID); err != nil {
			return nil, toConnectError(err)
		}
	case models.StrategyFamilySplit:
		result, err := s.computeSplit(ctx, splitInput{
			familyID:    req.Msg.FamilyID,
			amount:      amount,
			splitType:   models.SplitType(req.Msg.SplitType),
			memberIDs:   req.Msg.MemberIDs,
			percentages: req.Msg.Percentages,
			amounts:     req.Msg.Amounts,
		})
		if err != nil {
			return nil, toConnectError(err)
		}
		if err := result.Validation.Err(); err != nil {
			s.metrics.AllocationRejected(result.Validation.Reason())
			slog.Warn("CreateBill rejected",
				"family_id", req.Msg.FamilyID,
				"reason", result.Validation.Reason(),
				"difference", result.Validation.Difference.StringFixed(2),
			)
			return nil, toConnectError(err)
		}
		bill.SplitType = result.SplitType
		bill.Allocations = result.Allocations("")
	default:
		return nil, toConnectError(fmt.Errorf("%w: %q", calculator.ErrUnknownStrategy, strategy))
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "family_id", bill.FamilyID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.BillCreated(string(bill.Strategy), string(bill.SplitType))

	slog.Info("Bill created",
		"bill_id", bill.ID,
		"family_id", bill.FamilyID,
		"strategy", bill.Strategy,
		"split_type", bill.SplitType,
		"amount", bill.Amount.StringFixed(2),
	)
	return billResponse(ctx, s.store, bill.ID, func(b *api.Bill) *api.CreateBillResponse {
		return &api.CreateBillResponse{Bill: b}
	})
}

// GetBill returns a bill with its allocations.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	bill, members, err := billWithAccess(ctx, s.store, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(bill, memberNames(members))}), nil
}

// ListBills returns a family's bills newest first, optionally restricted to
// [from, to) by effective date.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	period, err := dateRange(req.Msg.From, req.Msg.To)
	if err != nil {
		return nil, invalidArgument(err)
	}
	members, err := familyMembers(ctx, s.store, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}

	bills, err := s.store.ListBillsByFamily(ctx, req.Msg.FamilyID, period)
	if err != nil {
		slog.Error("ListBills failed", "family_id", req.Msg.FamilyID, "error", err)
		return nil, toConnectError(err)
	}

	names := memberNames(members)
	out := make([]api.Bill, len(bills))
	for i, b := range bills {
		out[i] = *toAPIBill(b, names)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// MarkBillPaid moves a bill to PAID. Marking a paid bill again only moves
// its paid date.
func (s *BillService) MarkBillPaid(ctx context.Context, req *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.MarkBillPaidResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, _, err := billWithAccess(ctx, s.store, req.Msg.BillID); err != nil {
		return nil, toConnectError(err)
	}

	paidAt := s.now().UTC().Truncate(time.Second)
	if req.Msg.PaidAt != nil {
		paidAt = req.Msg.PaidAt.UTC()
	}
	if err := s.store.MarkBillPaid(ctx, req.Msg.BillID, paidAt); err != nil {
		slog.Error("MarkBillPaid failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.BillPaid()

	slog.Info("Bill marked paid", "bill_id", req.Msg.BillID, "paid_at", paidAt)
	return billResponse(ctx, s.store, req.Msg.BillID, func(b *api.Bill) *api.MarkBillPaidResponse {
		return &api.MarkBillPaidResponse{Bill: b}
	})
}

// DeleteBill removes a bill together with its allocations.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, _, err := billWithAccess(ctx, s.store, req.Msg.BillID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		slog.Error("DeleteBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.BillDeleted()

	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// AttachReceipt sets the receipt reference of a bill.
func (s *BillService) AttachReceipt(ctx context.Context, req *connect.Request[api.AttachReceiptRequest]) (*connect.Response[api.AttachReceiptResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, _, err := billWithAccess(ctx, s.store, req.Msg.BillID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.SetReceiptURL(ctx, req.Msg.BillID, req.Msg.ReceiptURL); err != nil {
		slog.Error("AttachReceipt failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	return billResponse(ctx, s.store, req.Msg.BillID, func(b *api.Bill) *api.AttachReceiptResponse {
		return &api.AttachReceiptResponse{Bill: b}
	})
}

// billResponse re-reads a bill after a write and wraps it with build.
func billResponse[T any](ctx context.Context, store storage.Store, billID string, build func(*api.Bill) *T) (*connect.Response[T], error) {
	bill, err := store.GetBill(ctx, billID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := store.ListMembers(ctx, bill.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(build(toAPIBill(bill, memberNames(members)))), nil
}

// dateRange turns optional bounds into a half-open range. A missing bound
// leaves that side open.
func dateRange(from, to *time.Time) (*models.DateRange, error) {
	if from == nil && to == nil {
		return nil, nil
	}
	r := &models.DateRange{}
	if from != nil {
		r.From = from.UTC()
	}
	if to != nil {
		r.To = to.UTC()
	}
	if from != nil && to != nil && !r.From.Before(r.To) {
		return nil, errors.New("from must be before to")
	}
	return r, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
