package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/careshare/internal/metrics"
	"github.com/mmynk/careshare/internal/receipts"
	"github.com/mmynk/careshare/internal/storage"
	"github.com/mmynk/careshare/pkg/api"
	"github.com/mmynk/careshare/pkg/api/apiconnect"
)

// ReceiptService implements the Connect ReceiptService.
type ReceiptService struct {
	store    storage.Store
	receipts receipts.Store
	metrics  *metrics.Metrics
}

var _ apiconnect.ReceiptServiceHandler = (*ReceiptService)(nil)

// NewReceiptService creates a ReceiptService writing to rs.
func NewReceiptService(store storage.Store, rs receipts.Store, m *metrics.Metrics) *ReceiptService {
	return &ReceiptService{store: store, receipts: rs, metrics: m}
}

// UploadReceipt stores a receipt file. With a bill ID the reference is also
// attached to that bill.
func (s *ReceiptService) UploadReceipt(ctx context.Context, req *connect.Request[api.UploadReceiptRequest]) (*connect.Response[api.UploadReceiptResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, toConnectError(err)
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if req.Msg.BillID != "" {
		if _, _, err := billWithAccess(ctx, s.store, req.Msg.BillID); err != nil {
			return nil, toConnectError(err)
		}
	}

	url, err := s.receipts.Upload(ctx, receipts.Receipt{
		Filename:    req.Msg.Filename,
		ContentType: req.Msg.ContentType,
		Data:        req.Msg.Data,
	})
	if err != nil {
		slog.Warn("UploadReceipt failed", "filename", req.Msg.Filename, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.ReceiptUploaded(s.receipts.Backend(), len(req.Msg.Data))
	slog.Info("Receipt stored", "backend", s.receipts.Backend(), "url", url, "bytes", len(req.Msg.Data))

	resp := &api.UploadReceiptResponse{URL: url}
	if req.Msg.BillID == "" {
		return connect.NewResponse(resp), nil
	}

	if err := s.store.SetReceiptURL(ctx, req.Msg.BillID, url); err != nil {
		slog.Error("UploadReceipt: failed to attach", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	attached, err := billResponse(ctx, s.store, req.Msg.BillID, func(b *api.Bill) *api.Bill { return b })
	if err != nil {
		return nil, err
	}
	resp.Bill = attached.Msg
	return connect.NewResponse(resp), nil
}
