package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/careshare/internal/auth"
	"github.com/mmynk/careshare/internal/calculator"
	"github.com/mmynk/careshare/internal/receipts"
	"github.com/mmynk/careshare/internal/storage"
)

var (
	errAuthRequired = errors.New("authentication required")
	errNotAMember   = errors.New("you must be a member of this family")
)

// invalidInputs are the domain errors caused by the request itself.
var invalidInputs = []error{
	calculator.ErrNoMembers,
	calculator.ErrNonPositiveAmount,
	calculator.ErrInvalidAllocation,
	calculator.ErrNegativeShare,
	calculator.ErrSubCentAmount,
	calculator.ErrPercentageOutOfRange,
	calculator.ErrUnknownMember,
	calculator.ErrDuplicateMember,
	calculator.ErrUnknownSplitType,
	calculator.ErrUnknownStrategy,
	receipts.ErrEmpty,
	receipts.ErrTooLarge,
	receipts.ErrUnsupported,
	auth.ErrWeakPassword,
}

// toConnectError maps domain and storage errors onto Connect codes.
// Errors that are already *connect.Error pass through.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, errNotAMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, errAuthRequired):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	for _, target := range invalidInputs {
		if errors.Is(err, target) {
			cerr := connect.NewError(connect.CodeInvalidArgument, err)
			var allocErr *calculator.InvalidAllocationError
			if errors.As(err, &allocErr) {
				cerr.Meta().Set("Allocation-Difference", allocErr.Difference().StringFixed(2))
			}
			return cerr
		}
	}

	slog.Error("Unexpected error", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

// invalidArgument wraps a request validation failure.
func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
