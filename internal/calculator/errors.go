package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoMembers is returned when a family split has nobody to split across.
	ErrNoMembers = errors.New("family split requires at least one member")
	// ErrNonPositiveAmount is returned when a bill total is zero or negative.
	ErrNonPositiveAmount = errors.New("bill total must be greater than zero")
	// ErrInvalidAllocation matches every *InvalidAllocationError.
	ErrInvalidAllocation = errors.New("allocation does not match bill total")

	ErrNegativeShare        = errors.New("share amount cannot be negative")
	ErrSubCentAmount        = errors.New("share amount cannot be finer than a cent")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrUnknownMember        = errors.New("member is not part of this split")
	ErrDuplicateMember      = errors.New("member listed more than once")
	ErrUnknownSplitType     = errors.New("unknown split type")
	ErrUnknownStrategy      = errors.New("unknown allocation strategy")
)

// InvalidAllocationError reports by how much the shares of a bill miss its total.
type InvalidAllocationError struct {
	Total     decimal.Decimal
	Allocated decimal.Decimal
}

// Difference is Total − Allocated: positive for a shortfall, negative for an excess.
func (e *InvalidAllocationError) Difference() decimal.Decimal {
	return e.Total.Sub(e.Allocated)
}

// Shortfall reports whether the shares add up to less than the total.
func (e *InvalidAllocationError) Shortfall() bool {
	return e.Difference().IsPositive()
}

func (e *InvalidAllocationError) Error() string {
	diff := e.Difference()
	if diff.IsPositive() {
		return fmt.Sprintf("invalid allocation: shares add up to %s, %s short of the bill total %s",
			e.Allocated.StringFixed(2), diff.StringFixed(2), e.Total.StringFixed(2))
	}
	return fmt.Sprintf("invalid allocation: shares add up to %s, %s over the bill total %s",
		e.Allocated.StringFixed(2), diff.Neg().StringFixed(2), e.Total.StringFixed(2))
}

// Is lets errors.Is(err, ErrInvalidAllocation) match.
func (e *InvalidAllocationError) Is(target error) bool {
	return target == ErrInvalidAllocation
}
