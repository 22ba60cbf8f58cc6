package calculator

import "github.com/shopspring/decimal"

// Tolerance is the largest rounding gap (exclusive) allowed between a bill
// total and the sum of its shares.
var Tolerance = decimal.New(1, -2)

// Validation is the advisory validity signal shown while a split is edited.
// It must be valid before a family-split bill can be confirmed.
type Validation struct {
	Valid     bool
	Total     decimal.Decimal
	Allocated decimal.Decimal
	// Difference is Total − Allocated.
	Difference decimal.Decimal
}

// Shortfall reports whether the shares add up to less than the total.
func (v Validation) Shortfall() bool {
	return !v.Valid && v.Difference.IsPositive()
}

// Excess reports whether the shares add up to more than the total.
func (v Validation) Excess() bool {
	return !v.Valid && v.Difference.IsNegative()
}

// Reason is "shortfall", "excess" or empty for a valid allocation.
func (v Validation) Reason() string {
	switch {
	case v.Shortfall():
		return "shortfall"
	case v.Excess():
		return "excess"
	}
	return ""
}

// Err returns nil for a valid allocation and an *InvalidAllocationError otherwise.
func (v Validation) Err() error {
	if v.Valid {
		return nil
	}
	return &InvalidAllocationError{Total: v.Total, Allocated: v.Allocated}
}

// Validate checks shares against the bill total.
func Validate(total decimal.Decimal, shares []Share) Validation {
	amounts := make([]decimal.Decimal, len(shares))
	for i, s := range shares {
		amounts[i] = s.Amount
	}
	return validateAmounts(total, amounts)
}

// IsAllocationValid reports whether |total − Σamounts| < 0.01.
func IsAllocationValid(total decimal.Decimal, amounts []decimal.Decimal) bool {
	return validateAmounts(total, amounts).Valid
}

func validateAmounts(total decimal.Decimal, amounts []decimal.Decimal) Validation {
	allocated := decimal.Zero
	for _, a := range amounts {
		allocated = allocated.Add(a)
	}
	diff := total.Sub(allocated)
	return Validation{
		Valid:      diff.Abs().LessThan(Tolerance),
		Total:      total,
		Allocated:  allocated,
		Difference: diff,
	}
}
