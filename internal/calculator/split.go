package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/models"
)

// percentPlaces is the display precision of derived percentages.
const percentPlaces = 4

var hundred = decimal.NewFromInt(100)

// Share is one member's computed portion of a bill.
type Share struct {
	MemberID    string
	DisplayName string
	Amount      decimal.Decimal
	Percentage  decimal.Decimal
}

// Request describes a split to compute. Percentages is read for PERCENTAGE
// splits and Amounts for CUSTOM splits; both are keyed by member ID and
// members without an entry get zero.
type Request struct {
	Total       decimal.Decimal
	SplitType   models.SplitType
	Members     []models.Member
	Percentages map[string]decimal.Decimal
	Amounts     map[string]decimal.Decimal
}

// Result is a candidate allocation set plus its validity.
type Result struct {
	SplitType  models.SplitType
	Shares     []Share
	Validation Validation
}

// Allocations converts the shares into allocation rows for billID.
func (r *Result) Allocations(billID string) []models.Allocation {
	allocs := make([]models.Allocation, len(r.Shares))
	for i, s := range r.Shares {
		allocs[i] = models.Allocation{
			BillID:     billID,
			MemberID:   s.MemberID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return allocs
}

// Calculate computes the shares of a bill for the requested split type.
// The result is returned even when it does not add up to the total; callers
// confirming a bill must check Validation.
func Calculate(req Request) (*Result, error) {
	var (
		shares []Share
		err    error
	)
	switch req.SplitType {
	case models.SplitEqual:
		shares, err = EqualSplit(req.Total, req.Members)
	case models.SplitPercentage:
		shares, err = PercentageSplit(req.Total, req.Members, req.Percentages)
	case models.SplitCustom:
		shares, err = CustomSplit(req.Total, req.Members, req.Amounts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, req.SplitType)
	}
	if err != nil {
		return nil, err
	}
	return &Result{
		SplitType:  req.SplitType,
		Shares:     shares,
		Validation: Validate(req.Total.Round(2), shares),
	}, nil
}

// SwitchSplitType recomputes a split from scratch for a new split type.
// Every type starts from the equal distribution; earlier overrides are
// discarded, so switching to the same type twice yields the same result.
func SwitchSplitType(total decimal.Decimal, splitType models.SplitType, members []models.Member) (*Result, error) {
	if !splitType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, splitType)
	}
	shares, err := EqualSplit(total, members)
	if err != nil {
		return nil, err
	}
	return &Result{
		SplitType:  splitType,
		Shares:     shares,
		Validation: Validate(total.Round(2), shares),
	}, nil
}

// EqualSplit divides total evenly. Leftover cents go one each to the first
// members, so 100.00 across three members is 33.34, 33.33, 33.33.
func EqualSplit(total decimal.Decimal, members []models.Member) ([]Share, error) {
	if err := checkInputs(total, members); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(len(members)))
	base, rem := toCents(total).QuoRem(n, 0)
	extra := rem.IntPart() // always < len(members)
	pct := hundred.DivRound(n, percentPlaces)

	shares := make([]Share, len(members))
	for i, m := range members {
		c := base
		if int64(i) < extra {
			c = c.Add(decimal.NewFromInt(1))
		}
		shares[i] = Share{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
			Amount:      fromCents(c),
			Percentage:  pct,
		}
	}
	return shares, nil
}

// PercentageSplit derives each amount as percentage/100 × total. Percentages
// are not normalized: if they do not add up to 100 the shares will not add
// up to the total and validation reports it. Cents lost to rounding are
// handed out by largest remainder, so percentages summing to exactly 100
// always produce shares summing to exactly the total.
func PercentageSplit(total decimal.Decimal, members []models.Member, percentages map[string]decimal.Decimal) ([]Share, error) {
	if err := checkInputs(total, members); err != nil {
		return nil, err
	}
	if err := checkOverrides(members, percentages); err != nil {
		return nil, err
	}

	total = total.Round(2)
	exact := make([]decimal.Decimal, len(members)) // in cents
	cents := make([]decimal.Decimal, len(members))
	sumExact := decimal.Zero
	sumFloor := decimal.Zero
	for i, m := range members {
		p := percentages[m.ID]
		if p.IsNegative() || p.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: %s has %s", ErrPercentageOutOfRange, m.DisplayName, p.String())
		}
		// total × p / 100, expressed in cents, is total × p.
		exact[i] = total.Mul(p)
		cents[i] = exact[i].Truncate(0)
		sumExact = sumExact.Add(exact[i])
		sumFloor = sumFloor.Add(cents[i])
	}
	// At most one cent per member is missing, so the count fits an int64.
	distributeRemainder(cents, exact, sumExact.Round(0).Sub(sumFloor).IntPart())

	shares := make([]Share, len(members))
	for i, m := range members {
		shares[i] = Share{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
			Amount:      fromCents(cents[i]),
			Percentage:  percentages[m.ID],
		}
	}
	return shares, nil
}

// CustomSplit takes each member's amount as given. Amounts finer than a
// cent are rejected rather than rounded, so the validity of the shares is
// that of the amounts the caller entered. The percentage is derived for
// display only.
func CustomSplit(total decimal.Decimal, members []models.Member, amounts map[string]decimal.Decimal) ([]Share, error) {
	if err := checkInputs(total, members); err != nil {
		return nil, err
	}
	if err := checkOverrides(members, amounts); err != nil {
		return nil, err
	}

	total = total.Round(2)
	shares := make([]Share, len(members))
	for i, m := range members {
		a := amounts[m.ID]
		if a.IsNegative() {
			return nil, fmt.Errorf("%w: %s has %s", ErrNegativeShare, m.DisplayName, a.String())
		}
		if !a.Equal(a.Round(2)) {
			return nil, fmt.Errorf("%w: %s has %s", ErrSubCentAmount, m.DisplayName, a.String())
		}
		shares[i] = Share{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
			Amount:      a,
			Percentage:  a.Mul(hundred).DivRound(total, percentPlaces),
		}
	}
	return shares, nil
}

func checkInputs(total decimal.Decimal, members []models.Member) error {
	if !total.Round(2).IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, total.String())
	}
	if len(members) == 0 {
		return ErrNoMembers
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateMember, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// checkOverrides rejects per-member inputs for members outside the split.
func checkOverrides(members []models.Member, overrides map[string]decimal.Decimal) error {
	if len(overrides) == 0 {
		return nil
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	for id := range overrides {
		if !known[id] {
			return fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}
	}
	return nil
}

// distributeRemainder adds one cent to the `missing` entries whose exact
// value lost the most to truncation. Ties go to the earlier member.
func distributeRemainder(cents, exact []decimal.Decimal, missing int64) {
	if missing <= 0 {
		return
	}
	order := make([]int, len(cents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa := exact[order[a]].Sub(cents[order[a]])
		fb := exact[order[b]].Sub(cents[order[b]])
		return fa.GreaterThan(fb)
	})
	one := decimal.NewFromInt(1)
	for i := int64(0); i < missing && i < int64(len(order)); i++ {
		cents[order[i]] = cents[order[i]].Add(one)
	}
}

// toCents returns d in whole cents. It stays a decimal so no total is too
// large to split.
func toCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2).Shift(2)
}

func fromCents(c decimal.Decimal) decimal.Decimal {
	return c.Shift(-2)
}
