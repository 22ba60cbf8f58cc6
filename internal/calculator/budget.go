package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/models"
)

// BudgetSnapshot compares a period's spending with the monthly budget.
type BudgetSnapshot struct {
	Budget decimal.Decimal
	Spent  decimal.Decimal
	// Remaining is Budget − Spent and goes negative when over budget.
	Remaining decimal.Decimal
	// PercentSpent is Spent / Budget × 100, or zero when Budget is zero.
	PercentSpent decimal.Decimal
	BillCount    int
}

// Snapshot sums the amounts of periodBills against monthlyBudget. Every bill
// counts, whatever its strategy or payment status: estate-funded bills still
// spend the shared budget.
func Snapshot(monthlyBudget decimal.Decimal, periodBills []*models.Bill) BudgetSnapshot {
	spent := decimal.Zero
	for _, bill := range periodBills {
		spent = spent.Add(bill.Amount)
	}

	percent := decimal.Zero
	if !monthlyBudget.IsZero() {
		percent = spent.Mul(hundred).Div(monthlyBudget)
	}

	return BudgetSnapshot{
		Budget:       monthlyBudget,
		Spent:        spent,
		Remaining:    monthlyBudget.Sub(spent),
		PercentSpent: percent,
		BillCount:    len(periodBills),
	}
}
