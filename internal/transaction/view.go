package transaction

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Summary aggregates the whole ledger, regardless of any active filter.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
}

// FilterTransactions returns the transactions matching f, in input order.
func FilterTransactions(txs []Transaction, f Filter) []Transaction {
	out := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}

	return out
}

// Summarize totals income and expenses in a single pass.
func Summarize(txs []Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			income = income.Add(tx.Amount)
		case TypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		TotalBalance:  income.Sub(expenses),
	}
}

// Categories returns the distinct categories present in txs, sorted ascending
// by byte order.
func Categories(txs []Transaction) []string {
	seen := make(map[string]struct{}, len(txs))
	out := make([]string, 0)

	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}

		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}

	slices.Sort(out)

	return out
}
