package cgd

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

// Profile describes where one CGD export keeps the movement date, its
// description and its value. A profile either has a single signed Signed
// column or an Out/In pair of unsigned columns.
type Profile struct {
	Name        string
	Date        string
	Description string
	Signed      string
	Out         string
	In          string
}

func (p Profile) split() bool {
	return p.Signed == ""
}

func (p Profile) requiredCols() []string {
	if p.split() {
		return []string{p.Date, p.Description, p.Out, p.In}
	}

	return []string{p.Date, p.Description, p.Signed}
}

// movement returns the unsigned value of a row and the ledger side it lands
// on. Rows without a non-zero value report false.
func (p Profile) movement(cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
	if !p.split() {
		d, ok := cellAmount(row, cols[p.Signed])
		switch {
		case !ok:
			return decimal.Zero, "", false
		case d.IsNegative():
			return d.Neg(), transaction.TypeExpense, true
		default:
			return d, transaction.TypeIncome, true
		}
	}

	if d, ok := cellAmount(row, cols[p.Out]); ok {
		return d.Abs(), transaction.TypeExpense, true
	}

	if d, ok := cellAmount(row, cols[p.In]); ok {
		return d.Abs(), transaction.TypeIncome, true
	}

	return decimal.Zero, "", false
}

// Order matters: the card layout shares "Descrição" with the others.
var profiles = []Profile{
	{Name: "cartão", Date: "Data", Description: "Descrição", Out: "Débito", In: "Crédito"},
	{Name: "extrato", Date: "Data mov.", Description: "Descrição", Signed: "Movimento"},
	{Name: "conta", Date: "Data mov.", Description: "Descrição", Signed: "Montante"},
}

// cellAmount parses a non-zero amount written as "1.234,56" or "-588,74".
func cellAmount(row []string, idx int) (decimal.Decimal, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, false
	}

	s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}
