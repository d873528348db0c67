package importer

import (
	"io"

	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

// Importer turns a bank export into uncategorised transaction params.
type Importer interface {
	Parse(r io.Reader) ([]transaction.NewParams, error)
}
