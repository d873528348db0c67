package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/spendy/internal/importer/cgd"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

var ErrUnknownBank = errors.New("unknown bank")

type Service struct {
	importers map[Bank]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Bank]Importer{
			BankCGD: cgd.NewParser(),
		},
	}
}

// Import parses r with the importer registered for bank and files every row
// under category.
func (s *Service) Import(bank Bank, r io.Reader, category string) ([]transaction.NewParams, error) {
	importer, ok := s.importers[Bank(strings.ToLower(string(bank)))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, transaction.ErrMissingCategory
	}

	params, err := importer.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range params {
		params[i].Category = category
	}

	return params, nil
}
