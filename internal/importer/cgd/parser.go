package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/spendy/internal/encoding"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

var ErrNoProfile = errors.New("no matching CGD format found: expected columns for conta, extrato, or cartão")

// Parser reads CGD bank CSV exports. The layout (conta, extrato, cartão) is
// picked by matching header names against the known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one entry per dated, non-zero movement in file order.
// Category is left for the caller to fill in.
func (p *Parser) Parse(r io.Reader) ([]transaction.NewParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s csv: %w", charset, err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

// detectProfile returns the first row that carries every column of a known
// profile, along with its column positions.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips undated rows (footers, page markers) and zero movements.
// firstRow is the 0-based file index of rows[0], used in error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, firstRow int) ([]transaction.NewParams, error) {
	dateIdx := cols[p.Date]
	descIdx := cols[p.Description]

	params := make([]transaction.NewParams, 0, len(rows))

	for i, row := range rows {
		if !hasDate(row, dateIdx) {
			continue
		}

		if cellValue(row, descIdx) == "" {
			return nil, fmt.Errorf("row %d: missing description", firstRow+i+1)
		}

		amount, typ, ok := p.movement(cols, row)
		if !ok {
			continue
		}

		params = append(params, transaction.NewParams{Amount: amount, Type: typ})
	}

	return params, nil
}

func hasDate(row []string, idx int) bool {
	s := cellValue(row, idx)
	if s == "" {
		return false
	}

	_, err := time.Parse("02-01-2006", s)

	return err == nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
