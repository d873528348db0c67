package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

var header = []string{"id", "date", "type", "category", "amount"}

// Source yields the transactions to export, typically the filtered view.
type Source interface {
	Transactions() []transaction.Transaction
}

// Service exports the current view of the ledger.
type Service struct {
	source Source
	now    func() time.Time
}

func NewService(source Source) *Service {
	return &Service{source: source, now: time.Now}
}

// WriteCSV writes the current view to w.
func (s *Service) WriteCSV(w io.Writer) error {
	return WriteCSV(w, s.source.Transactions())
}

// Export writes the current view into a dated CSV file under outputDir and
// returns its path.
func (s *Service) Export(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("spendy_%s.csv", s.now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.WriteCSV(f); err != nil {
		return "", err
	}

	return path, f.Close()
}

// GenerateSummary renders the current view as plain text, one line per
// transaction followed by its totals.
func (s *Service) GenerateSummary() string {
	return Summary(s.source.Transactions())
}

// WriteCSV writes txs in order with a header row. Amounts keep their full
// precision and dates are RFC 3339 in UTC.
func WriteCSV(w io.Writer, txs []transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.ID.String(),
			tx.Date.UTC().Format(time.RFC3339),
			string(tx.Type),
			tx.Category,
			tx.Amount.String(),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func Summary(txs []transaction.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s €\n",
			transaction.FormatDate(tx.Date), tx.Category, sign, transaction.FormatAmount(tx.Amount))
	}

	totals := transaction.Summarize(txs)

	fmt.Fprintf(&sb, "\nIncome: %s €\n", transaction.FormatAmount(totals.TotalIncome))
	fmt.Fprintf(&sb, "Expenses: %s €\n", transaction.FormatAmount(totals.TotalExpenses))
	fmt.Fprintf(&sb, "Balance: %s €\n", transaction.FormatAmount(totals.TotalBalance))

	return sb.String()
}
