package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

type staticSource []transaction.Transaction

func (s staticSource) Transactions() []transaction.Transaction { return s }

func sample() staticSource {
	date := time.Date(2023, 10, 27, 9, 30, 0, 0, time.UTC)

	return staticSource{
		{
			ID:       uuid.MustParse("7f1f2a9e-0d0c-4c39-9d53-8a3b1f4c2e01"),
			Amount:   decimal.RequireFromString("12.5"),
			Category: "Food",
			Type:     transaction.TypeExpense,
			Date:     date,
		},
		{
			ID:       uuid.MustParse("7f1f2a9e-0d0c-4c39-9d53-8a3b1f4c2e02"),
			Amount:   decimal.RequireFromString("1000.125"),
			Category: "Salary, monthly",
			Type:     transaction.TypeIncome,
			Date:     date,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "date", "type", "category", "amount"}, records[0])
	assert.Equal(t, []string{
		"7f1f2a9e-0d0c-4c39-9d53-8a3b1f4c2e01", "2023-10-27T09:30:00Z", "expense", "Food", "12.5",
	}, records[1])
	assert.Equal(t, "Salary, monthly", records[2][3], "commas survive quoting")
	assert.Equal(t, "1000.125", records[2][4], "amount keeps full precision")
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "id,date,type,category,amount\n", buf.String())
}

func TestService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	s := NewService(sample())
	s.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }

	path, err := s.Export(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spendy_20240301_080000.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(content), "\n"))
}

func TestService_GenerateSummary(t *testing.T) {
	body := NewService(sample()).GenerateSummary()

	expectedSubstrings := []string{
		"* 27-10-2023 | Food | -12.50 €",
		"* 27-10-2023 | Salary, monthly | +1000.13 €",
		"Income: 1000.13 €",
		"Expenses: 12.50 €",
		"Balance: 987.63 €",
	}

	for _, sub := range expectedSubstrings {
		assert.Contains(t, body, sub)
	}
}
