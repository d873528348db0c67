package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategories is the set offered when entering a transaction. Any other
// category is still accepted by the ledger.
var DefaultCategories = []string{"Food", "Travel", "Shopping", "Other"}

var categoryIcons = map[string]string{
	"Food":     "🍽️",
	"Travel":   "🚗",
	"Shopping": "🛍️",
	"Other":    "📝",
}

// CategoryIcon returns the icon shown next to a category. Unknown categories get the "Other" icon.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}

	return categoryIcons["Other"]
}

// FormatAmount renders an amount with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate renders t as DD-MM-YYYY in its own location.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}
