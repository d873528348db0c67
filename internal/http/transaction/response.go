package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

type Response struct {
	ID       uuid.UUID        `json:"id"`
	Amount   decimal.Decimal  `json:"amount"`
	Category string           `json:"category"`
	Icon     string           `json:"icon"`
	Type     transaction.Type `json:"type"`
	Date     time.Time        `json:"date"`
}

func ToResponse(tx transaction.Transaction) Response {
	return Response{
		ID:       tx.ID,
		Amount:   tx.Amount,
		Category: tx.Category,
		Icon:     transaction.CategoryIcon(tx.Category),
		Type:     tx.Type,
		Date:     tx.Date,
	}
}

// ToResponseList never returns nil so empty lists encode as [].
func ToResponseList(txs []transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
