package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

const (
	KeyTransactions = "transactions"
	KeyThemeMode    = "theme_mode"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is the durable key-value backend. Get returns ErrKeyNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Gateway serializes ledger state into the KV backend. None of its methods
// return errors: failures are logged and the caller gets a safe default.
type Gateway struct {
	kv     KV
	logger *slog.Logger
}

func NewGateway(kv KV, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{kv: kv, logger: logger}
}

// Load returns the saved transactions, or an empty slice when nothing usable
// is stored. Records that fail Transaction.Validate are dropped.
func (g *Gateway) Load(ctx context.Context) []transaction.Transaction {
	data, err := g.kv.Get(ctx, KeyTransactions)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			g.logger.ErrorContext(ctx, "error loading transactions", "error", err)
		}

		return []transaction.Transaction{}
	}

	var txs []transaction.Transaction
	if err := json.Unmarshal([]byte(data), &txs); err != nil {
		g.logger.ErrorContext(ctx, "error decoding transactions", "error", err)
		return []transaction.Transaction{}
	}

	valid := make([]transaction.Transaction, 0, len(txs))

	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			g.logger.WarnContext(ctx, "dropping invalid stored transaction", "index", i, "error", err)
			continue
		}

		valid = append(valid, tx)
	}

	return valid
}

// Save overwrites the stored transactions with txs.
func (g *Gateway) Save(ctx context.Context, txs []transaction.Transaction) {
	if txs == nil {
		txs = []transaction.Transaction{}
	}

	data, err := json.Marshal(txs)
	if err != nil {
		g.logger.ErrorContext(ctx, "error encoding transactions", "error", err)
		return
	}

	if err := g.kv.Set(ctx, KeyTransactions, string(data)); err != nil {
		g.logger.ErrorContext(ctx, "error saving transactions", "error", err, "count", len(txs))
	}
}

func (g *Gateway) LoadThemeMode(ctx context.Context) theme.Mode {
	data, err := g.kv.Get(ctx, KeyThemeMode)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			g.logger.ErrorContext(ctx, "error loading theme mode", "error", err)
		}

		return theme.ModeLight
	}

	return theme.ParseMode(data)
}

func (g *Gateway) SaveThemeMode(ctx context.Context, mode theme.Mode) {
	if err := g.kv.Set(ctx, KeyThemeMode, string(mode)); err != nil {
		g.logger.ErrorContext(ctx, "error saving theme mode", "error", err)
	}
}

// ClearAll removes both keys. A key that is already gone is not an error.
func (g *Gateway) ClearAll(ctx context.Context) {
	for _, key := range []string{KeyTransactions, KeyThemeMode} {
		if err := g.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrKeyNotFound) {
			g.logger.ErrorContext(ctx, "error clearing storage", "key", key, "error", err)
		}
	}
}
