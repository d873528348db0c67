package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendy/internal/ledger"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

// Tracker is the command/query surface presentation layers talk to. Reads are
// always derived from the current ledger and filter; nothing is cached.
type Tracker struct {
	ledger *ledger.Store
	logger *slog.Logger

	mu     sync.RWMutex
	filter transaction.Filter
}

func New(store *ledger.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{ledger: store, logger: logger}
}

// AddTransaction validates params and records a new transaction.
// Invalid input never reaches the ledger.
func (t *Tracker) AddTransaction(ctx context.Context, params transaction.NewParams) (transaction.Transaction, error) {
	if err := params.Validate(); err != nil {
		return transaction.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	tx := t.ledger.Add(ctx, params)
	t.logger.DebugContext(ctx, "transaction added", "id", tx.ID, "type", tx.Type, "category", tx.Category)

	return tx, nil
}

// DeleteTransaction removes a transaction. Unknown ids are ignored.
func (t *Tracker) DeleteTransaction(ctx context.Context, id uuid.UUID) {
	if !t.ledger.Delete(ctx, id) {
		t.logger.DebugContext(ctx, "delete of unknown transaction ignored", "id", id)
	}
}

// ClearAllData empties the ledger, resets the filter and erases persisted state.
func (t *Tracker) ClearAllData(ctx context.Context) {
	t.mu.Lock()
	t.filter = transaction.Filter{}
	t.mu.Unlock()

	t.ledger.Clear(ctx)
	t.logger.InfoContext(ctx, "all data cleared")
}

// UpdateFilters replaces the active filter. The type goes through
// transaction.ParseType, so "Expense" becomes expense and an empty type
// becomes TypeAll. An unknown type is rejected and the active filter is kept.
func (t *Tracker) UpdateFilters(f transaction.Filter) error {
	typ, err := transaction.ParseType(string(f.Type))
	if err != nil {
		return fmt.Errorf("update filters: %w", err)
	}

	f.Type = typ

	t.mu.Lock()
	defer t.mu.Unlock()

	t.filter = f

	return nil
}

func (t *Tracker) Filters() transaction.Filter {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.filter
}

// Transactions returns the ledger narrowed by the active filter.
func (t *Tracker) Transactions() []transaction.Transaction {
	return transaction.FilterTransactions(t.ledger.All(), t.Filters())
}

func (t *Tracker) AllTransactions() []transaction.Transaction {
	return t.ledger.All()
}

// BalanceSummary always covers the whole ledger, never the filtered view.
func (t *Tracker) BalanceSummary() transaction.Summary {
	return transaction.Summarize(t.ledger.All())
}

func (t *Tracker) Categories() []string {
	return transaction.Categories(t.ledger.All())
}

// Import adds the rows in order, as if entered one by one, with a single
// save. Every row is validated first; if any is invalid nothing is added.
func (t *Tracker) Import(ctx context.Context, rows []transaction.NewParams) ([]transaction.Transaction, error) {
	for i, p := range rows {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("import row %d: %w", i+1, err)
		}
	}

	added := t.ledger.AddMany(ctx, rows)

	t.logger.InfoContext(ctx, "transactions imported", "count", len(added))

	return added, nil
}
