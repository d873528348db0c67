package ledger

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

//go:generate mockgen -source=ledger.go -destination=gateway_mock.go -package=ledger
type Gateway interface {
	Load(ctx context.Context) []transaction.Transaction
	Save(ctx context.Context, txs []transaction.Transaction)
	ClearAll(ctx context.Context)
}

// Store owns the authoritative transaction list, newest first. Every
// mutation is applied in memory before the gateway is asked to persist it,
// and persistence failures never undo a mutation. The gateway is called with
// the lock held so writes reach it in mutation order; it must not block on
// storage.
type Store struct {
	gateway Gateway
	logger  *slog.Logger
	now     func() time.Time
	newID   func() uuid.UUID

	mu  sync.RWMutex
	txs []transaction.Transaction
}

type Option func(*Store)

// WithClock overrides the source of transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how transaction ids are generated.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(gateway Gateway, opts ...Option) *Store {
	s := &Store{
		gateway: gateway,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   uuid.New,
		txs:     []transaction.Transaction{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Initialize loads the saved ledger. An empty load leaves the store as it is,
// so "nothing saved" and "saved empty" look the same.
func (s *Store) Initialize(ctx context.Context) {
	loaded := s.gateway.Load(ctx)
	if len(loaded) == 0 {
		return
	}

	seen := make(map[uuid.UUID]struct{}, len(loaded))
	txs := make([]transaction.Transaction, 0, len(loaded))

	for _, tx := range loaded {
		if _, dup := seen[tx.ID]; dup {
			s.logger.WarnContext(ctx, "dropping duplicate transaction id", "id", tx.ID)
			continue
		}

		seen[tx.ID] = struct{}{}
		txs = append(txs, tx)
	}

	s.mu.Lock()
	s.txs = txs
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "ledger loaded", "count", len(txs))
}

// Add records a new transaction at the front of the ledger and returns it.
// Input is expected to be validated by the caller.
func (s *Store) Add(ctx context.Context, params transaction.NewParams) transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := transaction.Transaction{
		ID:       s.uniqueID(nil),
		Amount:   params.Amount,
		Category: params.Category,
		Type:     params.Type,
		Date:     s.now().UTC(),
	}

	s.txs = slices.Insert(s.txs, 0, tx)
	s.gateway.Save(ctx, slices.Clone(s.txs))

	return tx
}

// AddMany records params in order as if each were passed to Add, so the last
// one ends up newest, and saves once. The returned slice follows params order.
func (s *Store) AddMany(ctx context.Context, params []transaction.NewParams) []transaction.Transaction {
	if len(params) == 0 {
		return []transaction.Transaction{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]transaction.Transaction, 0, len(params))
	for _, p := range params {
		added = append(added, transaction.Transaction{
			ID:       s.uniqueID(added),
			Amount:   p.Amount,
			Category: p.Category,
			Type:     p.Type,
			Date:     s.now().UTC(),
		})
	}

	front := slices.Clone(added)
	slices.Reverse(front)

	s.txs = append(front, s.txs...)
	s.gateway.Save(ctx, slices.Clone(s.txs))

	return added
}

// Delete removes the transaction with the given id. It reports whether one
// was found; a missing id is not an error and still triggers a save.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.txs)
	s.txs = slices.DeleteFunc(s.txs, func(tx transaction.Transaction) bool {
		return tx.ID == id
	})
	found := len(s.txs) != before
	s.gateway.Save(ctx, slices.Clone(s.txs))

	return found
}

// Clear empties the ledger and removes the persisted keys.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = []transaction.Transaction{}
	s.gateway.ClearAll(ctx)
}

// All returns a copy of every transaction, newest first.
func (s *Store) All() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.txs)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.txs)
}

// uniqueID returns an id not used by the ledger or by pending. It must be
// called with mu held.
func (s *Store) uniqueID(pending []transaction.Transaction) uuid.UUID {
	hasID := func(id uuid.UUID) func(transaction.Transaction) bool {
		return func(tx transaction.Transaction) bool { return tx.ID == id }
	}

	for {
		id := s.newID()
		if !slices.ContainsFunc(s.txs, hasID(id)) && !slices.ContainsFunc(pending, hasID(id)) {
			return id
		}
	}
}
