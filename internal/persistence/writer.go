package persistence

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

const defaultQueueSize = 64

type job struct {
	op  string
	ctx context.Context
	run func(ctx context.Context)
}

// Writer issues gateway writes on a single background goroutine so callers
// never wait for storage. Writes are applied in the order they were queued.
// Reads go straight to the gateway.
type Writer struct {
	gw     *Gateway
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	jobs   chan job
	done   chan struct{}
}

func NewWriter(gw *Gateway, queueSize int, logger *slog.Logger) *Writer {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	w := &Writer{
		gw:     gw,
		logger: logger,
		jobs:   make(chan job, queueSize),
		done:   make(chan struct{}),
	}

	go w.run()

	return w
}

func (w *Writer) run() {
	defer close(w.done)

	for j := range w.jobs {
		j.run(j.ctx)
		w.logger.DebugContext(j.ctx, "persisted", "op", j.op)
	}
}

// enqueue hands the write to the background goroutine. It only blocks when
// the queue is full. After Close the write runs inline once the queue has drained.
func (w *Writer) enqueue(ctx context.Context, op string, run func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		<-w.done
		run(ctx)

		return
	}

	w.jobs <- job{op: op, ctx: ctx, run: run}
}

func (w *Writer) Load(ctx context.Context) []transaction.Transaction {
	return w.gw.Load(ctx)
}

func (w *Writer) LoadThemeMode(ctx context.Context) theme.Mode {
	return w.gw.LoadThemeMode(ctx)
}

// Save queues a write of a private copy of txs.
func (w *Writer) Save(ctx context.Context, txs []transaction.Transaction) {
	snapshot := slices.Clone(txs)

	w.enqueue(ctx, "save", func(ctx context.Context) {
		w.gw.Save(ctx, snapshot)
	})
}

func (w *Writer) SaveThemeMode(ctx context.Context, mode theme.Mode) {
	w.enqueue(ctx, "save_theme_mode", func(ctx context.Context) {
		w.gw.SaveThemeMode(ctx, mode)
	})
}

func (w *Writer) ClearAll(ctx context.Context) {
	w.enqueue(ctx, "clear_all", w.gw.ClearAll)
}

// Close stops accepting queued writes and waits until the queue is drained
// or ctx is done.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
