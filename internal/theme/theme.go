package theme

import (
	"context"
	"sync"
)

// Mode is the appearance preference, persisted independently of the ledger.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode maps a stored value to a Mode. Anything unknown is light.
func ParseMode(s string) Mode {
	if Mode(s) == ModeDark {
		return ModeDark
	}

	return ModeLight
}

// Opposite returns the mode a toggle switches to.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}

	return ModeDark
}

type Store interface {
	LoadThemeMode(ctx context.Context) Mode
	SaveThemeMode(ctx context.Context, mode Mode)
}

type Service struct {
	store Store

	mu   sync.RWMutex
	mode Mode
}

// NewService reads the saved preference once.
func NewService(ctx context.Context, store Store) *Service {
	return &Service{
		store: store,
		mode:  store.LoadThemeMode(ctx),
	}
}

func (s *Service) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

// Toggle flips the mode, persists it and returns the new value. The save
// happens under the lock so concurrent toggles reach the store in order.
func (s *Service) Toggle(ctx context.Context) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = s.mode.Opposite()
	s.store.SaveThemeMode(ctx, s.mode)

	return s.mode
}
