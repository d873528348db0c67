package theme_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
)

type fakeStore struct {
	loaded theme.Mode
	saved  []theme.Mode
}

func (f *fakeStore) LoadThemeMode(context.Context) theme.Mode { return f.loaded }

func (f *fakeStore) SaveThemeMode(_ context.Context, mode theme.Mode) {
	f.saved = append(f.saved, mode)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, theme.ModeDark, theme.ParseMode("dark"))
	assert.Equal(t, theme.ModeLight, theme.ParseMode("light"))
	assert.Equal(t, theme.ModeLight, theme.ParseMode(""))
	assert.Equal(t, theme.ModeLight, theme.ParseMode("sepia"))
}

func TestService_Toggle(t *testing.T) {
	store := &fakeStore{loaded: theme.ModeDark}
	svc := theme.NewService(context.Background(), store)

	assert.Equal(t, theme.ModeDark, svc.Mode())
	assert.Equal(t, theme.ModeLight, svc.Toggle(context.Background()))
	assert.Equal(t, theme.ModeDark, svc.Toggle(context.Background()))
	assert.Equal(t, []theme.Mode{theme.ModeLight, theme.ModeDark}, store.saved)
}
