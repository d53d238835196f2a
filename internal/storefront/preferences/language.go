// Package preferences persists the storefront display language.
package preferences

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/kvstore"
)

type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

var ErrUnsupportedLanguage = errs.New("unsupported language")

func ParseLanguage(s string) (Language, error) {
	switch l := Language(s); l {
	case English, Arabic:
		return l, nil
	}
	return "", errs.Mark(errs.Newf("language %q", s), ErrUnsupportedLanguage)
}

// RTL reports whether the language is written right to left.
func (l Language) RTL() bool {
	return l == Arabic
}

type Preferences struct {
	mu     sync.RWMutex
	lang   Language
	store  kvstore.Store
	logger *slog.Logger
}

// Load reads the stored language. Anything missing or unreadable falls back
// to English.
func Load(ctx context.Context, store kvstore.Store, logger *slog.Logger) *Preferences {
	p := &Preferences{lang: English, store: store, logger: logger}

	data, err := store.Get(ctx, kvstore.KeyLanguage)
	if err != nil {
		if !errs.Is(err, kvstore.ErrNotFound) {
			logger.Warn("failed to read language preference", "error", err)
		}
		return p
	}
	// plain "en" is accepted as well as the JSON string form
	raw := strings.TrimSpace(string(data))
	var decoded string
	if err := json.Unmarshal(data, &decoded); err == nil {
		raw = decoded
	}
	lang, err := ParseLanguage(raw)
	if err != nil {
		logger.Warn("ignoring stored language preference", "error", err)
		return p
	}
	p.lang = lang
	return p
}

func (p *Preferences) Language() Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

func (p *Preferences) SetLanguage(ctx context.Context, lang Language) error {
	if _, err := ParseLanguage(string(lang)); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lang = lang
	data, err := json.Marshal(string(lang))
	if err != nil {
		return errs.Wrap(err, "encode language")
	}
	if err := p.store.Set(ctx, kvstore.KeyLanguage, data); err != nil {
		p.logger.Error("failed to persist language preference", "error", err)
		return errs.Wrap(err, "persist language")
	}
	return nil
}
