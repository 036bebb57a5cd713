// Package cache memoizes translated message text per reader language.
//
// Translating a conversation on every read costs one detect and one translate
// call per inbound message. When TRANSLATION_CACHE_TTL is set, the inbox
// remembers each successful translation for (message id, language) and
// serves it until the TTL runs out. Messages are immutable, so an entry can
// only go stale through expiry, never through an edit.
//
// The memo stores translations only. A result equal to the original text is
// either a no-op translation or a backend failure that fell back to the
// original; storing it would pin the fallback until expiry, so Remember
// ignores it and the next read asks the backend again.
package cache

import (
	"sync"
	"time"
)

type memoKey struct {
	messageID string
	lang      string
}

type memoEntry struct {
	text      string
	expiresAt time.Time
}

// TranslationMemo is safe for concurrent use. A nil *TranslationMemo is a
// valid, disabled memo: Lookup misses and Remember does nothing.
type TranslationMemo struct {
	mu      sync.Mutex
	entries map[memoKey]memoEntry
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTranslationMemo creates a memo whose entries live for ttl and starts a
// sweeper that drops expired entries every sweepInterval. Call Close to stop
// the sweeper.
func NewTranslationMemo(ttl, sweepInterval time.Duration) *TranslationMemo {
	m := &TranslationMemo{
		entries: make(map[memoKey]memoEntry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stop:
				return
			}
		}
	}()

	return m
}

// Lookup returns the remembered translation of messageID into lang.
func (m *TranslationMemo) Lookup(messageID, lang string) (string, bool) {
	if m == nil {
		return "", false
	}

	key := memoKey{messageID: messageID, lang: lang}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.text, true
}

// Remember stores translated as the text of messageID in lang, unless it is
// blank or equal to original. It reports whether anything was stored.
func (m *TranslationMemo) Remember(messageID, lang, original, translated string) bool {
	if m == nil || translated == "" || translated == original {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[memoKey{messageID: messageID, lang: lang}] = memoEntry{
		text:      translated,
		expiresAt: m.now().Add(m.ttl),
	}
	return true
}

// Len reports the number of entries, expired ones not yet swept included.
func (m *TranslationMemo) Len() int {
	if m == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the sweeper. Safe to call more than once and on nil.
func (m *TranslationMemo) Close() {
	if m == nil {
		return
	}
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *TranslationMemo) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}
