// Package history keeps the most recent decoded payloads, newest first,
// optionally persisted to a CBOR snapshot file.
package history

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/danmuck/thaiqr/internal/protocol"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const DefaultLimit = 50

var ErrUnknownSource = errors.New("history: unknown source")

// Source is where a payload was read from.
type Source string

const (
	SourceCamera Source = "camera"
	SourceFile   Source = "file"
	SourceText   Source = "text"
)

// ParseSource validates a source name. Empty means text.
func ParseSource(raw string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SourceText:
		return SourceText, nil
	case SourceCamera:
		return SourceCamera, nil
	case SourceFile:
		return SourceFile, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, raw)
	}
}

// Item is one history entry.
type Item struct {
	ID        string        `json:"id" cbor:"id"`
	Data      protocol.Data `json:"data" cbor:"data"`
	Timestamp time.Time     `json:"timestamp" cbor:"timestamp"`
	Source    Source        `json:"source" cbor:"source"`
}

// Store is a capped, newest-first list of items. It is safe for concurrent
// use.
type Store struct {
	mu    sync.RWMutex
	items []Item
	limit int
	path  string

	now   func() time.Time
	newID func() string
}

// NewStore returns an in-memory store. A non-positive limit means
// DefaultLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		items: make([]Item, 0, limit),
		limit: limit,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Open returns a store persisted at path, seeded from an existing snapshot.
// An unreadable snapshot is logged and the store starts empty.
func Open(path string, limit int) *Store {
	s := NewStore(limit)
	s.path = path
	items, err := loadSnapshot(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("history load failed")
		return s
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	s.items = append(s.items, items...)
	return s
}

// Add records data at the front of the list and evicts the oldest entries
// beyond the limit.
func (s *Store) Add(source Source, data protocol.Data) Item {
	item := Item{
		ID:        s.newID(),
		Data:      data,
		Timestamp: s.now(),
		Source:    source,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, 0, min(len(s.items)+1, s.limit))
	items = append(items, item)
	for _, existing := range s.items {
		if len(items) == s.limit {
			break
		}
		items = append(items, existing)
	}
	s.items = items
	s.persistLocked()
	return item
}

// Remove deletes the item with id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// Clear drops every item and deletes the snapshot.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]Item, 0, s.limit)
	if s.path == "" {
		return
	}
	if err := removeSnapshot(s.path); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("history clear failed")
	}
}

// List returns a copy of the items, newest first.
func (s *Store) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Limit() int {
	return s.limit
}

func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	if err := saveSnapshot(s.path, s.items); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("history save failed")
	}
}
