package cart

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound is returned when removing an item that is not in the cart.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidItem is returned when an item has no meal name.
	ErrInvalidItem = errors.New("cart item needs a meal name")
)

// Item is one line of a cart.
type Item struct {
	ID       string    `json:"id"`
	Meal     string    `json:"meal"`
	Category string    `json:"category"`
	Price    int       `json:"price"`
	AddedAt  time.Time `json:"addedAt"`
}

// Summary is a cart with its computed totals.
type Summary struct {
	Items    []Item `json:"items"`
	Count    int    `json:"count"`
	Subtotal int    `json:"subtotal"`
	Tax      int    `json:"tax"`
	Total    int    `json:"total"`
}

// StoreConfig configures a Store.
type StoreConfig struct {
	TaxPercent float64
	SessionTTL time.Duration
}

type session struct {
	items    []Item
	lastSeen time.Time
}

// Store keeps one in-memory cart per session.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	pricer   *Pricer
	cfg      StoreConfig
	now      func() time.Time
	newID    func() string
}

// NewStore creates an empty Store.
func NewStore(pricer *Pricer, cfg StoreConfig) *Store {
	return &Store{
		sessions: make(map[string]*session),
		pricer:   pricer,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Add prices a meal and appends it to the session's cart.
func (s *Store) Add(sessionID, meal, category string) (Item, error) {
	meal = strings.TrimSpace(meal)
	if meal == "" {
		return Item{}, ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = now

	item := Item{
		ID:       s.newID(),
		Meal:     meal,
		Category: category,
		Price:    s.pricer.Price(meal, category),
		AddedAt:  now,
	}
	sess.items = append(sess.items, item)
	return item, nil
}

// Remove deletes the item with the given id from the session's cart.
func (s *Store) Remove(sessionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrItemNotFound
	}
	sess.lastSeen = now
	for i, it := range sess.items {
		if it.ID == itemID {
			sess.items = append(sess.items[:i], sess.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Summary returns the session's items and totals. An unknown session has
// an empty cart.
func (s *Store) Summary(sessionID string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	var items []Item
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastSeen = now
		items = make([]Item, len(sess.items))
		copy(items, sess.items)
	}
	return Summarize(items, s.cfg.TaxPercent)
}

// Sessions returns the number of live sessions.
func (s *Store) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(s.now())
	return len(s.sessions)
}

func (s *Store) evictLocked(now time.Time) {
	if s.cfg.SessionTTL <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.cfg.SessionTTL {
			delete(s.sessions, id)
		}
	}
}

// Summarize totals items. Tax is taxPercent of the subtotal rounded to the
// nearest rupee.
func Summarize(items []Item, taxPercent float64) Summary {
	if items == nil {
		items = []Item{}
	}
	subtotal := 0
	for _, it := range items {
		subtotal += it.Price
	}
	tax := int(math.Round(float64(subtotal) * taxPercent / 100))
	return Summary{
		Items:    items,
		Count:    len(items),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
