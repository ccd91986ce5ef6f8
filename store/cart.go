// Package store holds the in-memory shopping carts. There is exactly one
// Store per process; it is injected into the controllers that consume it and
// constructed fresh in tests. Carts are not persisted: they live for the
// lifetime of the process and are cleared when an order is placed.
package store

import (
	"errors"
	"sync"

	"canteen/models"
)

var (
	ErrMissingID       = errors.New("cart item must have an id")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

const subscriberBuffer = 16

// Store keeps one ordered line collection per user. All mutations go through
// the methods below; readers always observe a consistent snapshot and totals
// are recomputed on every read, never stored.
type Store struct {
	mu    sync.RWMutex
	carts map[int][]models.CartLine
	subs  map[int]map[chan models.CartSnapshot]struct{}
}

func New() *Store {
	return &Store{
		carts: make(map[int][]models.CartLine),
		subs:  make(map[int]map[chan models.CartSnapshot]struct{}),
	}
}

// AddItem appends a new line or, when a line with the same item id already
// exists, increments its quantity. Invalid input is rejected up front so the
// cart can never hold a line with a non-positive quantity.
func (s *Store) AddItem(userID int, item models.CartLine, quantity int) error {
	if item.ID <= 0 {
		return ErrMissingID
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	merged := false
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		lines = append(lines, item)
	}
	s.carts[userID] = lines

	s.notifyLocked(userID)
	return nil
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less removes
// the line entirely. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(userID, itemID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = quantity
		}
		s.notifyLocked(userID)
		return
	}
}

// RemoveItem deletes the line with the given id. Unknown ids are a no-op.
func (s *Store) RemoveItem(userID, itemID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ID == itemID {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			s.notifyLocked(userID)
			return
		}
	}
}

// Clear empties the user's cart unconditionally.
func (s *Store) Clear(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	s.notifyLocked(userID)
}

// Snapshot returns a copy of the user's lines in insertion order together
// with the derived item count and total amount.
func (s *Store) Snapshot(userID int) models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(userID)
}

// TotalAmount is the sum of price times quantity over all lines.
func (s *Store) TotalAmount(userID int) float64 {
	return s.Snapshot(userID).TotalAmount
}

// Subscribe registers a listener for the user's cart. The current snapshot is
// delivered first, then one snapshot per mutation. The returned func removes
// the subscription and closes the channel.
func (s *Store) Subscribe(userID int) (<-chan models.CartSnapshot, func()) {
	ch := make(chan models.CartSnapshot, subscriberBuffer)

	s.mu.Lock()
	if s.subs[userID] == nil {
		s.subs[userID] = make(map[chan models.CartSnapshot]struct{})
	}
	s.subs[userID][ch] = struct{}{}
	ch <- s.snapshotLocked(userID)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[userID][ch]; !ok {
			return
		}
		delete(s.subs[userID], ch)
		if len(s.subs[userID]) == 0 {
			delete(s.subs, userID)
		}
		close(ch)
	}
	return ch, cancel
}

func (s *Store) snapshotLocked(userID int) models.CartSnapshot {
	lines := s.carts[userID]

	snap := models.CartSnapshot{Items: make([]models.CartLine, len(lines))}
	copy(snap.Items, lines)
	for _, line := range lines {
		snap.ItemCount += line.Quantity
		snap.TotalAmount += line.Price * float64(line.Quantity)
	}
	return snap
}

// notifyLocked fans the fresh snapshot out to subscribers. Sends never block
// a mutation: a subscriber that stopped draining loses intermediate snapshots
// and can recover the authoritative state through Snapshot.
func (s *Store) notifyLocked(userID int) {
	subs := s.subs[userID]
	if len(subs) == 0 {
		return
	}
	snap := s.snapshotLocked(userID)
	for ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
