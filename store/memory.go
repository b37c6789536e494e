package store

import (
	"context"
	"sync"
	"time"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

// In-memory stores for dev mode (no DATABASE_URL) and tests. Same semantics
// as the Postgres stores, one mutex instead of row locks.

type memCarts struct {
	mu    sync.Mutex
	carts map[string][]models.CartLine
}

func newMemCarts() *memCarts {
	return &memCarts{carts: make(map[string][]models.CartLine)}
}

func (s *memCarts) Get(ctx context.Context, owner string) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.carts[owner]), nil
}

func (s *memCarts) Add(ctx context.Context, owner string, line models.CartLine) ([]models.CartLine, error) {
	if line.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	line.AddedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[owner] = models.MergeLine(s.carts[owner], line)
	return copyLines(s.carts[owner]), nil
}

func (s *memCarts) UpdateQuantity(ctx context.Context, owner, productID string, quantity int) ([]models.CartLine, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[owner]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			lines[i].AddedAt = time.Now()
			return copyLines(lines), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCarts) Remove(ctx context.Context, owner, productID string) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[owner]
	trimmed := models.RemoveLine(lines, productID)
	if len(trimmed) == len(lines) {
		return nil, ErrNotFound
	}
	s.carts[owner] = trimmed
	return copyLines(trimmed), nil
}

func (s *memCarts) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
	return nil
}

func copyLines(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

type memWishlists struct {
	mu    sync.Mutex
	lists map[string][]models.WishlistLine
}

func newMemWishlists() *memWishlists {
	return &memWishlists{lists: make(map[string][]models.WishlistLine)}
}

func (s *memWishlists) Get(ctx context.Context, owner string) ([]models.WishlistLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WishlistLine, len(s.lists[owner]))
	copy(out, s.lists[owner])
	return out, nil
}

func (s *memWishlists) Add(ctx context.Context, owner string, line models.WishlistLine) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lists[owner] {
		if l.ProductID == line.ProductID {
			return false, nil
		}
	}
	line.OwnerID = owner
	line.AddedAt = time.Now()
	s.lists[owner] = append(s.lists[owner], line)
	return true, nil
}

func (s *memWishlists) Remove(ctx context.Context, owner, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.lists[owner]
	for i, l := range lines {
		if l.ProductID == productID {
			s.lists[owner] = append(lines[:i], lines[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memWishlists) Contains(ctx context.Context, owner, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lists[owner] {
		if l.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*models.Session)}
}

func (s *memSessions) Ensure(ctx context.Context, id string) (*models.Session, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		session = &models.Session{ID: id, CreatedAt: now}
		s.sessions[id] = session
	}
	session.LastSeenAt = now
	session.ExpiresAt = now.Add(SessionTTL)
	cp := *session
	return &cp, nil
}
