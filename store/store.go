// Package store owns the state the original storefront kept in the
// browser's localStorage: carts, wishlists, and session records, keyed by
// the anonymous session id (or user id). Backed by Postgres in production
// and by an in-memory map in dev mode, like the shop's early prototype.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotFound        = errors.New("not found")
)

// SessionTTL is how long an anonymous session stays valid without activity.
const SessionTTL = 30 * 24 * time.Hour

// Carts mutates one owner's cart. Every mutation returns the resulting
// lines so callers render from the store, never from stale UI state.
type Carts interface {
	Get(ctx context.Context, owner string) ([]models.CartLine, error)
	// Add merges by product id: an existing line gains quantity, a new
	// product appends a line.
	Add(ctx context.Context, owner string, line models.CartLine) ([]models.CartLine, error)
	// UpdateQuantity sets an existing line's quantity outright.
	UpdateQuantity(ctx context.Context, owner, productID string, quantity int) ([]models.CartLine, error)
	Remove(ctx context.Context, owner, productID string) ([]models.CartLine, error)
	Clear(ctx context.Context, owner string) error
}

// Wishlists is a per-owner product set: add-if-absent, remove-by-id.
type Wishlists interface {
	Get(ctx context.Context, owner string) ([]models.WishlistLine, error)
	// Add reports false when the product was already saved.
	Add(ctx context.Context, owner string, line models.WishlistLine) (bool, error)
	Remove(ctx context.Context, owner, productID string) (bool, error)
	Contains(ctx context.Context, owner, productID string) (bool, error)
}

// Sessions persists the gateway-minted anonymous ids.
type Sessions interface {
	// Ensure creates the session on first contact and refreshes its
	// last-seen time afterwards.
	Ensure(ctx context.Context, id string) (*models.Session, error)
}

// Stores bundles the three stores behind one wiring point.
type Stores struct {
	Carts     Carts
	Wishlists Wishlists
	Sessions  Sessions
}

// NewDB returns Postgres-backed stores.
func NewDB(db *gorm.DB) *Stores {
	return &Stores{
		Carts:     &dbCarts{db: db},
		Wishlists: &dbWishlists{db: db},
		Sessions:  &dbSessions{db: db},
	}
}

// NewMemory returns map-backed stores for dev mode and tests.
func NewMemory() *Stores {
	return &Stores{
		Carts:     newMemCarts(),
		Wishlists: newMemWishlists(),
		Sessions:  newMemSessions(),
	}
}
