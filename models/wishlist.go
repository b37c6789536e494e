package models

import "time"

// WishlistLine is one saved product. Unlike a cart line it carries no
// quantity: the wishlist is a set keyed by (owner, product).
type WishlistLine struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	OwnerID   string    `gorm:"index:idx_wishlist_owner_product,unique" json:"-"`
	ProductID string    `gorm:"index:idx_wishlist_owner_product,unique" json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	AddedAt   time.Time `json:"added_at"`
}
