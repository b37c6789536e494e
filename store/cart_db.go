package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

type dbCarts struct {
	db *gorm.DB
}

// lockCart loads (or creates) the owner's cart row under FOR UPDATE, so two
// tabs mutating the same cart serialize instead of clobbering each other the
// way concurrent localStorage writes did.
func lockCart(tx *gorm.DB, owner string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ?", owner).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{OwnerID: owner}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func linesOf(tx *gorm.DB, cartID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := tx.Where("cart_id = ?", cartID).Order("added_at").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *dbCarts) Get(ctx context.Context, owner string) ([]models.CartLine, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("owner_id = ?", owner).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *dbCarts) Add(ctx context.Context, owner string, line models.CartLine) ([]models.CartLine, error) {
	if line.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var out []models.CartLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, owner)
		if err != nil {
			return err
		}

		var existing models.CartLine
		err = tx.Where("cart_id = ? AND product_id = ?", cart.CartID, line.ProductID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			line.CartID = cart.CartID
			line.AddedAt = time.Now()
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing.Quantity += line.Quantity
			existing.AddedAt = time.Now()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}

		out, err = linesOf(tx, cart.CartID)
		return err
	})
	return out, err
}

func (s *dbCarts) UpdateQuantity(ctx context.Context, owner, productID string, quantity int) ([]models.CartLine, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var out []models.CartLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, owner)
		if err != nil {
			return err
		}

		var line models.CartLine
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		line.Quantity = quantity
		line.AddedAt = time.Now()
		if err := tx.Save(&line).Error; err != nil {
			return err
		}

		out, err = linesOf(tx, cart.CartID)
		return err
	})
	return out, err
}

func (s *dbCarts) Remove(ctx context.Context, owner, productID string) ([]models.CartLine, error) {
	var out []models.CartLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, owner)
		if err != nil {
			return err
		}

		result := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartLine{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		out, err = linesOf(tx, cart.CartID)
		return err
	})
	return out, err
}

func (s *dbCarts) Clear(ctx context.Context, owner string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, owner)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartLine{}).Error
	})
}
