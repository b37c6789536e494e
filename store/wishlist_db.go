package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

type dbWishlists struct {
	db *gorm.DB
}

func (s *dbWishlists) Get(ctx context.Context, owner string) ([]models.WishlistLine, error) {
	var lines []models.WishlistLine
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("added_at").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *dbWishlists) Add(ctx context.Context, owner string, line models.WishlistLine) (bool, error) {
	line.OwnerID = owner
	line.AddedAt = time.Now()

	// The (owner, product) unique index makes a duplicate add a no-op.
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&line)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *dbWishlists) Remove(ctx context.Context, owner, productID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", owner, productID).
		Delete(&models.WishlistLine{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *dbWishlists) Contains(ctx context.Context, owner, productID string) (bool, error) {
	var line models.WishlistLine
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", owner, productID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
