package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

type dbSessions struct {
	db *gorm.DB
}

func (s *dbSessions) Ensure(ctx context.Context, id string) (*models.Session, error) {
	now := time.Now()

	var session models.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.Session{
			ID:         id,
			LastSeenAt: now,
			ExpiresAt:  now.Add(SessionTTL),
		}
		if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}
	if err != nil {
		return nil, err
	}

	session.LastSeenAt = now
	session.ExpiresAt = now.Add(SessionTTL)
	if err := s.db.WithContext(ctx).Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
