package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tuiter/internal/models"

	"gorm.io/gorm"
)

// TuitService covers plain tuit CRUD. Poll-specific operations live in
// PollService; reactions in ReactionService.
type TuitService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTuitService(db *gorm.DB, timeout time.Duration) *TuitService {
	return &TuitService{db: db, timeout: timeout}
}

func (s *TuitService) CreateTuit(ctx context.Context, userID uint, text string) (models.Tuit, error) {
	const op = "services.CreateTuit"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var tuit models.Tuit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err, ErrUserNotFound)
		}
		tuit = models.Tuit{UserID: userID, Tuit: strings.TrimSpace(text)}
		if err := tx.Create(&tuit).Error; err != nil {
			return translate(err, ErrUserNotFound)
		}
		tuit.User = user
		return nil
	})
	if err != nil {
		return models.Tuit{}, fmt.Errorf("%s: %w", op, err)
	}
	return tuit, nil
}

func (s *TuitService) FindAllTuits(ctx context.Context, expand Expand) ([]models.Tuit, error) {
	const op = "services.FindAllTuits"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.db.WithContext(ctx)
	if expand.Author {
		q = q.Preload("User")
	}
	var tuits []models.Tuit
	if err := q.Order("posted_on DESC").Find(&tuits).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrTuitNotFound))
	}
	return tuits, nil
}

func (s *TuitService) FindTuitsByUser(ctx context.Context, userID uint, expand Expand) ([]models.Tuit, error) {
	const op = "services.FindTuitsByUser"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.db.WithContext(ctx)
	if expand.Author {
		q = q.Preload("User")
	}
	var tuits []models.Tuit
	if err := q.Where("user_id = ?", userID).Order("posted_on DESC").Find(&tuits).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrTuitNotFound))
	}
	return tuits, nil
}

func (s *TuitService) FindTuitByID(ctx context.Context, tuitID uint, expand Expand) (models.Tuit, error) {
	const op = "services.FindTuitByID"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.db.WithContext(ctx)
	if expand.Author {
		q = q.Preload("User")
	}
	var tuit models.Tuit
	if err := q.First(&tuit, tuitID).Error; err != nil {
		return models.Tuit{}, fmt.Errorf("%s: %w", op, translate(err, ErrTuitNotFound))
	}
	return tuit, nil
}

// DeleteTuit removes a tuit together with every relation row that references
// it, in one transaction. Works for plain tuits and polls alike.
func (s *TuitService) DeleteTuit(ctx context.Context, tuitID uint) error {
	const op = "services.DeleteTuit"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		for _, rel := range []interface{}{&models.Vote{}, &models.PollOption{}, &models.Like{}, &models.Dislike{}} {
			if err := tx.Where("tuit_id = ?", tuitID).Delete(rel).Error; err != nil {
				return translate(err, ErrTuitNotFound)
			}
		}
		return translate(tx.Delete(&tuit).Error, ErrTuitNotFound)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
