package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tuiter/internal/models"

	"gorm.io/gorm"
)

// ReactionService flips like/dislike relations and keeps the tuit's stored
// counters equal to the relation row counts. Every mutation runs in a single
// transaction that recomputes the counter from a COUNT over the relation
// table, so the counter cannot drift even when a step is replayed.
type ReactionService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewReactionService(db *gorm.DB, timeout time.Duration) *ReactionService {
	return &ReactionService{db: db, timeout: timeout}
}

// --- dislikes ---

// Dislike records that a user dislikes a tuit. Second dislike by the same
// user is a conflict, not a double count.
func (s *ReactionService) Dislike(ctx context.Context, userID, tuitID uint) (models.Dislike, error) {
	const op = "services.Dislike"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var dislike models.Dislike
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Tuit{}, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		dislike = models.Dislike{UserID: userID, TuitID: tuitID}
		if err := tx.Create(&dislike).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		return recountDislikes(tx, tuitID)
	})
	if err != nil {
		return models.Dislike{}, fmt.Errorf("%s: %w", op, err)
	}
	return dislike, nil
}

// UndoDislike removes a user's dislike of a tuit.
func (s *ReactionService) UndoDislike(ctx context.Context, userID, tuitID uint) error {
	const op = "services.UndoDislike"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Dislike
		if err := tx.Where("user_id = ? AND tuit_id = ?", userID, tuitID).First(&existing).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		return recountDislikes(tx, tuitID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ToggleDislike flips the dislike relation for (user, tuit) and returns the
// updated stats. A duplicate-key from a racing toggle of the same pair is
// retried once; the recompute makes the replay safe.
func (s *ReactionService) ToggleDislike(ctx context.Context, userID, tuitID uint) (models.Stats, error) {
	const op = "services.ToggleDislike"

	stats, err := s.toggleDislikeOnce(ctx, userID, tuitID)
	if errors.Is(err, ErrConflict) {
		stats, err = s.toggleDislikeOnce(ctx, userID, tuitID)
	}
	if err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (s *ReactionService) toggleDislikeOnce(ctx context.Context, userID, tuitID uint) (models.Stats, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var stats models.Stats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}

		// 检查是否已踩
		var existing models.Dislike
		err := tx.Where("user_id = ? AND tuit_id = ?", userID, tuitID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return translate(err, ErrTuitNotFound)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			dislike := models.Dislike{UserID: userID, TuitID: tuitID}
			if err := tx.Create(&dislike).Error; err != nil {
				return translate(err, ErrTuitNotFound)
			}
		default:
			return translate(err, ErrTuitNotFound)
		}

		if err := recountDislikes(tx, tuitID); err != nil {
			return err
		}
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		stats = tuit.Stats
		return nil
	})
	return stats, translate(err, ErrTuitNotFound)
}

// FindTuitsDislikedByUser returns the tuits a user disliked, author resolved.
func (s *ReactionService) FindTuitsDislikedByUser(ctx context.Context, userID uint, expand Expand) ([]models.Tuit, error) {
	const op = "services.FindTuitsDislikedByUser"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var dislikes []models.Dislike
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&dislikes).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrUserNotFound))
	}
	tuits, err := tuitsByIDs(s.db.WithContext(ctx), tuitIDsOfDislikes(dislikes), expand)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tuits, nil
}

// FindUsersThatDislikedTuit returns the users behind every dislike on a tuit.
func (s *ReactionService) FindUsersThatDislikedTuit(ctx context.Context, tuitID uint) ([]models.User, error) {
	const op = "services.FindUsersThatDislikedTuit"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN dislikes ON dislikes.user_id = users.id").
		Where("dislikes.tuit_id = ?", tuitID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrTuitNotFound))
	}
	return users, nil
}

// --- likes: identical shape, own relation table and counter column ---

func (s *ReactionService) Like(ctx context.Context, userID, tuitID uint) (models.Like, error) {
	const op = "services.Like"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var like models.Like
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Tuit{}, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		like = models.Like{UserID: userID, TuitID: tuitID}
		if err := tx.Create(&like).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		return recountLikes(tx, tuitID)
	})
	if err != nil {
		return models.Like{}, fmt.Errorf("%s: %w", op, err)
	}
	return like, nil
}

func (s *ReactionService) UndoLike(ctx context.Context, userID, tuitID uint) error {
	const op = "services.UndoLike"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		if err := tx.Where("user_id = ? AND tuit_id = ?", userID, tuitID).First(&existing).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		return recountLikes(tx, tuitID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *ReactionService) ToggleLike(ctx context.Context, userID, tuitID uint) (models.Stats, error) {
	const op = "services.ToggleLike"

	stats, err := s.toggleLikeOnce(ctx, userID, tuitID)
	if errors.Is(err, ErrConflict) {
		stats, err = s.toggleLikeOnce(ctx, userID, tuitID)
	}
	if err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (s *ReactionService) toggleLikeOnce(ctx context.Context, userID, tuitID uint) (models.Stats, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var stats models.Stats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND tuit_id = ?", userID, tuitID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return translate(err, ErrTuitNotFound)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{UserID: userID, TuitID: tuitID}
			if err := tx.Create(&like).Error; err != nil {
				return translate(err, ErrTuitNotFound)
			}
		default:
			return translate(err, ErrTuitNotFound)
		}

		if err := recountLikes(tx, tuitID); err != nil {
			return err
		}
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrTuitNotFound)
		}
		stats = tuit.Stats
		return nil
	})
	return stats, translate(err, ErrTuitNotFound)
}

func (s *ReactionService) FindTuitsLikedByUser(ctx context.Context, userID uint, expand Expand) ([]models.Tuit, error) {
	const op = "services.FindTuitsLikedByUser"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var likes []models.Like
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrUserNotFound))
	}
	ids := make([]uint, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.TuitID)
	}
	tuits, err := tuitsByIDs(s.db.WithContext(ctx), ids, expand)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tuits, nil
}

func (s *ReactionService) FindUsersThatLikedTuit(ctx context.Context, tuitID uint) ([]models.User, error) {
	const op = "services.FindUsersThatLikedTuit"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.tuit_id = ?", tuitID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrTuitNotFound))
	}
	return users, nil
}

// --- shared helpers ---

// recountDislikes writes COUNT(dislikes) into the tuit's stats column inside
// the caller's transaction.
func recountDislikes(tx *gorm.DB, tuitID uint) error {
	var count int64
	if err := tx.Model(&models.Dislike{}).Where("tuit_id = ?", tuitID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Tuit{}).Where("id = ?", tuitID).UpdateColumn("stat_dislikes", count).Error
}

func recountLikes(tx *gorm.DB, tuitID uint) error {
	var count int64
	if err := tx.Model(&models.Like{}).Where("tuit_id = ?", tuitID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Tuit{}).Where("id = ?", tuitID).UpdateColumn("stat_likes", count).Error
}

func tuitIDsOfDislikes(dislikes []models.Dislike) []uint {
	ids := make([]uint, 0, len(dislikes))
	for _, d := range dislikes {
		ids = append(ids, d.TuitID)
	}
	return ids
}

// tuitsByIDs loads tuits by id, dropping ids that no longer resolve. Order
// follows the ids slice so callers keep reaction order.
func tuitsByIDs(gdb *gorm.DB, ids []uint, expand Expand) ([]models.Tuit, error) {
	if len(ids) == 0 {
		return []models.Tuit{}, nil
	}
	q := gdb
	if expand.Author {
		q = q.Preload("User")
	}
	var tuits []models.Tuit
	if err := q.Where("id IN ?", ids).Find(&tuits).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Tuit, len(tuits))
	for _, t := range tuits {
		byID[t.ID] = t
	}
	ordered := make([]models.Tuit, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}
