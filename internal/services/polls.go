package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tuiter/internal/models"

	"gorm.io/gorm"
)

// PollService manages poll tuits and their options. A poll is a tuit flagged
// is_poll; its options reference it by tuit_id only, so creating an option is
// one insert with no parent-list update to fail halfway.
type PollService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewPollService(db *gorm.DB, timeout time.Duration) *PollService {
	return &PollService{db: db, timeout: timeout}
}

// CreatePollInput is the payload for a new poll. Option texts may be supplied
// inline; they are created in the same transaction as the tuit.
type CreatePollInput struct {
	Tuit       string   `json:"tuit" binding:"required"`
	IsPollOpen bool     `json:"is_poll_open"`
	Options    []string `json:"options"`
}

// UpdatePollInput carries overwrite semantics: nil fields are left alone,
// non-nil fields replace the stored value wholesale.
type UpdatePollInput struct {
	Tuit       *string `json:"tuit"`
	IsPollOpen *bool   `json:"is_poll_open"`
}

func (s *PollService) CreatePoll(ctx context.Context, userID uint, in CreatePollInput) (models.Tuit, error) {
	const op = "services.CreatePoll"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var tuit models.Tuit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err, ErrUserNotFound)
		}

		tuit = models.Tuit{
			UserID:     userID,
			Tuit:       strings.TrimSpace(in.Tuit),
			IsPoll:     true,
			IsPollOpen: in.IsPollOpen,
		}
		if err := tx.Create(&tuit).Error; err != nil {
			return translate(err, ErrUserNotFound)
		}

		for _, text := range in.Options {
			option := models.PollOption{TuitID: tuit.ID, OptionText: text}
			if err := tx.Create(&option).Error; err != nil {
				return translate(err, ErrPollNotFound)
			}
			tuit.PollOptions = append(tuit.PollOptions, option)
		}
		tuit.User = user
		return nil
	})
	if err != nil {
		return models.Tuit{}, fmt.Errorf("%s: %w", op, err)
	}
	return tuit, nil
}

// CreatePollOption adds an option to an existing poll.
func (s *PollService) CreatePollOption(ctx context.Context, tuitID uint, optionText string) (models.PollOption, error) {
	const op = "services.CreatePollOption"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var option models.PollOption
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		if !tuit.IsPoll {
			return ErrPollNotFound
		}
		option = models.PollOption{TuitID: tuitID, OptionText: strings.TrimSpace(optionText)}
		if err := tx.Create(&option).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		return nil
	})
	if err != nil {
		return models.PollOption{}, fmt.Errorf("%s: %w", op, err)
	}
	return option, nil
}

// FindAllPolls lists every poll, newest first.
func (s *PollService) FindAllPolls(ctx context.Context, expand Expand) ([]models.Tuit, error) {
	const op = "services.FindAllPolls"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.expandQuery(s.db.WithContext(ctx), expand)
	var polls []models.Tuit
	if err := q.Where("is_poll = ?", true).Order("posted_on DESC").Find(&polls).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrPollNotFound))
	}
	if err := s.fillPollStats(ctx, polls, expand); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return polls, nil
}

// FindPollsByUser lists a user's polls, newest first.
func (s *PollService) FindPollsByUser(ctx context.Context, userID uint, expand Expand) ([]models.Tuit, error) {
	const op = "services.FindPollsByUser"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.expandQuery(s.db.WithContext(ctx), expand)
	var polls []models.Tuit
	err := q.Where("user_id = ? AND is_poll = ?", userID, true).
		Order("posted_on DESC").
		Find(&polls).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrPollNotFound))
	}
	if err := s.fillPollStats(ctx, polls, expand); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return polls, nil
}

// FindPollByID resolves a single poll. A tuit that exists but is not a poll
// reports the same way as a missing one.
func (s *PollService) FindPollByID(ctx context.Context, tuitID uint, expand Expand) (models.Tuit, error) {
	const op = "services.FindPollByID"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.expandQuery(s.db.WithContext(ctx), expand)
	var poll models.Tuit
	if err := q.First(&poll, tuitID).Error; err != nil {
		return models.Tuit{}, fmt.Errorf("%s: %w", op, translate(err, ErrPollNotFound))
	}
	if !poll.IsPoll {
		return models.Tuit{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
	}
	polls := []models.Tuit{poll}
	if err := s.fillPollStats(ctx, polls, expand); err != nil {
		return models.Tuit{}, fmt.Errorf("%s: %w", op, err)
	}
	return polls[0], nil
}

// UpdatePoll overwrites the provided fields on a poll tuit.
func (s *PollService) UpdatePoll(ctx context.Context, tuitID uint, in UpdatePollInput) error {
	const op = "services.UpdatePoll"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		if !tuit.IsPoll {
			return ErrPollNotFound
		}

		patch := map[string]interface{}{}
		if in.Tuit != nil {
			patch["tuit"] = strings.TrimSpace(*in.Tuit)
		}
		if in.IsPollOpen != nil {
			patch["is_poll_open"] = *in.IsPollOpen
		}
		if len(patch) == 0 {
			return nil
		}
		return translate(tx.Model(&tuit).Updates(patch).Error, ErrPollNotFound)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeletePoll removes the poll, its options, and all votes on it as one
// cascading transaction, so no option or vote can outlive its poll.
func (s *PollService) DeletePoll(ctx context.Context, tuitID uint) error {
	const op = "services.DeletePoll"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		if !tuit.IsPoll {
			return ErrPollNotFound
		}
		if err := tx.Where("tuit_id = ?", tuitID).Delete(&models.Vote{}).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		if err := tx.Where("tuit_id = ?", tuitID).Delete(&models.PollOption{}).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		return translate(tx.Delete(&tuit).Error, ErrPollNotFound)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *PollService) expandQuery(q *gorm.DB, expand Expand) *gorm.DB {
	if expand.Author {
		q = q.Preload("User")
	}
	if expand.Options {
		q = q.Preload("PollOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		})
	}
	return q
}

// fillPollStats derives each poll's stats from its options and the votes
// table. num_voted already equals the per-option vote count, so only the
// participant count needs a query.
func (s *PollService) fillPollStats(ctx context.Context, polls []models.Tuit, expand Expand) error {
	if !expand.Stats || !expand.Options {
		return nil
	}
	for i := range polls {
		votes := make([]int, 0, len(polls[i].PollOptions))
		for _, option := range polls[i].PollOptions {
			votes = append(votes, option.NumVoted)
		}
		var participants int64
		err := s.db.WithContext(ctx).Model(&models.Vote{}).
			Where("tuit_id = ?", polls[i].ID).
			Distinct("user_id").
			Count(&participants).Error
		if err != nil {
			return translate(err, ErrPollNotFound)
		}
		polls[i].PollStats = &models.PollStats{
			Votes:           votes,
			NumParticipated: int(participants),
		}
	}
	return nil
}
