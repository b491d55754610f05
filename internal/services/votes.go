package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tuiter/internal/models"

	"gorm.io/gorm"
)

// ErrPollClosed rejects votes on a poll whose is_poll_open flag is off.
var ErrPollClosed = errors.New("poll is closed")

// VoteService records, retracts, and changes votes, keeping every option's
// num_voted equal to the count of vote rows pointing at it. Same discipline
// as ReactionService: one transaction per mutation, counter recomputed from
// COUNT inside it.
type VoteService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewVoteService(db *gorm.DB, timeout time.Duration) *VoteService {
	return &VoteService{db: db, timeout: timeout}
}

// RecordVote stores a user's choice of option on a poll. A second vote by the
// same user on the same poll is a conflict; changing a choice goes through
// RetractVote+RecordVote or ChangeVote.
func (s *VoteService) RecordVote(ctx context.Context, userID, tuitID, optionID uint) (models.Vote, error) {
	const op = "services.RecordVote"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var vote models.Vote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tuit models.Tuit
		if err := tx.First(&tuit, tuitID).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		if !tuit.IsPoll {
			return ErrPollNotFound
		}
		if !tuit.IsPollOpen {
			return ErrPollClosed
		}

		var option models.PollOption
		if err := tx.First(&option, optionID).Error; err != nil {
			return translate(err, ErrOptionNotFound)
		}
		if option.TuitID != tuitID {
			return ErrOptionNotFound
		}

		vote = models.Vote{UserID: userID, TuitID: tuitID, PollOptionID: optionID}
		if err := tx.Create(&vote).Error; err != nil {
			return translate(err, ErrPollNotFound)
		}
		return recountOptionVotes(tx, optionID)
	})
	if err != nil {
		return models.Vote{}, fmt.Errorf("%s: %w", op, err)
	}
	return vote, nil
}

// RetractVote removes a user's vote on a poll and settles the option counter.
func (s *VoteService) RetractVote(ctx context.Context, userID, tuitID uint) error {
	const op = "services.RetractVote"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.Vote
		if err := tx.Where("user_id = ? AND tuit_id = ?", userID, tuitID).First(&vote).Error; err != nil {
			return translate(err, ErrVoteNotFound)
		}
		if err := tx.Delete(&vote).Error; err != nil {
			return translate(err, ErrVoteNotFound)
		}
		return recountOptionVotes(tx, vote.PollOptionID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ChangeVote moves an existing vote to another option of the same poll and
// settles both option counters in the same transaction. The updated vote is
// returned so callers know which poll was touched.
func (s *VoteService) ChangeVote(ctx context.Context, voteID, newOptionID uint) (models.Vote, error) {
	const op = "services.ChangeVote"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var vote models.Vote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vote, voteID).Error; err != nil {
			return translate(err, ErrVoteNotFound)
		}
		if vote.PollOptionID == newOptionID {
			return nil
		}

		var option models.PollOption
		if err := tx.First(&option, newOptionID).Error; err != nil {
			return translate(err, ErrOptionNotFound)
		}
		if option.TuitID != vote.TuitID {
			return ErrOptionNotFound
		}

		oldOptionID := vote.PollOptionID
		if err := tx.Model(&vote).UpdateColumn("poll_option_id", newOptionID).Error; err != nil {
			return translate(err, ErrVoteNotFound)
		}
		if err := recountOptionVotes(tx, oldOptionID); err != nil {
			return err
		}
		return recountOptionVotes(tx, newOptionID)
	})
	if err != nil {
		return models.Vote{}, fmt.Errorf("%s: %w", op, err)
	}
	return vote, nil
}

// FindVotesOnPoll lists every vote on a poll with voters resolved.
func (s *VoteService) FindVotesOnPoll(ctx context.Context, tuitID uint, expand Expand) ([]models.Vote, error) {
	const op = "services.FindVotesOnPoll"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.db.WithContext(ctx)
	if expand.Author {
		q = q.Preload("VotedBy")
	}
	if expand.Options {
		q = q.Preload("VotedOption")
	}
	var votes []models.Vote
	if err := q.Where("tuit_id = ?", tuitID).Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err, ErrPollNotFound))
	}
	return votes, nil
}

// FindUserVoteOnPoll resolves a single user's vote on a poll, option
// resolved. ErrVoteNotFound when the user has not voted.
func (s *VoteService) FindUserVoteOnPoll(ctx context.Context, tuitID, userID uint, expand Expand) (models.Vote, error) {
	const op = "services.FindUserVoteOnPoll"

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	q := s.db.WithContext(ctx)
	if expand.Options {
		q = q.Preload("VotedOption")
	}
	var vote models.Vote
	if err := q.Where("tuit_id = ? AND user_id = ?", tuitID, userID).First(&vote).Error; err != nil {
		return models.Vote{}, fmt.Errorf("%s: %w", op, translate(err, ErrVoteNotFound))
	}
	return vote, nil
}

// recountOptionVotes writes COUNT(votes) into the option's num_voted inside
// the caller's transaction.
func recountOptionVotes(tx *gorm.DB, optionID uint) error {
	var count int64
	if err := tx.Model(&models.Vote{}).Where("poll_option_id = ?", optionID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.PollOption{}).Where("id = ?", optionID).UpdateColumn("num_voted", count).Error
}
