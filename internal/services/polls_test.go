package services

import (
	"context"
	"testing"

	"tuiter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePollWithInlineOptions(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)

	owner := seedUser(t, gdb, "owner")

	poll, err := svc.CreatePoll(context.Background(), owner.ID, CreatePollInput{
		Tuit:       "  best editor?  ",
		IsPollOpen: true,
		Options:    []string{"vim", "emacs"},
	})
	require.NoError(t, err)
	assert.True(t, poll.IsPoll)
	assert.True(t, poll.IsPollOpen)
	assert.Equal(t, "best editor?", poll.Tuit)
	require.Len(t, poll.PollOptions, 2)
	assert.Equal(t, "owner", poll.User.Username)

	assert.EqualValues(t, 2, countRows(t, gdb, &models.PollOption{}, "tuit_id = ?", poll.ID))
}

func TestCreatePollUnknownUser(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)

	_, err := svc.CreatePoll(context.Background(), 42, CreatePollInput{Tuit: "poll"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreatePollOption(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	poll, _ := seedPoll(t, gdb, owner.ID, "poll", "a")

	option, err := svc.CreatePollOption(ctx, poll.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, poll.ID, option.TuitID)
	assert.Equal(t, "b", option.OptionText)
	assert.Equal(t, 0, option.NumVoted)

	// new option shows up under the poll
	stored, err := svc.FindPollByID(ctx, poll.ID, ExpandAll)
	require.NoError(t, err)
	require.Len(t, stored.PollOptions, 2)
	assert.Equal(t, "b", stored.PollOptions[1].OptionText)
}

func TestCreatePollOptionOnPlainTuit(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)

	owner := seedUser(t, gdb, "owner")
	tuit := seedTuit(t, gdb, owner.ID, "not a poll")

	_, err := svc.CreatePollOption(context.Background(), tuit.ID, "a")
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestFindPollByIDNotAPoll(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)

	owner := seedUser(t, gdb, "owner")
	tuit := seedTuit(t, gdb, owner.ID, "plain")

	_, err := svc.FindPollByID(context.Background(), tuit.ID, ExpandAll)
	assert.ErrorIs(t, err, ErrPollNotFound)

	_, err = svc.FindPollByID(context.Background(), 999, ExpandAll)
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestFindAllPollsSkipsPlainTuits(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)

	owner := seedUser(t, gdb, "owner")
	seedTuit(t, gdb, owner.ID, "plain")
	poll, _ := seedPoll(t, gdb, owner.ID, "poll", "a")

	polls, err := svc.FindAllPolls(context.Background(), ExpandAll)
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, poll.ID, polls[0].ID)
}

func TestUpdatePollOverwrites(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewPollService(gdb, testTimeout)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	poll, _ := seedPoll(t, gdb, owner.ID, "old text", "a")

	text := "new text"
	closed := false
	require.NoError(t, svc.UpdatePoll(ctx, poll.ID, UpdatePollInput{Tuit: &text, IsPollOpen: &closed}))

	stored, err := svc.FindPollByID(ctx, poll.ID, Expand{})
	require.NoError(t, err)
	assert.Equal(t, "new text", stored.Tuit)
	assert.False(t, stored.IsPollOpen)

	// nil fields leave stored values alone
	reopened := true
	require.NoError(t, svc.UpdatePoll(ctx, poll.ID, UpdatePollInput{IsPollOpen: &reopened}))
	stored, err = svc.FindPollByID(ctx, poll.ID, Expand{})
	require.NoError(t, err)
	assert.Equal(t, "new text", stored.Tuit)
	assert.True(t, stored.IsPollOpen)
}

func TestDeletePollCascades(t *testing.T) {
	gdb := newTestDB(t)
	polls := NewPollService(gdb, testTimeout)
	votes := NewVoteService(gdb, testTimeout)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	voter := seedUser(t, gdb, "voter")
	poll, options := seedPoll(t, gdb, owner.ID, "poll", "a", "b")
	keep, _ := seedPoll(t, gdb, owner.ID, "keep", "x")

	_, err := votes.RecordVote(ctx, voter.ID, poll.ID, options[0].ID)
	require.NoError(t, err)

	require.NoError(t, polls.DeletePoll(ctx, poll.ID))

	assert.EqualValues(t, 0, countRows(t, gdb, &models.Tuit{}, "id = ?", poll.ID))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.PollOption{}, "tuit_id = ?", poll.ID))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Vote{}, "tuit_id = ?", poll.ID))

	// unrelated poll survives
	assert.EqualValues(t, 1, countRows(t, gdb, &models.PollOption{}, "tuit_id = ?", keep.ID))

	assert.ErrorIs(t, polls.DeletePoll(ctx, poll.ID), ErrPollNotFound)
}

func TestPollStatsDerived(t *testing.T) {
	gdb := newTestDB(t)
	polls := NewPollService(gdb, testTimeout)
	votes := NewVoteService(gdb, testTimeout)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	u1 := seedUser(t, gdb, "u1")
	u2 := seedUser(t, gdb, "u2")
	poll, options := seedPoll(t, gdb, owner.ID, "poll", "a", "b")

	_, err := votes.RecordVote(ctx, u1.ID, poll.ID, options[0].ID)
	require.NoError(t, err)
	_, err = votes.RecordVote(ctx, u2.ID, poll.ID, options[0].ID)
	require.NoError(t, err)

	stored, err := polls.FindPollByID(ctx, poll.ID, ExpandAll)
	require.NoError(t, err)
	require.NotNil(t, stored.PollStats)
	assert.Equal(t, []int{2, 0}, stored.PollStats.Votes)
	assert.Equal(t, 2, stored.PollStats.NumParticipated)

	// stats are opt-in
	stored, err = polls.FindPollByID(ctx, poll.ID, Expand{Options: true})
	require.NoError(t, err)
	assert.Nil(t, stored.PollStats)
}
