package services

import (
	"context"
	"testing"

	"tuiter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTuit(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTuitService(gdb, testTimeout)

	user := seedUser(t, gdb, "alice")

	tuit, err := svc.CreateTuit(context.Background(), user.ID, "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", tuit.Tuit)
	assert.Equal(t, "alice", tuit.User.Username)
	assert.False(t, tuit.IsPoll)

	_, err = svc.CreateTuit(context.Background(), 999, "orphan")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindTuitByID(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTuitService(gdb, testTimeout)
	ctx := context.Background()

	user := seedUser(t, gdb, "alice")
	tuit := seedTuit(t, gdb, user.ID, "hello")

	stored, err := svc.FindTuitByID(ctx, tuit.ID, ExpandAll)
	require.NoError(t, err)
	assert.Equal(t, "hello", stored.Tuit)
	assert.Equal(t, "alice", stored.User.Username)

	_, err = svc.FindTuitByID(ctx, 999, ExpandAll)
	assert.ErrorIs(t, err, ErrTuitNotFound)
}

func TestFindTuitsByUser(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewTuitService(gdb, testTimeout)

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")
	seedTuit(t, gdb, alice.ID, "one")
	seedTuit(t, gdb, alice.ID, "two")
	seedTuit(t, gdb, bob.ID, "other")

	tuits, err := svc.FindTuitsByUser(context.Background(), alice.ID, Expand{})
	require.NoError(t, err)
	assert.Len(t, tuits, 2)
}

// Deleting a tuit takes its votes, options, likes, and dislikes with it.
func TestDeleteTuitCascades(t *testing.T) {
	gdb := newTestDB(t)
	tuits := NewTuitService(gdb, testTimeout)
	reactions := NewReactionService(gdb, testTimeout)
	votes := NewVoteService(gdb, testTimeout)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	other := seedUser(t, gdb, "other")
	poll, options := seedPoll(t, gdb, owner.ID, "poll", "a")

	_, err := votes.RecordVote(ctx, other.ID, poll.ID, options[0].ID)
	require.NoError(t, err)
	_, err = reactions.Dislike(ctx, other.ID, poll.ID)
	require.NoError(t, err)
	_, err = reactions.Like(ctx, owner.ID, poll.ID)
	require.NoError(t, err)

	require.NoError(t, tuits.DeleteTuit(ctx, poll.ID))

	assert.EqualValues(t, 0, countRows(t, gdb, &models.Tuit{}, "id = ?", poll.ID))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Vote{}, "tuit_id = ?", poll.ID))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.PollOption{}, "tuit_id = ?", poll.ID))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Like{}, "tuit_id = ?", poll.ID))
	assert.EqualValues(t, 0, countRows(t, gdb, &models.Dislike{}, "tuit_id = ?", poll.ID))

	assert.ErrorIs(t, tuits.DeleteTuit(ctx, poll.ID), ErrTuitNotFound)
}
