package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Error kinds the handlers map to distinct status codes. Storage failures
// that match none of these stay wrapped and fall through as internal errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrTuitNotFound   = errors.New("tuit not found")
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("poll option not found")
	ErrVoteNotFound   = errors.New("vote not found")

	// ErrIdentityUnresolved means the "me"/"my" alias had no session behind
	// it. Deliberately distinct from the not-found kinds.
	ErrIdentityUnresolved = errors.New("identity unresolved")

	// ErrConflict is a duplicate on a relation's natural key, e.g. a second
	// vote by the same user on the same poll.
	ErrConflict = errors.New("already exists")

	// ErrTimeout is a storage operation exceeding the per-operation deadline.
	// Retryable: every mutation here is safe to replay.
	ErrTimeout = errors.New("operation timed out")
)

// translate folds storage-level errors into the service taxonomy. notFound is
// the kind to report when the underlying row is missing.
func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	default:
		return err
	}
}
