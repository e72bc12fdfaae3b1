package store

import (
	"context"
	"errors"

	"codestake/internal/domain"
)

var (
	// ErrNotFound signals a lookup for an id that was never assigned.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a uniqueness violation (username, githubId).
	ErrConflict = errors.New("record already exists")
)

// UserUpdate is a partial merge over an existing user. Nil fields are
// left untouched.
type UserUpdate struct {
	Username       *string
	GithubUsername *string
	AccessToken    *string
	WalletAddress  *string
	AvatarURL      *string
}

// Store is the persistence boundary. Route handlers receive it by
// injection so the in-memory default can be swapped for a durable
// backend without touching route logic.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByGithubID(ctx context.Context, githubID string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)

	// Challenges
	CreateChallenge(ctx context.Context, c *domain.Challenge) error
	GetChallenge(ctx context.Context, id int64) (*domain.Challenge, error)
	GetUserChallenges(ctx context.Context, creatorID int64) ([]domain.Challenge, error)
	GetActiveChallenges(ctx context.Context) ([]domain.Challenge, error)

	// Progress
	RecordProgress(ctx context.Context, p *domain.Progress) error
	GetProgress(ctx context.Context, challengeID, userID int64) ([]domain.Progress, error)

	Ping(ctx context.Context) error
	Close()
}
