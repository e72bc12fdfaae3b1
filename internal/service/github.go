package service

import (
	"context"
	"errors"
)

// GithubUser is the identity returned by the OAuth exchange.
type GithubUser struct {
	ID        string
	Login     string
	AvatarURL string
}

var ErrAuthFailed = errors.New("github auth failed")

// ExchangeCode trades an OAuth code for a GitHub identity. The real
// exchange is not wired; a fixed mock identity stands in so the rest of
// the auth flow (upsert by github id, session issue) is exercised.
func ExchangeCode(ctx context.Context, code string) (*GithubUser, error) {
	if code == "" {
		return nil, ErrAuthFailed
	}
	return &GithubUser{
		ID:        "123456",
		Login:     "mockuser",
		AvatarURL: "https://github.com/ghost.png",
	}, nil
}
