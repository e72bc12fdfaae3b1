package store

import (
	"context"
	"sync"

	"codestake/internal/domain"
)

// MemStore keeps every record in process-local maps. Each operation is a
// single mutex-guarded mutation, so individual calls are atomic; there is
// no transaction boundary across calls. Ids count up from 1 per entity
// and are never reused.
type MemStore struct {
	mu sync.Mutex

	users      map[int64]domain.User
	challenges map[int64]domain.Challenge
	progress   map[int64]domain.Progress

	nextUser      int64
	nextChallenge int64
	nextProgress  int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[int64]domain.User),
		challenges:    make(map[int64]domain.Challenge),
		progress:      make(map[int64]domain.Progress),
		nextUser:      1,
		nextChallenge: 1,
		nextProgress:  1,
	}
}

func (s *MemStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) GetUserByGithubID(ctx context.Context, githubID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := int64(1); id < s.nextUser; id++ {
		u := s.users[id]
		if u.GithubID != nil && *u.GithubID == githubID {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := int64(1); id < s.nextUser; id++ {
		existing := s.users[id]
		if existing.Username == u.Username {
			return ErrConflict
		}
		if u.GithubID != nil && existing.GithubID != nil && *existing.GithubID == *u.GithubID {
			return ErrConflict
		}
	}

	u.ID = s.nextUser
	s.nextUser++
	s.users[u.ID] = *u
	return nil
}

func (s *MemStore) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.GithubUsername != nil {
		u.GithubUsername = upd.GithubUsername
	}
	if upd.AccessToken != nil {
		u.AccessToken = upd.AccessToken
	}
	if upd.WalletAddress != nil {
		u.WalletAddress = upd.WalletAddress
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = upd.AvatarURL
	}
	s.users[id] = u
	return &u, nil
}

func (s *MemStore) CreateChallenge(ctx context.Context, c *domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextChallenge
	s.nextChallenge++
	c.IsActive = true
	if c.RewardMultiplier == 0 {
		c.RewardMultiplier = domain.DefaultRewardMultiplier
	}
	if c.ChainID == 0 {
		c.ChainID = domain.DefaultChainID
	}
	s.challenges[c.ID] = *c
	return nil
}

func (s *MemStore) GetChallenge(ctx context.Context, id int64) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemStore) GetUserChallenges(ctx context.Context, creatorID int64) ([]domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := []domain.Challenge{}
	for id := int64(1); id < s.nextChallenge; id++ {
		if c := s.challenges[id]; c.CreatorID == creatorID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *MemStore) GetActiveChallenges(ctx context.Context) ([]domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := []domain.Challenge{}
	for id := int64(1); id < s.nextChallenge; id++ {
		if c := s.challenges[id]; c.IsActive {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *MemStore) RecordProgress(ctx context.Context, p *domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProgress
	s.nextProgress++
	s.progress[p.ID] = *p
	return nil
}

func (s *MemStore) GetProgress(ctx context.Context, challengeID, userID int64) ([]domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := []domain.Progress{}
	for id := int64(1); id < s.nextProgress; id++ {
		if p := s.progress[id]; p.ChallengeID == challengeID && p.UserID == userID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Close() {}
