package store

import (
	"context"
	"errors"

	"codestake/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements Store over Postgres. Selected when DATABASE_URL is
// set; semantics mirror MemStore (serial ids from 1, insertion order via
// ORDER BY id).
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

// Migrate creates the schema if it is not there yet.
func (s *PgStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			github_id TEXT UNIQUE,
			github_username TEXT,
			github_access_token TEXT,
			wallet_address TEXT,
			avatar_url TEXT
		);
		CREATE TABLE IF NOT EXISTS challenges (
			id SERIAL PRIMARY KEY,
			creator_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			platform TEXT NOT NULL,
			staking_amount DOUBLE PRECISION NOT NULL,
			duration_days INTEGER NOT NULL,
			start_date TIMESTAMPTZ NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			reward_multiplier INTEGER NOT NULL DEFAULT 100,
			chain_id INTEGER NOT NULL DEFAULT 1,
			contract_address TEXT
		);
		CREATE TABLE IF NOT EXISTS progress (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			challenge_id INTEGER NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			commit_count INTEGER NOT NULL DEFAULT 0,
			problems_solved INTEGER NOT NULL DEFAULT 0,
			xp_earned INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

func mapPgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.GithubID,
		&u.GithubUsername,
		&u.AccessToken,
		&u.WalletAddress,
		&u.AvatarURL,
	); err != nil {
		return nil, mapPgErr(err)
	}
	return &u, nil
}

const userCols = `id, username, github_id, github_username, github_access_token, wallet_address, avatar_url`

func (s *PgStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (s *PgStore) GetUserByGithubID(ctx context.Context, githubID string) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE github_id = $1`, githubID))
}

func (s *PgStore) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (username, github_id, github_username, github_access_token, wallet_address, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Username, u.GithubID, u.GithubUsername, u.AccessToken, u.WalletAddress, u.AvatarURL,
	).Scan(&u.ID)
	if err != nil {
		return mapPgErr(err)
	}
	return nil
}

func (s *PgStore) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`UPDATE users SET
			username = COALESCE($2, username),
			github_username = COALESCE($3, github_username),
			github_access_token = COALESCE($4, github_access_token),
			wallet_address = COALESCE($5, wallet_address),
			avatar_url = COALESCE($6, avatar_url)
		 WHERE id = $1
		 RETURNING `+userCols,
		id, upd.Username, upd.GithubUsername, upd.AccessToken, upd.WalletAddress, upd.AvatarURL)
	return scanUser(row)
}

const challengeCols = `id, creator_id, title, description, platform, staking_amount, duration_days, start_date, is_active, reward_multiplier, chain_id, contract_address`

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var c domain.Challenge
	if err := row.Scan(
		&c.ID,
		&c.CreatorID,
		&c.Title,
		&c.Description,
		&c.Platform,
		&c.StakingAmount,
		&c.DurationDays,
		&c.StartDate,
		&c.IsActive,
		&c.RewardMultiplier,
		&c.ChainID,
		&c.ContractAddress,
	); err != nil {
		return nil, mapPgErr(err)
	}
	return &c, nil
}

func (s *PgStore) CreateChallenge(ctx context.Context, c *domain.Challenge) error {
	if c.RewardMultiplier == 0 {
		c.RewardMultiplier = domain.DefaultRewardMultiplier
	}
	if c.ChainID == 0 {
		c.ChainID = domain.DefaultChainID
	}
	c.IsActive = true

	err := s.db.QueryRow(ctx,
		`INSERT INTO challenges (creator_id, title, description, platform, staking_amount, duration_days, start_date, is_active, reward_multiplier, chain_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9)
		 RETURNING id`,
		c.CreatorID, c.Title, c.Description, c.Platform, c.StakingAmount, c.DurationDays, c.StartDate, c.RewardMultiplier, c.ChainID,
	).Scan(&c.ID)
	if err != nil {
		return mapPgErr(err)
	}
	return nil
}

func (s *PgStore) GetChallenge(ctx context.Context, id int64) (*domain.Challenge, error) {
	return scanChallenge(s.db.QueryRow(ctx,
		`SELECT `+challengeCols+` FROM challenges WHERE id = $1`, id))
}

func (s *PgStore) queryChallenges(ctx context.Context, query string, args ...any) ([]domain.Challenge, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

func (s *PgStore) GetUserChallenges(ctx context.Context, creatorID int64) ([]domain.Challenge, error) {
	return s.queryChallenges(ctx,
		`SELECT `+challengeCols+` FROM challenges WHERE creator_id = $1 ORDER BY id`, creatorID)
}

func (s *PgStore) GetActiveChallenges(ctx context.Context) ([]domain.Challenge, error) {
	return s.queryChallenges(ctx,
		`SELECT `+challengeCols+` FROM challenges WHERE is_active ORDER BY id`)
}

func (s *PgStore) RecordProgress(ctx context.Context, p *domain.Progress) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO progress (user_id, challenge_id, date, commit_count, problems_solved, xp_earned)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		p.UserID, p.ChallengeID, p.Date, p.CommitCount, p.ProblemsSolved, p.XPEarned,
	).Scan(&p.ID)
	if err != nil {
		return mapPgErr(err)
	}
	return nil
}

func (s *PgStore) GetProgress(ctx context.Context, challengeID, userID int64) ([]domain.Progress, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, challenge_id, date, commit_count, problems_solved, xp_earned
		 FROM progress
		 WHERE challenge_id = $1 AND user_id = $2
		 ORDER BY id`,
		challengeID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Progress{}
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.ChallengeID, &p.Date, &p.CommitCount, &p.ProblemsSolved, &p.XPEarned); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (s *PgStore) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

func (s *PgStore) Close() { s.db.Close() }
