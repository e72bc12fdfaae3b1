// Seeds a demo user and challenge into Postgres for local development.
package main

import (
	"context"
	"os"
	"time"

	"codestake/internal/db"
	"codestake/internal/domain"
	"codestake/internal/logger"
	"codestake/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	pg := store.NewPgStore(pool)
	ctx := context.Background()

	if err := pg.Migrate(ctx); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	ghID := "123456"
	login := "mockuser"
	avatar := "https://github.com/ghost.png"
	user := &domain.User{
		Username:       login,
		GithubID:       &ghID,
		GithubUsername: &login,
		AvatarURL:      &avatar,
	}
	if err := pg.CreateUser(ctx, user); err != nil {
		if err != store.ErrConflict {
			logger.Fatal("seed user failed", "error", err)
		}
		existing, err := pg.GetUserByGithubID(ctx, ghID)
		if err != nil {
			logger.Fatal("seed user lookup failed", "error", err)
		}
		user = existing
	}

	challenge := &domain.Challenge{
		CreatorID:     user.ID,
		Title:         "30-day streak",
		Description:   "Commit every day for thirty days",
		Platform:      domain.PlatformGithub,
		StakingAmount: 0.1,
		DurationDays:  30,
		StartDate:     time.Now().UTC(),
	}
	if err := pg.CreateChallenge(ctx, challenge); err != nil {
		logger.Fatal("seed challenge failed", "error", err)
	}

	logger.Info("seeded", "user_id", user.ID, "challenge_id", challenge.ID)
}
