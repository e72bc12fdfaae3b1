package domain

import "time"

// Progress is a per-user, per-challenge, per-day activity record.
// The data model allows multiple records for the same day.
type Progress struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	ChallengeID    int64     `json:"challengeId" db:"challenge_id"`
	Date           time.Time `json:"date" db:"date"`
	CommitCount    int       `json:"commitCount" db:"commit_count"`
	ProblemsSolved int       `json:"problemsSolved" db:"problems_solved"`
	XPEarned       int       `json:"xpEarned" db:"xp_earned"`
}
