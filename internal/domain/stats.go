package domain

import (
	"math"
	"math/big"
	"time"
)

// XP awards per activity.
const (
	XPCommit             = 10
	XPProblemSolved      = 20
	XPChallengeCompleted = 100
	XPStreakBonus        = 5
	XPAchievement        = 50
)

// Rank is a label earned at a fixed XP threshold.
type Rank struct {
	Title string `json:"title"`
	MinXP int    `json:"minXp"`
}

// Ranks in ascending threshold order. The current rank is the highest
// threshold not exceeding total XP.
var Ranks = []Rank{
	{"Novice", 0},
	{"Apprentice", 1000},
	{"Expert", 5000},
	{"Master", 10000},
	{"Legend", 25000},
}

// UserStats is the aggregate derived from a user's challenges and progress.
// It is computed on demand, never stored.
type UserStats struct {
	UserID              int64    `json:"userId"`
	TotalXP             int      `json:"totalXp"`
	Level               int      `json:"level"`
	Streak              int      `json:"streak"`
	LongestStreak       int      `json:"longestStreak"`
	ChallengesCompleted int      `json:"challengesCompleted"`
	TotalEarned         *big.Int `json:"totalEarned"` // wei
	Rank                string   `json:"rank"`
	NextRank            *string  `json:"nextRank,omitempty"`
	RankProgress        float64  `json:"rankProgress"` // percent toward next rank
	Badges              []string `json:"badges"`
	Achievements        []string `json:"achievements"`
	Title               string   `json:"title"`
	PreferredChain      int64    `json:"preferredChain"`
	SubscriptionTier    string   `json:"subscriptionTier"`
}

// RankFor returns the highest rank whose threshold does not exceed xp.
func RankFor(xp int) Rank {
	r := Ranks[0]
	for _, cand := range Ranks {
		if xp >= cand.MinXP {
			r = cand
		}
	}
	return r
}

// NextRankFor returns the lowest rank whose threshold exceeds xp,
// or false if xp is already at the top rank.
func NextRankFor(xp int) (Rank, bool) {
	for _, cand := range Ranks {
		if cand.MinXP > xp {
			return cand, true
		}
	}
	return Rank{}, false
}

// RankProgress returns the percentage of the way from the current rank
// threshold to the next, or 100 at the top rank.
func RankProgress(xp int) float64 {
	cur := RankFor(xp)
	next, ok := NextRankFor(xp)
	if !ok {
		return 100
	}
	return float64(xp-cur.MinXP) / float64(next.MinXP-cur.MinXP) * 100
}

// StakeWei converts a stake in ETH with a base-100 reward multiplier to
// wei. Stakes are bounded [0.001, 100] ETH, so rounding to micro-ETH
// before scaling keeps float64 noise out of the wei amount.
func StakeWei(amountETH float64, rewardMultiplier int) *big.Int {
	micro := int64(math.Round(amountETH * 1e6))
	wei := new(big.Int).Mul(big.NewInt(micro), big.NewInt(1e12))
	wei.Mul(wei, big.NewInt(int64(rewardMultiplier)))
	return wei.Div(wei, big.NewInt(100))
}

// progressXP values a single record: explicit xpEarned wins, otherwise the
// per-commit and per-problem awards apply.
func progressXP(p Progress) int {
	if p.XPEarned > 0 {
		return p.XPEarned
	}
	return p.CommitCount*XPCommit + p.ProblemsSolved*XPProblemSolved
}

// streaks returns the run of consecutive active days ending at the most
// recent recorded day, and the longest such run overall.
func streaks(recs []Progress) (current, longest int) {
	if len(recs) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]bool, len(recs))
	var days []time.Time
	for _, p := range recs {
		day := p.Date.UTC().Truncate(24 * time.Hour)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	// ascending by day
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].Before(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return run, longest
}

// ComputeStats derives UserStats from the user's created challenges and
// progress history. now decides which challenges count as completed.
func ComputeStats(userID int64, challenges []Challenge, recs []Progress, now time.Time) UserStats {
	var xp int
	for _, p := range recs {
		xp += progressXP(p)
	}

	completed := 0
	earned := new(big.Int)
	for _, c := range challenges {
		if c.CompletedBy(now) {
			completed++
			earned.Add(earned, StakeWei(c.StakingAmount, c.RewardMultiplier))
		}
	}
	xp += completed * XPChallengeCompleted

	current, longest := streaks(recs)
	xp += current * XPStreakBonus

	cur := RankFor(xp)
	stats := UserStats{
		UserID:              userID,
		TotalXP:             xp,
		Level:               xp/1000 + 1,
		Streak:              current,
		LongestStreak:       longest,
		ChallengesCompleted: completed,
		TotalEarned:         earned,
		Rank:                cur.Title,
		RankProgress:        RankProgress(xp),
		Badges:              []string{},
		Achievements:        []string{},
		Title:               "Rookie Coder",
		PreferredChain:      DefaultChainID,
		SubscriptionTier:    "basic",
	}
	if next, ok := NextRankFor(xp); ok {
		stats.NextRank = &next.Title
	}
	return stats
}
