package domain

import (
	"math/big"
	"testing"
	"time"
)

func TestRankThresholds(t *testing.T) {
	cases := []struct {
		xp   int
		want string
	}{
		{0, "Novice"},
		{999, "Novice"},
		{1000, "Apprentice"},
		{4999, "Apprentice"},
		{5000, "Expert"},
		{10000, "Master"},
		{24999, "Master"},
		{25000, "Legend"},
		{100000, "Legend"},
	}
	for _, tc := range cases {
		if got := RankFor(tc.xp).Title; got != tc.want {
			t.Errorf("RankFor(%d) = %s, want %s", tc.xp, got, tc.want)
		}
	}
}

func TestNextRankAtTop(t *testing.T) {
	if _, ok := NextRankFor(25000); ok {
		t.Fatal("expected no next rank at Legend")
	}
	next, ok := NextRankFor(0)
	if !ok || next.Title != "Apprentice" {
		t.Fatalf("expected Apprentice next from 0, got %+v ok=%v", next, ok)
	}
}

func TestRankProgress(t *testing.T) {
	if got := RankProgress(500); got != 50 {
		t.Errorf("RankProgress(500) = %v, want 50", got)
	}
	if got := RankProgress(25000); got != 100 {
		t.Errorf("RankProgress at top = %v, want 100", got)
	}
	// halfway from Apprentice (1000) to Expert (5000)
	if got := RankProgress(3000); got != 50 {
		t.Errorf("RankProgress(3000) = %v, want 50", got)
	}
}

func TestStakeWei(t *testing.T) {
	got := StakeWei(0.1, 100)
	want := new(big.Int).Mul(big.NewInt(1e17), big.NewInt(1))
	if got.Cmp(want) != 0 {
		t.Errorf("StakeWei(0.1, 100) = %s, want %s", got, want)
	}

	// 1.1x multiplier on 1 ETH
	got = StakeWei(1, 110)
	want, _ = new(big.Int).SetString("1100000000000000000", 10)
	if got.Cmp(want) != 0 {
		t.Errorf("StakeWei(1, 110) = %s, want %s", got, want)
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(1, nil, nil, time.Now())
	if stats.TotalXP != 0 || stats.Streak != 0 || stats.LongestStreak != 0 {
		t.Errorf("empty stats not zeroed: %+v", stats)
	}
	if stats.Rank != "Novice" || stats.Level != 1 {
		t.Errorf("expected Novice level 1, got %s level %d", stats.Rank, stats.Level)
	}
	if stats.TotalEarned.Sign() != 0 {
		t.Errorf("expected zero earnings, got %s", stats.TotalEarned)
	}
}

func TestComputeStatsXPFromCounters(t *testing.T) {
	recs := []Progress{
		{UserID: 1, ChallengeID: 1, Date: day(t, "2026-03-01"), CommitCount: 2, ProblemsSolved: 1},
		{UserID: 1, ChallengeID: 1, Date: day(t, "2026-03-02"), CommitCount: 1},
	}
	stats := ComputeStats(1, nil, recs, day(t, "2026-03-03"))

	// 2*10+1*20 + 1*10 activity XP, streak of 2 adds 2*5
	if want := 50 + 10; stats.TotalXP != want {
		t.Errorf("TotalXP = %d, want %d", stats.TotalXP, want)
	}
	if stats.Streak != 2 || stats.LongestStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", stats.Streak, stats.LongestStreak)
	}
}

func TestComputeStatsExplicitXPWins(t *testing.T) {
	recs := []Progress{
		{UserID: 1, ChallengeID: 1, Date: day(t, "2026-03-01"), CommitCount: 5, XPEarned: 7},
	}
	stats := ComputeStats(1, nil, recs, day(t, "2026-03-01"))
	// 7 explicit + single-day streak bonus
	if want := 7 + XPStreakBonus; stats.TotalXP != want {
		t.Errorf("TotalXP = %d, want %d", stats.TotalXP, want)
	}
}

func TestComputeStatsStreakBreak(t *testing.T) {
	recs := []Progress{
		{Date: day(t, "2026-03-01")},
		{Date: day(t, "2026-03-02")},
		{Date: day(t, "2026-03-03")},
		{Date: day(t, "2026-03-05")}, // gap
	}
	stats := ComputeStats(1, nil, recs, day(t, "2026-03-06"))
	if stats.Streak != 1 {
		t.Errorf("current streak = %d, want 1 (broken by gap)", stats.Streak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("longest streak = %d, want 3", stats.LongestStreak)
	}
}

func TestComputeStatsDuplicateDaysCountOnce(t *testing.T) {
	recs := []Progress{
		{Date: day(t, "2026-03-01")},
		{Date: day(t, "2026-03-01")},
		{Date: day(t, "2026-03-02")},
	}
	stats := ComputeStats(1, nil, recs, day(t, "2026-03-02"))
	if stats.Streak != 2 || stats.LongestStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", stats.Streak, stats.LongestStreak)
	}
}

func TestComputeStatsCompletedChallenges(t *testing.T) {
	now := day(t, "2026-03-01")
	challenges := []Challenge{
		{ID: 1, StakingAmount: 0.1, RewardMultiplier: 100, DurationDays: 30, StartDate: now.AddDate(0, 0, -31)},
		{ID: 2, StakingAmount: 1, RewardMultiplier: 100, DurationDays: 30, StartDate: now}, // still running
	}
	stats := ComputeStats(1, challenges, nil, now)

	if stats.ChallengesCompleted != 1 {
		t.Fatalf("completed = %d, want 1", stats.ChallengesCompleted)
	}
	if want := XPChallengeCompleted; stats.TotalXP != want {
		t.Errorf("TotalXP = %d, want %d", stats.TotalXP, want)
	}
	if want := StakeWei(0.1, 100); stats.TotalEarned.Cmp(want) != 0 {
		t.Errorf("TotalEarned = %s, want %s", stats.TotalEarned, want)
	}
}
