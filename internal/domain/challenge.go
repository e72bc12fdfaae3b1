package domain

import "time"

type Platform string

const (
	PlatformGithub   Platform = "github"
	PlatformLeetcode Platform = "leetcode"
)

// Staking and duration bounds enforced at insert time.
const (
	MinStakeETH     = 0.001
	MaxStakeETH     = 100
	MinDurationDays = 1
	MaxDurationDays = 365

	// Reward multiplier is expressed base-100: 100 = 1.0x, 110 = 1.1x.
	DefaultRewardMultiplier = 100
	DefaultChainID          = 1 // Ethereum mainnet
)

// Challenge is a staked commitment. ID and IsActive are server-assigned;
// ContractAddress is set by an external settlement process, never by clients.
type Challenge struct {
	ID               int64     `json:"id" db:"id"`
	CreatorID        int64     `json:"creatorId" db:"creator_id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Platform         Platform  `json:"platform" db:"platform"`
	StakingAmount    float64   `json:"stakingAmount" db:"staking_amount"`
	DurationDays     int       `json:"durationDays" db:"duration_days"`
	StartDate        time.Time `json:"startDate" db:"start_date"`
	IsActive         bool      `json:"isActive" db:"is_active"`
	RewardMultiplier int       `json:"rewardMultiplier" db:"reward_multiplier"`
	ChainID          int64     `json:"chainId" db:"chain_id"`
	ContractAddress  *string   `json:"contractAddress,omitempty" db:"contract_address"`
}

// EndDate is the instant the challenge runs out.
func (c Challenge) EndDate() time.Time {
	return c.StartDate.AddDate(0, 0, c.DurationDays)
}

// CompletedBy reports whether the challenge duration has elapsed at now.
func (c Challenge) CompletedBy(now time.Time) bool {
	return !now.Before(c.EndDate())
}
