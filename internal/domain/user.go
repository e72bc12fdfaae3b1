package domain

// User is the identity record. AccessToken is never serialized to clients.
type User struct {
	ID             int64   `json:"id" db:"id"`
	Username       string  `json:"username" db:"username"`
	GithubID       *string `json:"githubId,omitempty" db:"github_id"`
	GithubUsername *string `json:"githubUsername,omitempty" db:"github_username"`
	AccessToken    *string `json:"-" db:"github_access_token"`
	WalletAddress  *string `json:"walletAddress,omitempty" db:"wallet_address"`
	AvatarURL      *string `json:"avatarUrl,omitempty" db:"avatar_url"`
}
