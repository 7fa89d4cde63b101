package model

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ReferralCode string `json:"referral_code,omitempty"`
	ActiveClanID string `json:"active_clan_id,omitempty"`
	ClanJoinedAt string `json:"clan_joined_at,omitempty"`
	IsActive     bool   `json:"is_active"`
}

type RegisterRequest struct {
	Name string `json:"name"`

	// ReferralCode optionally credits an existing user for bringing this
	// one in.
	ReferralCode string `json:"referral_code"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetRewardHistoryRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type RewardHistory struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	CampaignID string `json:"campaign_id"`
	Amount     uint64 `json:"amount"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"created_at"`
}

type GetRewardHistoryResponse struct {
	Rewards []RewardHistory `json:"rewards"`
}
