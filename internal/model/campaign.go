package model

import "time"

type Campaign struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Banner        string    `json:"banner,omitempty"`
	RewardPool    uint64    `json:"reward_pool"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        bool      `json:"status"`
	LeaderboardID string    `json:"leaderboard_id"`
	Participants  int       `json:"participants"`
}

type CreateCampaignRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Banner      string    `json:"banner"`
	RewardPool  uint64    `json:"reward_pool"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type CreateCampaignResponse struct {
	Campaign Campaign `json:"campaign"`
}

type GetCampaignRequest struct {
	CampaignID string `json:"campaign_id"`
}

type GetCampaignResponse struct {
	Campaign Campaign `json:"campaign"`
}

type GetCampaignsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetCampaignsResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type JoinCampaignRequest struct {
	CampaignID string `json:"campaign_id"`

	// ClanID optionally picks a sub-team of the campaign.
	ClanID string `json:"clan_id"`
}

type JoinCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
	ClanID     string `json:"clan_id,omitempty"`
	JoinedAt   string `json:"joined_at"`
}
