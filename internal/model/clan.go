package model

type Clan struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Banner        string `json:"banner,omitempty"`
	CampaignID    string `json:"campaign_id,omitempty"`
	Score         uint64 `json:"score"`
	Status        bool   `json:"status"`
	LeaderboardID string `json:"leaderboard_id"`
	Participants  int    `json:"participants"`
}

type CreateClanRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Banner      string `json:"banner"`

	// CampaignID attaches the clan to a campaign as a sub-team.
	CampaignID string `json:"campaign_id"`
}

type CreateClanResponse struct {
	Clan Clan `json:"clan"`
}

type GetClanRequest struct {
	ClanID string `json:"clan_id"`
}

type GetClanResponse struct {
	Clan Clan `json:"clan"`
}

type GetClansRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetClansResponse struct {
	Clans []Clan `json:"clans"`
}

type JoinClanRequest struct {
	ClanID string `json:"clan_id"`
}

type JoinClanResponse struct {
	ClanID   string `json:"clan_id"`
	UserID   string `json:"user_id"`
	JoinedAt string `json:"joined_at"`
}
