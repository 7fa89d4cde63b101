package model

type LeaderboardEntry struct {
	LeaderboardID string `json:"leaderboard_id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	Points        int64  `json:"points"`
	Rank          uint64 `json:"rank"`
}

type AwardPointsRequest struct {
	LeaderboardID string `json:"leaderboard_id"`
	UserID        string `json:"user_id"`
	Points        int64  `json:"points"`
}

type AwardPointsResponse struct {
	Entry LeaderboardEntry `json:"entry"`
}

type GetLeaderboardRequest struct {
	// Exactly one of LeaderboardID, CampaignID, or ClanID selects the
	// board.
	LeaderboardID string `json:"leaderboard_id"`
	CampaignID    string `json:"campaign_id"`
	ClanID        string `json:"clan_id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`

	// MyEntry is the requesting user's entry when the request is
	// authenticated and the user is on the board.
	MyEntry *LeaderboardEntry `json:"my_entry,omitempty"`
}
