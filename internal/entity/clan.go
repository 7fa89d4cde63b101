package entity

import "database/sql"

type Clan struct {
	Base
	Title       string
	Description string
	Banner      string

	// CampaignID is set when the clan is a sub-team of a campaign. A
	// standalone clan leaves it null.
	CampaignID sql.NullString
	Campaign   *Campaign `gorm:"foreignKey:CampaignID"`

	Score  uint64
	Status bool

	LeaderboardID string      `gorm:"unique"`
	Leaderboard   Leaderboard `gorm:"foreignKey:LeaderboardID"`

	Participants int
}
