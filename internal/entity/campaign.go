package entity

import "time"

type Campaign struct {
	Base
	Title       string
	Description string
	Banner      string

	RewardPool uint64
	StartDate  time.Time
	EndDate    time.Time
	Status     bool

	// Every campaign owns exactly one leaderboard, created in the same
	// transaction as the campaign.
	LeaderboardID string      `gorm:"unique"`
	Leaderboard   Leaderboard `gorm:"foreignKey:LeaderboardID"`

	Participants int
}

// IsOpenAt reports whether the campaign accepts joins at the given time.
func (c *Campaign) IsOpenAt(now time.Time) bool {
	return c.Status && !now.Before(c.StartDate) && !now.After(c.EndDate)
}
