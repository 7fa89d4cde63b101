package entity

import (
	"time"

	"gorm.io/gorm"
)

type Leaderboard struct {
	Base
}

type LeaderboardEntry struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	LeaderboardID string      `gorm:"primaryKey"`
	Leaderboard   Leaderboard `gorm:"foreignKey:LeaderboardID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	// UserName is captured at join time and deliberately not kept in sync
	// with later name changes.
	UserName string

	Points int64

	// Rank is derived state. It is recomputed whenever any entry of the
	// same leaderboard changes points and is never set by callers.
	Rank uint64
}
