package entity

import (
	"database/sql"
	"time"

	"github.com/clanbase/backend/pkg/enum"
	"gorm.io/gorm"
)

type ParticipantStatusType string

var (
	ParticipantActive = enum.New(ParticipantStatusType("active"))
	ParticipantLeft   = enum.New(ParticipantStatusType("left"))
)

type CampaignParticipant struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	CampaignID string   `gorm:"primaryKey"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	// ClanID records the sub-team picked at join time, if any.
	ClanID sql.NullString

	Status ParticipantStatusType
}

type ClanParticipant struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	ClanID string `gorm:"primaryKey"`
	Clan   Clan   `gorm:"foreignKey:ClanID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	// JoinedAt is tracked separately from CreatedAt because a membership
	// row is reactivated in place when the user rejoins after a switch.
	JoinedAt time.Time

	Status ParticipantStatusType
}
