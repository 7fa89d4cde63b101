package entity

import "database/sql"

type User struct {
	Base
	Name string `gorm:"unique"`

	// ReferralCode is a fixed-length random code other users supply at
	// signup to credit this user.
	ReferralCode string `gorm:"unique"`

	ActiveClanID sql.NullString
	ActiveClan   *Clan `gorm:"foreignKey:ActiveClanID"`
	ClanJoinedAt sql.NullTime

	IsActive bool `gorm:"default:true"`
}
