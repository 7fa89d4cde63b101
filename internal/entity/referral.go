package entity

import "database/sql"

type Referral struct {
	Base

	ReferrerUserID string
	ReferrerUser   User `gorm:"foreignKey:ReferrerUserID"`

	// A user can be referred only once, ever.
	ReferredUserID string `gorm:"unique"`
	ReferredUser   User   `gorm:"foreignKey:ReferredUserID"`

	Code string

	// RewardGiven flips from false to true exactly once, when the referred
	// user completes a qualifying action.
	RewardGiven bool

	// ActionID keeps the qualifying action for audit.
	ActionID sql.NullString
}
