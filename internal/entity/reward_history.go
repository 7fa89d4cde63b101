package entity

import "github.com/clanbase/backend/pkg/enum"

type RewardReasonType string

var (
	RewardReasonCampaign = enum.New(RewardReasonType("campaign"))
	RewardReasonReferral = enum.New(RewardReasonType("referral"))
)

// RewardHistory is an append-only ledger. Rows are never mutated after
// creation.
type RewardHistory struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	// CampaignID may be the reserved referral campaign id from configs.
	CampaignID string

	Amount uint64
	Reason RewardReasonType
}
