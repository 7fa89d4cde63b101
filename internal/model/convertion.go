package model

import (
	"time"

	"github.com/clanbase/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	resp := User{
		ID:           user.ID,
		Name:         user.Name,
		ReferralCode: user.ReferralCode,
		IsActive:     user.IsActive,
	}

	if user.ActiveClanID.Valid {
		resp.ActiveClanID = user.ActiveClanID.String
	}

	if user.ClanJoinedAt.Valid {
		resp.ClanJoinedAt = user.ClanJoinedAt.Time.Format(time.RFC3339)
	}

	return resp
}

func ConvertCampaign(campaign *entity.Campaign) Campaign {
	if campaign == nil {
		return Campaign{}
	}

	return Campaign{
		ID:            campaign.ID,
		Title:         campaign.Title,
		Description:   campaign.Description,
		Banner:        campaign.Banner,
		RewardPool:    campaign.RewardPool,
		StartDate:     campaign.StartDate,
		EndDate:       campaign.EndDate,
		Status:        campaign.Status,
		LeaderboardID: campaign.LeaderboardID,
		Participants:  campaign.Participants,
	}
}

func ConvertClan(clan *entity.Clan) Clan {
	if clan == nil {
		return Clan{}
	}

	resp := Clan{
		ID:            clan.ID,
		Title:         clan.Title,
		Description:   clan.Description,
		Banner:        clan.Banner,
		Score:         clan.Score,
		Status:        clan.Status,
		LeaderboardID: clan.LeaderboardID,
		Participants:  clan.Participants,
	}

	if clan.CampaignID.Valid {
		resp.CampaignID = clan.CampaignID.String
	}

	return resp
}

func ConvertLeaderboardEntry(entry *entity.LeaderboardEntry) LeaderboardEntry {
	if entry == nil {
		return LeaderboardEntry{}
	}

	return LeaderboardEntry{
		LeaderboardID: entry.LeaderboardID,
		UserID:        entry.UserID,
		UserName:      entry.UserName,
		Points:        entry.Points,
		Rank:          entry.Rank,
	}
}

func ConvertReferral(referral *entity.Referral) Referral {
	if referral == nil {
		return Referral{}
	}

	return Referral{
		ID:             referral.ID,
		ReferrerUserID: referral.ReferrerUserID,
		ReferredUserID: referral.ReferredUserID,
		Code:           referral.Code,
		RewardGiven:    referral.RewardGiven,
		JoinedAt:       referral.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertRewardHistory(reward *entity.RewardHistory) RewardHistory {
	if reward == nil {
		return RewardHistory{}
	}

	return RewardHistory{
		ID:         reward.ID,
		UserID:     reward.UserID,
		CampaignID: reward.CampaignID,
		Amount:     reward.Amount,
		Reason:     string(reward.Reason),
		CreatedAt:  reward.CreatedAt.Format(time.RFC3339),
	}
}
