package testutil

import (
	"context"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:         entity.Base{ID: "user1"},
		Name:         "user1",
		ReferralCode: "AbCdEfGhI",
		IsActive:     true,
	}
	User2 = entity.User{
		Base:         entity.Base{ID: "user2"},
		Name:         "user2",
		ReferralCode: "JkLmNoPqR",
		IsActive:     true,
	}
	User3 = entity.User{
		Base:         entity.Base{ID: "user3"},
		Name:         "user3",
		ReferralCode: "StUvWxYzA",
		IsActive:     true,
	}

	Leaderboard1 = entity.Leaderboard{Base: entity.Base{ID: "leaderboard1"}}
	Leaderboard2 = entity.Leaderboard{Base: entity.Base{ID: "leaderboard2"}}
	Leaderboard3 = entity.Leaderboard{Base: entity.Base{ID: "leaderboard3"}}

	Campaign1 = entity.Campaign{
		Base:          entity.Base{ID: "campaign1"},
		Title:         "Campaign 1",
		Description:   "The first campaign",
		RewardPool:    1000,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		Status:        true,
		LeaderboardID: Leaderboard1.ID,
	}

	Clan1 = entity.Clan{
		Base:          entity.Base{ID: "clan1"},
		Title:         "Clan 1",
		Status:        true,
		LeaderboardID: Leaderboard2.ID,
	}
	Clan2 = entity.Clan{
		Base:          entity.Base{ID: "clan2"},
		Title:         "Clan 2",
		Status:        true,
		LeaderboardID: Leaderboard3.ID,
	}
)

// CreateFixtureContext returns a mock context whose database is preloaded
// with the sample users, campaigns and clans above.
func CreateFixtureContext() context.Context {
	ctx := MockContext()
	InsertUsers(ctx)
	InsertLeaderboards(ctx)
	InsertCampaigns(ctx)
	InsertClans(ctx)
	return ctx
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertLeaderboards(ctx context.Context) {
	leaderboardRepo := repository.NewLeaderboardRepository()
	for _, leaderboard := range []entity.Leaderboard{Leaderboard1, Leaderboard2, Leaderboard3} {
		leaderboard := leaderboard
		if err := leaderboardRepo.Create(ctx, &leaderboard); err != nil {
			panic(err)
		}
	}
}

func InsertCampaigns(ctx context.Context) {
	campaignRepo := repository.NewCampaignRepository()
	campaign := Campaign1
	if err := campaignRepo.Create(ctx, &campaign); err != nil {
		panic(err)
	}
}

func InsertClans(ctx context.Context) {
	clanRepo := repository.NewClanRepository()
	for _, clan := range []entity.Clan{Clan1, Clan2} {
		clan := clan
		if err := clanRepo.Create(ctx, &clan); err != nil {
			panic(err)
		}
	}
}
