package migration

import (
	"context"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
)

// AutoMigrate creates or updates every table. Parent tables come first so the
// foreign keys of the join rows resolve.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Leaderboard{},
		&entity.Campaign{},
		&entity.Clan{},
		&entity.CampaignParticipant{},
		&entity.ClanParticipant{},
		&entity.LeaderboardEntry{},
		&entity.Referral{},
		&entity.RewardHistory{},
	)
}
