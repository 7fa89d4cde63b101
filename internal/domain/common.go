package domain

import (
	"context"
	"strings"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/xcontext"
)

// clampPaging applies the configured default and maximum page sizes.
func clampPaging(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer

	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative offset")
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative limit")
	}

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	return offset, limit, nil
}

// isDuplicateError detects unique-constraint violations of mysql and sqlite,
// which racing inserts can produce past the application-level checks.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// recomputeRanks locks all entries of the leaderboard, reassigns ranks,
// and persists every rank that moved. It must run inside the caller's
// transaction.
func recomputeRanks(
	ctx context.Context,
	leaderboardRepo repository.LeaderboardRepository,
	leaderboardID string,
) error {
	entries, err := leaderboardRepo.GetEntriesForUpdate(ctx, leaderboardID)
	if err != nil {
		return err
	}

	return persistRanks(ctx, leaderboardRepo, leaderboardID, entries)
}

func persistRanks(
	ctx context.Context,
	leaderboardRepo repository.LeaderboardRepository,
	leaderboardID string,
	entries []entity.LeaderboardEntry,
) error {
	ranks := AssignRanks(entries)
	for i := range entries {
		newRank := ranks[entries[i].UserID]
		if entries[i].Rank == newRank {
			continue
		}

		if err := leaderboardRepo.UpdateEntryRank(ctx, leaderboardID, entries[i].UserID, newRank); err != nil {
			return err
		}
	}

	return nil
}
