package domain

import (
	"sort"

	"github.com/clanbase/backend/internal/entity"
)

// AssignRanks computes standard competition ranking for the entries of one
// leaderboard: entries with equal points share a rank, and the next distinct
// point value gets a rank of one plus the count of entries strictly ahead of
// it (points [50, 50, 30] rank as [1, 1, 3]).
//
// The result maps user id to 1-based rank. The input is not mutated; ties are
// ordered by creation time then user id so repeated calls are deterministic.
func AssignRanks(entries []entity.LeaderboardEntry) map[string]uint64 {
	if len(entries) == 0 {
		return map[string]uint64{}
	}

	sorted := make([]entity.LeaderboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}

		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}

		return sorted[i].UserID < sorted[j].UserID
	})

	ranks := make(map[string]uint64, len(sorted))
	currentRank := uint64(1)
	for i, entry := range sorted {
		if i > 0 && entry.Points != sorted[i-1].Points {
			currentRank = uint64(i) + 1
		}

		ranks[entry.UserID] = currentRank
	}

	return ranks
}
