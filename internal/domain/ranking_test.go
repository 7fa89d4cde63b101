package domain

import (
	"testing"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func Test_AssignRanks(t *testing.T) {
	base := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	entry := func(userID string, points int64, age time.Duration) entity.LeaderboardEntry {
		return entity.LeaderboardEntry{
			CreatedAt: base.Add(age),
			UserID:    userID,
			Points:    points,
		}
	}

	tests := []struct {
		name    string
		entries []entity.LeaderboardEntry
		want    map[string]uint64
	}{
		{
			name:    "empty leaderboard",
			entries: nil,
			want:    map[string]uint64{},
		},
		{
			name: "distinct points",
			entries: []entity.LeaderboardEntry{
				entry("user1", 100, 0),
				entry("user2", 80, time.Minute),
				entry("user3", 50, 2*time.Minute),
			},
			want: map[string]uint64{"user1": 1, "user2": 2, "user3": 3},
		},
		{
			name: "tie shares the rank and the next one skips",
			entries: []entity.LeaderboardEntry{
				entry("user1", 50, 0),
				entry("user2", 50, time.Minute),
				entry("user3", 30, 2*time.Minute),
			},
			want: map[string]uint64{"user1": 1, "user2": 1, "user3": 3},
		},
		{
			name: "tie in the middle",
			entries: []entity.LeaderboardEntry{
				entry("user1", 100, 0),
				entry("user2", 80, time.Minute),
				entry("user3", 80, 2*time.Minute),
				entry("user4", 50, 3*time.Minute),
			},
			want: map[string]uint64{"user1": 1, "user2": 2, "user3": 2, "user4": 4},
		},
		{
			name: "everybody ties at rank one",
			entries: []entity.LeaderboardEntry{
				entry("user1", 10, 0),
				entry("user2", 10, time.Minute),
				entry("user3", 10, 2*time.Minute),
			},
			want: map[string]uint64{"user1": 1, "user2": 1, "user3": 1},
		},
		{
			name: "negative and zero points still rank",
			entries: []entity.LeaderboardEntry{
				entry("user1", 0, 0),
				entry("user2", -5, time.Minute),
			},
			want: map[string]uint64{"user1": 1, "user2": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]entity.LeaderboardEntry(nil), tt.entries...)

			require.Equal(t, tt.want, AssignRanks(tt.entries))
			require.Equal(t, original, tt.entries)
		})
	}
}

func Test_AssignRanks_OrderAgreesWithPoints(t *testing.T) {
	base := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []entity.LeaderboardEntry{
		{CreatedAt: base, UserID: "user1", Points: 7},
		{CreatedAt: base, UserID: "user2", Points: 31},
		{CreatedAt: base, UserID: "user3", Points: 7},
		{CreatedAt: base, UserID: "user4", Points: 0},
		{CreatedAt: base, UserID: "user5", Points: 31},
	}

	ranks := AssignRanks(entries)
	for _, a := range entries {
		for _, b := range entries {
			if a.Points > b.Points {
				require.Less(t, ranks[a.UserID], ranks[b.UserID])
			}

			if a.Points == b.Points {
				require.Equal(t, ranks[a.UserID], ranks[b.UserID])
			}
		}
	}
}
