package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestClanDomain() *clanDomain {
	return NewClanDomain(
		repository.NewClanRepository(),
		repository.NewCampaignRepository(),
		repository.NewParticipantRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewUserRepository(),
		&testutil.MockRedisClient{},
	)
}

func Test_clanDomain_Create(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	clanDomain := newTestClanDomain()

	_, err := clanDomain.Create(ctx, &model.CreateClanRequest{})
	require.Equal(t, "Not allow empty title", err.Error())

	_, err = clanDomain.Create(ctx, &model.CreateClanRequest{
		Title:      "Orphan",
		CampaignID: "invalid",
	})
	require.Equal(t, "Not found campaign", err.Error())

	// A standalone clan has no campaign.
	standalone, err := clanDomain.Create(ctx, &model.CreateClanRequest{Title: "Standalone"})
	require.NoError(t, err)
	require.Empty(t, standalone.Clan.CampaignID)
	require.NotEmpty(t, standalone.Clan.LeaderboardID)

	// A campaign clan records its parent.
	attached, err := clanDomain.Create(ctx, &model.CreateClanRequest{
		Title:      "Attached",
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Campaign1.ID, attached.Clan.CampaignID)

	got, err := clanDomain.GetByID(ctx, &model.GetClanRequest{ClanID: standalone.Clan.ID})
	require.NoError(t, err)
	require.Equal(t, "Standalone", got.Clan.Title)
}

func Test_clanDomain_Join(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	clanDomain := newTestClanDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	resp, err := clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Clan1.ID, resp.ClanID)

	userRepo := repository.NewUserRepository()
	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Clan1.ID, user.ActiveClanID.String)
	require.True(t, user.ClanJoinedAt.Valid)

	participantRepo := repository.NewParticipantRepository()
	participant, err := participantRepo.GetClanParticipant(ctx, testutil.Clan1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantActive, participant.Status)

	leaderboardRepo := repository.NewLeaderboardRepository()
	entry, err := leaderboardRepo.GetEntry(ctx, testutil.Clan1.LeaderboardID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), entry.Points)
	require.Equal(t, uint64(1), entry.Rank)

	clanRepo := repository.NewClanRepository()
	clan, err := clanRepo.GetByID(ctx, testutil.Clan1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, clan.Participants)

	// Joining the active clan again is rejected.
	_, err = clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.Equal(t, "You already joined this clan", err.Error())

	_, err = clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: "invalid"})
	require.Equal(t, "Not found clan", err.Error())

	_, err = clanDomain.Join(ctx, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.Equal(t, "You need to authenticate before", err.Error())
}

func Test_clanDomain_Join_cooldown(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	clanDomain := newTestClanDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.NoError(t, err)

	// Ten days in is too early to switch.
	userRepo := repository.NewUserRepository()
	err = userRepo.UpdateActiveClan(
		ctx, testutil.User1.ID, testutil.Clan1.ID, testutil.Clan1.ID, time.Now().Add(-10*24*time.Hour))
	require.NoError(t, err)

	_, err = clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan2.ID})
	require.Equal(t, "You can switch clan only 30 days after joining", err.Error())

	// After 31 days the switch goes through.
	err = userRepo.UpdateActiveClan(
		ctx, testutil.User1.ID, testutil.Clan1.ID, testutil.Clan1.ID, time.Now().Add(-31*24*time.Hour))
	require.NoError(t, err)

	_, err = clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan2.ID})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Clan2.ID, user.ActiveClanID.String)

	// The old membership is kept as history, marked as left.
	participantRepo := repository.NewParticipantRepository()
	old, err := participantRepo.GetClanParticipant(ctx, testutil.Clan1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantLeft, old.Status)

	current, err := participantRepo.GetClanParticipant(ctx, testutil.Clan2.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantActive, current.Status)
}

func Test_clanDomain_Join_rejoinKeepsPoints(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	clanDomain := newTestClanDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.NoError(t, err)

	leaderboardRepo := repository.NewLeaderboardRepository()
	err = leaderboardRepo.IncreaseEntryPoints(
		ctx, testutil.Clan1.LeaderboardID, testutil.User1.ID, 40)
	require.NoError(t, err)

	// Switch away, then come back after another cooldown.
	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.UpdateActiveClan(
		ctx, testutil.User1.ID, testutil.Clan1.ID, testutil.Clan1.ID, time.Now().Add(-31*24*time.Hour)))

	_, err = clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan2.ID})
	require.NoError(t, err)

	require.NoError(t, userRepo.UpdateActiveClan(
		ctx, testutil.User1.ID, testutil.Clan2.ID, testutil.Clan2.ID, time.Now().Add(-31*24*time.Hour)))

	_, err = clanDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.NoError(t, err)

	// The entry from the first membership survives with its points.
	entry, err := leaderboardRepo.GetEntry(ctx, testutil.Clan1.LeaderboardID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(40), entry.Points)

	participantRepo := repository.NewParticipantRepository()
	participant, err := participantRepo.GetClanParticipant(ctx, testutil.Clan1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantActive, participant.Status)
}

// staleUserRepository reports no active clan no matter what the row says,
// imitating a reader whose snapshot predates another join for the same user.
type staleUserRepository struct {
	repository.UserRepository
}

func (r *staleUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := r.UserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stale := *user
	stale.ActiveClanID = sql.NullString{}
	stale.ClanJoinedAt = sql.NullTime{}
	return &stale, nil
}

func Test_clanDomain_Join_racingJoinLosesGuard(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := newTestClanDomain().Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan1.ID})
	require.NoError(t, err)

	// A second join reading through a stale snapshot still believes the
	// user is clanless and tries to claim the membership slot again.
	staleDomain := NewClanDomain(
		repository.NewClanRepository(),
		repository.NewCampaignRepository(),
		repository.NewParticipantRepository(),
		repository.NewLeaderboardRepository(),
		&staleUserRepository{repository.NewUserRepository()},
		&testutil.MockRedisClient{},
	)

	_, err = staleDomain.Join(ctxUser1, &model.JoinClanRequest{ClanID: testutil.Clan2.ID})
	require.Equal(t, "Your clan membership has just changed, try again", err.Error())

	// The losing join rolls back completely.
	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Clan1.ID, user.ActiveClanID.String)

	_, err = repository.NewParticipantRepository().
		GetClanParticipant(ctx, testutil.Clan2.ID, testutil.User1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repository.NewLeaderboardRepository().
		GetEntry(ctx, testutil.Clan2.LeaderboardID, testutil.User1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
