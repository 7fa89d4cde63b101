package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCampaignDomain() *campaignDomain {
	return NewCampaignDomain(
		repository.NewCampaignRepository(),
		repository.NewClanRepository(),
		repository.NewParticipantRepository(),
		repository.NewLeaderboardRepository(),
		repository.NewUserRepository(),
		&testutil.MockRedisClient{},
	)
}

func Test_campaignDomain_Create(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	campaignDomain := newTestCampaignDomain()

	// Cannot create without a title.
	_, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{})
	require.Equal(t, "Not allow empty title", err.Error())

	// Cannot end before it starts.
	_, err = campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:     "Backwards",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(-time.Hour),
	})
	require.Equal(t, "End date must not be before start date", err.Error())

	// Create successfully with an attached leaderboard.
	resp, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:     "Summer Campaign",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Campaign.ID)
	require.NotEmpty(t, resp.Campaign.LeaderboardID)
	require.True(t, resp.Campaign.Status)

	leaderboardRepo := repository.NewLeaderboardRepository()
	_, err = leaderboardRepo.GetByID(ctx, resp.Campaign.LeaderboardID)
	require.NoError(t, err)

	got, err := campaignDomain.GetByID(ctx, &model.GetCampaignRequest{CampaignID: resp.Campaign.ID})
	require.NoError(t, err)
	require.Equal(t, "Summer Campaign", got.Campaign.Title)

	list, err := campaignDomain.GetList(ctx, &model.GetCampaignsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Campaigns, 2)
}

func Test_campaignDomain_Join(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	campaignDomain := newTestCampaignDomain()

	// Join successfully with a zero-point entry at rank 1.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.UserID)

	leaderboardRepo := repository.NewLeaderboardRepository()
	entry, err := leaderboardRepo.GetEntry(ctx, testutil.Campaign1.LeaderboardID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), entry.Points)
	require.Equal(t, uint64(1), entry.Rank)
	require.Equal(t, testutil.User1.Name, entry.UserName)

	campaignRepo := repository.NewCampaignRepository()
	campaign, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, campaign.Participants)

	// Cannot join the same campaign twice.
	_, err = campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.Equal(t, "You already joined this campaign", err.Error())

	// Cannot join anonymously.
	_, err = campaignDomain.Join(ctx, &model.JoinCampaignRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.Equal(t, "You need to authenticate before", err.Error())

	// Cannot join a campaign which does not exist.
	_, err = campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{CampaignID: "invalid"})
	require.Equal(t, "Not found campaign", err.Error())
}

func Test_campaignDomain_Join_dateWindow(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	campaignDomain := newTestCampaignDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	// An ended campaign rejects joins.
	ended, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:     "Ended",
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{CampaignID: ended.Campaign.ID})
	require.Equal(t, "Campaign is outside its date window", err.Error())

	// One not yet started does too.
	upcoming, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:     "Upcoming",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	_, err = campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{CampaignID: upcoming.Campaign.ID})
	require.Equal(t, "Campaign is outside its date window", err.Error())

	// A deactivated campaign rejects joins even inside its window.
	leaderboardRepo := repository.NewLeaderboardRepository()
	leaderboard := &entity.Leaderboard{Base: entity.Base{ID: "leaderboard-inactive"}}
	require.NoError(t, leaderboardRepo.Create(ctx, leaderboard))

	campaignRepo := repository.NewCampaignRepository()
	require.NoError(t, campaignRepo.Create(ctx, &entity.Campaign{
		Base:          entity.Base{ID: "campaign-inactive"},
		Title:         "Inactive",
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		Status:        false,
		LeaderboardID: leaderboard.ID,
	}))

	_, err = campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{CampaignID: "campaign-inactive"})
	require.Equal(t, "Campaign is not active", err.Error())
}

func Test_campaignDomain_Join_withClan(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	campaignDomain := newTestCampaignDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	// Clan1 is standalone, it belongs to no campaign.
	_, err := campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{
		CampaignID: testutil.Campaign1.ID,
		ClanID:     testutil.Clan1.ID,
	})
	require.Equal(t, "Clan does not belong to this campaign", err.Error())

	// A clan of this campaign is accepted and recorded on the membership.
	clanDomain := newTestClanDomain()
	clan, err := clanDomain.Create(ctx, &model.CreateClanRequest{
		Title:      "Campaign Clan",
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)

	resp, err := campaignDomain.Join(ctxUser1, &model.JoinCampaignRequest{
		CampaignID: testutil.Campaign1.ID,
		ClanID:     clan.Clan.ID,
	})
	require.NoError(t, err)
	require.Equal(t, clan.Clan.ID, resp.ClanID)

	participantRepo := repository.NewParticipantRepository()
	participant, err := participantRepo.GetCampaignParticipant(ctx, testutil.Campaign1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, clan.Clan.ID, participant.ClanID.String)
}

func Test_campaignDomain_Join_rollsBackOnEntryConflict(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	campaignDomain := newTestCampaignDomain()

	// A leftover entry on the campaign leaderboard makes the entry insert
	// fail after the membership insert succeeded. Nothing may survive.
	leaderboardRepo := repository.NewLeaderboardRepository()
	require.NoError(t, leaderboardRepo.CreateEntry(ctx, &entity.LeaderboardEntry{
		LeaderboardID: testutil.Campaign1.LeaderboardID,
		UserID:        testutil.User2.ID,
		UserName:      testutil.User2.Name,
	}))

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := campaignDomain.Join(ctxUser2, &model.JoinCampaignRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.Equal(t, "You are already on this leaderboard", err.Error())

	participantRepo := repository.NewParticipantRepository()
	_, err = participantRepo.GetCampaignParticipant(ctx, testutil.Campaign1.ID, testutil.User2.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	campaignRepo := repository.NewCampaignRepository()
	campaign, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, campaign.Participants)
}
