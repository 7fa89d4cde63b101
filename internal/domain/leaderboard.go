package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/xcontext"
	"github.com/clanbase/backend/pkg/xredis"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = 30 * time.Second

type LeaderboardDomain interface {
	AwardPoints(ctx context.Context, req *model.AwardPointsRequest) (*model.AwardPointsResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type leaderboardDomain struct {
	leaderboardRepo repository.LeaderboardRepository
	campaignRepo    repository.CampaignRepository
	clanRepo        repository.ClanRepository
	redisClient     xredis.Client
}

func NewLeaderboardDomain(
	leaderboardRepo repository.LeaderboardRepository,
	campaignRepo repository.CampaignRepository,
	clanRepo repository.ClanRepository,
	redisClient xredis.Client,
) *leaderboardDomain {
	return &leaderboardDomain{
		leaderboardRepo: leaderboardRepo,
		campaignRepo:    campaignRepo,
		clanRepo:        clanRepo,
		redisClient:     redisClient,
	}
}

func (d *leaderboardDomain) AwardPoints(
	ctx context.Context, req *model.AwardPointsRequest,
) (*model.AwardPointsResponse, error) {
	if req.LeaderboardID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty leaderboard id")
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if req.Points <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Points delta must be positive")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The lock over this board's entries serializes concurrent awards, so
	// the committed ranks always match the committed points.
	entries, err := d.leaderboardRepo.GetEntriesForUpdate(ctx, req.LeaderboardID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock leaderboard entries: %v", err)
		return nil, errorx.Unknown
	}

	found := -1
	for i := range entries {
		if entries[i].UserID == req.UserID {
			found = i
			break
		}
	}

	if found == -1 {
		return nil, errorx.New(errorx.NotFound, "User is not in this leaderboard")
	}

	if err := d.leaderboardRepo.IncreaseEntryPoints(ctx, req.LeaderboardID, req.UserID, req.Points); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User is not in this leaderboard")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase points: %v", err)
		return nil, errorx.Unknown
	}

	entries[found].Points += req.Points
	if err := persistRanks(ctx, d.leaderboardRepo, req.LeaderboardID, entries); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist ranks: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.clanRepo.AddScoreByLeaderboardID(ctx, req.LeaderboardID, req.Points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add clan score: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	invalidateLeaderboardCache(ctx, d.redisClient, req.LeaderboardID)

	ranks := AssignRanks(entries)
	resp := model.ConvertLeaderboardEntry(&entries[found])
	resp.Rank = ranks[req.UserID]

	return &model.AwardPointsResponse{Entry: resp}, nil
}

func (d *leaderboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	leaderboardID, err := d.resolveLeaderboardID(ctx, req)
	if err != nil {
		return nil, err
	}

	offset, limit, err := clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	page, err := d.loadPage(ctx, leaderboardID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &model.GetLeaderboardResponse{Entries: page}

	if userID := xcontext.RequestUserID(ctx); userID != "" {
		entry, err := d.leaderboardRepo.GetEntry(ctx, leaderboardID, userID)
		if err == nil {
			myEntry := model.ConvertLeaderboardEntry(entry)
			resp.MyEntry = &myEntry
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get requester entry: %v", err)
			return nil, errorx.Unknown
		}
	}

	return resp, nil
}

func (d *leaderboardDomain) resolveLeaderboardID(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (string, error) {
	switch {
	case req.LeaderboardID != "":
		if _, err := d.leaderboardRepo.GetByID(ctx, req.LeaderboardID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", errorx.New(errorx.NotFound, "Not found leaderboard")
			}

			xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
			return "", errorx.Unknown
		}

		return req.LeaderboardID, nil

	case req.CampaignID != "":
		campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", errorx.New(errorx.NotFound, "Not found campaign")
			}

			xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
			return "", errorx.Unknown
		}

		return campaign.LeaderboardID, nil

	case req.ClanID != "":
		clan, err := d.clanRepo.GetByID(ctx, req.ClanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", errorx.New(errorx.NotFound, "Not found clan")
			}

			xcontext.Logger(ctx).Errorf("Cannot get clan: %v", err)
			return "", errorx.Unknown
		}

		return clan.LeaderboardID, nil

	default:
		return "", errorx.New(errorx.BadRequest, "Need a leaderboard, campaign, or clan id")
	}
}

func (d *leaderboardDomain) loadPage(
	ctx context.Context, leaderboardID string, offset, limit int,
) ([]model.LeaderboardEntry, error) {
	key := leaderboardPageKey(leaderboardID, offset, limit)

	if d.redisClient != nil {
		var cached []model.LeaderboardEntry
		if err := d.redisClient.GetObj(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := d.leaderboardRepo.GetEntries(ctx, leaderboardID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard entries: %v", err)
		return nil, errorx.Unknown
	}

	page := []model.LeaderboardEntry{}
	for i := range entries {
		page = append(page, model.ConvertLeaderboardEntry(&entries[i]))
	}

	if d.redisClient != nil {
		if err := d.redisClient.SetObj(ctx, key, page, leaderboardCacheTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache leaderboard page: %v", err)
		}
	}

	return page, nil
}

func leaderboardPageKey(leaderboardID string, offset, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d:%d", leaderboardID, offset, limit)
}

// invalidateLeaderboardCache drops every cached page of the board. Failures
// are logged only: the cache expires on its own shortly after.
func invalidateLeaderboardCache(ctx context.Context, redisClient xredis.Client, leaderboardID string) {
	if redisClient == nil {
		return
	}

	keys, err := redisClient.Keys(ctx, fmt.Sprintf("leaderboard:%s:*", leaderboardID))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot list leaderboard cache keys: %v", err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard cache: %v", err)
	}
}
