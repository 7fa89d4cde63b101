package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/xcontext"
	"github.com/clanbase/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignDomain interface {
	Create(ctx context.Context, req *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	GetByID(ctx context.Context, req *model.GetCampaignRequest) (*model.GetCampaignResponse, error)
	GetList(ctx context.Context, req *model.GetCampaignsRequest) (*model.GetCampaignsResponse, error)
	Join(ctx context.Context, req *model.JoinCampaignRequest) (*model.JoinCampaignResponse, error)
}

type campaignDomain struct {
	campaignRepo    repository.CampaignRepository
	clanRepo        repository.ClanRepository
	participantRepo repository.ParticipantRepository
	leaderboardRepo repository.LeaderboardRepository
	userRepo        repository.UserRepository
	redisClient     xredis.Client
}

func NewCampaignDomain(
	campaignRepo repository.CampaignRepository,
	clanRepo repository.ClanRepository,
	participantRepo repository.ParticipantRepository,
	leaderboardRepo repository.LeaderboardRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *campaignDomain {
	return &campaignDomain{
		campaignRepo:    campaignRepo,
		clanRepo:        clanRepo,
		participantRepo: participantRepo,
		leaderboardRepo: leaderboardRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
	}
}

func (d *campaignDomain) Create(
	ctx context.Context, req *model.CreateCampaignRequest,
) (*model.CreateCampaignResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, errorx.New(errorx.BadRequest, "End date must not be before start date")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The leaderboard belongs to this campaign alone and is created in the
	// same transaction.
	leaderboard := &entity.Leaderboard{Base: entity.Base{ID: uuid.NewString()}}
	if err := d.leaderboardRepo.Create(ctx, leaderboard); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	campaign := &entity.Campaign{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         req.Title,
		Description:   req.Description,
		Banner:        req.Banner,
		RewardPool:    req.RewardPool,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        true,
		LeaderboardID: leaderboard.ID,
	}

	if err := d.campaignRepo.Create(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateCampaignResponse{Campaign: model.ConvertCampaign(campaign)}, nil
}

func (d *campaignDomain) GetByID(
	ctx context.Context, req *model.GetCampaignRequest,
) (*model.GetCampaignResponse, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCampaignResponse{Campaign: model.ConvertCampaign(campaign)}, nil
}

func (d *campaignDomain) GetList(
	ctx context.Context, req *model.GetCampaignsRequest,
) (*model.GetCampaignsResponse, error) {
	offset, limit, err := clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	campaigns, err := d.campaignRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetCampaignsResponse{Campaigns: []model.Campaign{}}
	for i := range campaigns {
		resp.Campaigns = append(resp.Campaigns, model.ConvertCampaign(&campaigns[i]))
	}

	return resp, nil
}

func (d *campaignDomain) Join(
	ctx context.Context, req *model.JoinCampaignRequest,
) (*model.JoinCampaignResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	if !campaign.Status {
		return nil, errorx.New(errorx.InactiveCampaign, "Campaign is not active")
	}

	now := time.Now()
	if !campaign.IsOpenAt(now) {
		return nil, errorx.New(errorx.OutsideDateWindow, "Campaign is outside its date window")
	}

	if _, err := d.participantRepo.GetCampaignParticipant(ctx, campaign.ID, userID); err == nil {
		return nil, errorx.New(errorx.AlreadyJoined, "You already joined this campaign")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get campaign participant: %v", err)
		return nil, errorx.Unknown
	}

	clanID := sql.NullString{}
	if req.ClanID != "" {
		clan, err := d.clanRepo.GetByID(ctx, req.ClanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found clan")
			}

			xcontext.Logger(ctx).Errorf("Cannot get clan: %v", err)
			return nil, errorx.Unknown
		}

		if !clan.CampaignID.Valid || clan.CampaignID.String != campaign.ID {
			return nil, errorx.New(errorx.InvalidClanInCampaign, "Clan does not belong to this campaign")
		}

		clanID = sql.NullString{String: clan.ID, Valid: true}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	participant := &entity.CampaignParticipant{
		CampaignID: campaign.ID,
		UserID:     userID,
		ClanID:     clanID,
		Status:     entity.ParticipantActive,
	}

	if err := d.participantRepo.CreateCampaignParticipant(ctx, participant); err != nil {
		if isDuplicateError(err) {
			return nil, errorx.New(errorx.Conflict, "You already joined this campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot create campaign participant: %v", err)
		return nil, errorx.Unknown
	}

	entry := &entity.LeaderboardEntry{
		LeaderboardID: campaign.LeaderboardID,
		UserID:        userID,
		UserName:      user.Name,
		Points:        0,
	}

	if err := d.leaderboardRepo.CreateEntry(ctx, entry); err != nil {
		if isDuplicateError(err) {
			return nil, errorx.New(errorx.Conflict, "You are already on this leaderboard")
		}

		xcontext.Logger(ctx).Errorf("Cannot create leaderboard entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := recomputeRanks(ctx, d.leaderboardRepo, campaign.LeaderboardID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recompute ranks: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.campaignRepo.IncreaseParticipants(ctx, campaign.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase campaign participants: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	invalidateLeaderboardCache(ctx, d.redisClient, campaign.LeaderboardID)

	return &model.JoinCampaignResponse{
		CampaignID: campaign.ID,
		UserID:     userID,
		ClanID:     req.ClanID,
		JoinedAt:   now.Format(time.RFC3339),
	}, nil
}
