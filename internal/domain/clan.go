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

type ClanDomain interface {
	Create(ctx context.Context, req *model.CreateClanRequest) (*model.CreateClanResponse, error)
	GetByID(ctx context.Context, req *model.GetClanRequest) (*model.GetClanResponse, error)
	GetList(ctx context.Context, req *model.GetClansRequest) (*model.GetClansResponse, error)
	Join(ctx context.Context, req *model.JoinClanRequest) (*model.JoinClanResponse, error)
}

type clanDomain struct {
	clanRepo        repository.ClanRepository
	campaignRepo    repository.CampaignRepository
	participantRepo repository.ParticipantRepository
	leaderboardRepo repository.LeaderboardRepository
	userRepo        repository.UserRepository
	redisClient     xredis.Client
}

func NewClanDomain(
	clanRepo repository.ClanRepository,
	campaignRepo repository.CampaignRepository,
	participantRepo repository.ParticipantRepository,
	leaderboardRepo repository.LeaderboardRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *clanDomain {
	return &clanDomain{
		clanRepo:        clanRepo,
		campaignRepo:    campaignRepo,
		participantRepo: participantRepo,
		leaderboardRepo: leaderboardRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
	}
}

func (d *clanDomain) Create(
	ctx context.Context, req *model.CreateClanRequest,
) (*model.CreateClanResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	campaignID := sql.NullString{}
	if req.CampaignID != "" {
		if _, err := d.campaignRepo.GetByID(ctx, req.CampaignID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found campaign")
			}

			xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
			return nil, errorx.Unknown
		}

		campaignID = sql.NullString{String: req.CampaignID, Valid: true}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	leaderboard := &entity.Leaderboard{Base: entity.Base{ID: uuid.NewString()}}
	if err := d.leaderboardRepo.Create(ctx, leaderboard); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	clan := &entity.Clan{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         req.Title,
		Description:   req.Description,
		Banner:        req.Banner,
		CampaignID:    campaignID,
		Status:        true,
		LeaderboardID: leaderboard.ID,
	}

	if err := d.clanRepo.Create(ctx, clan); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create clan: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateClanResponse{Clan: model.ConvertClan(clan)}, nil
}

func (d *clanDomain) GetByID(
	ctx context.Context, req *model.GetClanRequest,
) (*model.GetClanResponse, error) {
	clan, err := d.clanRepo.GetByID(ctx, req.ClanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found clan")
		}

		xcontext.Logger(ctx).Errorf("Cannot get clan: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetClanResponse{Clan: model.ConvertClan(clan)}, nil
}

func (d *clanDomain) GetList(
	ctx context.Context, req *model.GetClansRequest,
) (*model.GetClansResponse, error) {
	offset, limit, err := clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	clans, err := d.clanRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get clan list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetClansResponse{Clans: []model.Clan{}}
	for i := range clans {
		resp.Clans = append(resp.Clans, model.ConvertClan(&clans[i]))
	}

	return resp, nil
}

func (d *clanDomain) Join(
	ctx context.Context, req *model.JoinClanRequest,
) (*model.JoinClanResponse, error) {
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

	clan, err := d.clanRepo.GetByID(ctx, req.ClanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found clan")
		}

		xcontext.Logger(ctx).Errorf("Cannot get clan: %v", err)
		return nil, errorx.Unknown
	}

	if !clan.Status {
		return nil, errorx.New(errorx.NotFound, "Not found clan")
	}

	now := time.Now()
	previousClanID := ""

	if user.ActiveClanID.Valid {
		if user.ActiveClanID.String == clan.ID {
			return nil, errorx.New(errorx.AlreadyJoined, "You already joined this clan")
		}

		cooldown := xcontext.Configs(ctx).Campaign.ClanCooldown
		if user.ClanJoinedAt.Valid && now.Sub(user.ClanJoinedAt.Time) <= cooldown {
			return nil, errorx.New(errorx.CooldownNotElapsed,
				"You can switch clan only %d days after joining", int(cooldown.Hours()/24))
		}

		previousClanID = user.ActiveClanID.String
	}

	// Switching clans is an implicit leave-then-join. Everything below
	// commits together: the user pointer, the old membership marked as
	// left, and the new membership with its leaderboard entry.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if previousClanID != "" {
		if err := d.participantRepo.MarkClanParticipantLeft(ctx, previousClanID, userID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot mark old clan membership as left: %v", err)
				return nil, errorx.Unknown
			}
		}
	}

	// The guard on the previously observed clan is what keeps two racing
	// joins for the same user from both committing an active membership.
	if err := d.userRepo.UpdateActiveClan(ctx, userID, previousClanID, clan.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Conflict, "Your clan membership has just changed, try again")
		}

		xcontext.Logger(ctx).Errorf("Cannot update active clan: %v", err)
		return nil, errorx.Unknown
	}

	participant := &entity.ClanParticipant{
		ClanID:   clan.ID,
		UserID:   userID,
		JoinedAt: now,
		Status:   entity.ParticipantActive,
	}

	if err := d.participantRepo.UpsertClanParticipant(ctx, participant); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert clan participant: %v", err)
		return nil, errorx.Unknown
	}

	// A user rejoining a clan left earlier keeps the old entry and its
	// points; only a first join creates a fresh zero-point entry.
	_, err = d.leaderboardRepo.GetEntry(ctx, clan.LeaderboardID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry := &entity.LeaderboardEntry{
			LeaderboardID: clan.LeaderboardID,
			UserID:        userID,
			UserName:      user.Name,
			Points:        0,
		}

		if err := d.leaderboardRepo.CreateEntry(ctx, entry); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create leaderboard entry: %v", err)
			return nil, errorx.Unknown
		}

		if err := recomputeRanks(ctx, d.leaderboardRepo, clan.LeaderboardID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot recompute ranks: %v", err)
			return nil, errorx.Unknown
		}
	} else if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.clanRepo.IncreaseParticipants(ctx, clan.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase clan participants: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	invalidateLeaderboardCache(ctx, d.redisClient, clan.LeaderboardID)

	return &model.JoinClanResponse{
		ClanID:   clan.ID,
		UserID:   userID,
		JoinedAt: now.Format(time.RFC3339),
	}, nil
}
