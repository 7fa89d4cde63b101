package domain

import (
	"context"
	"errors"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/crypto"
	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetRewardHistory(ctx context.Context, req *model.GetRewardHistoryRequest) (*model.GetRewardHistoryResponse, error)
}

type userDomain struct {
	userRepo          repository.UserRepository
	rewardHistoryRepo repository.RewardHistoryRepository
	referralDomain    ReferralDomain
}

func NewUserDomain(
	userRepo repository.UserRepository,
	rewardHistoryRepo repository.RewardHistoryRepository,
	referralDomain ReferralDomain,
) *userDomain {
	return &userDomain{
		userRepo:          userRepo,
		rewardHistoryRepo: rewardHistoryRepo,
		referralDomain:    referralDomain,
	}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         req.Name,
		ReferralCode: crypto.GenerateRandomAlphabet(xcontext.Configs(ctx).Campaign.ReferralCodeLength),
		IsActive:     true,
	}

	// The user row and its referral link commit together, so a rejected
	// referral code leaves no half-registered user behind.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, errorx.New(errorx.AlreadyExists, "This name is already taken")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if req.ReferralCode != "" {
		_, err := d.referralDomain.Create(ctx, &model.CreateReferralRequest{
			ReferralCode:   req.ReferralCode,
			ReferredUserID: user.ID,
		})
		if err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
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

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetRewardHistory(
	ctx context.Context, req *model.GetRewardHistoryRequest,
) (*model.GetRewardHistoryResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	offset, limit, err := clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	rewards, err := d.rewardHistoryRepo.GetListByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward history: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetRewardHistoryResponse{Rewards: []model.RewardHistory{}}
	for i := range rewards {
		resp.Rewards = append(resp.Rewards, model.ConvertRewardHistory(&rewards[i]))
	}

	return resp, nil
}
