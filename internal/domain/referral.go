package domain

import (
	"context"
	"errors"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralDomain interface {
	Create(ctx context.Context, req *model.CreateReferralRequest) (*model.CreateReferralResponse, error)

	// CreditIfPending rewards the referrer once the referred user performed
	// a qualifying action. It is idempotent: with nothing pending it
	// succeeds without effect.
	CreditIfPending(ctx context.Context, req *model.CreditReferralRequest) (*model.CreditReferralResponse, error)
}

type referralDomain struct {
	referralRepo      repository.ReferralRepository
	userRepo          repository.UserRepository
	rewardHistoryRepo repository.RewardHistoryRepository
}

func NewReferralDomain(
	referralRepo repository.ReferralRepository,
	userRepo repository.UserRepository,
	rewardHistoryRepo repository.RewardHistoryRepository,
) *referralDomain {
	return &referralDomain{
		referralRepo:      referralRepo,
		userRepo:          userRepo,
		rewardHistoryRepo: rewardHistoryRepo,
	}
}

func (d *referralDomain) Create(
	ctx context.Context, req *model.CreateReferralRequest,
) (*model.CreateReferralResponse, error) {
	referredUserID := req.ReferredUserID
	if referredUserID == "" {
		referredUserID = xcontext.RequestUserID(ctx)
	}

	if referredUserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty referred user")
	}

	if req.ReferralCode == "" {
		return nil, errorx.New(errorx.InvalidReferralCode, "Invalid referral code")
	}

	referrer, err := d.userRepo.GetByReferralCode(ctx, req.ReferralCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidReferralCode, "Invalid referral code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
		return nil, errorx.Unknown
	}

	if !referrer.IsActive {
		return nil, errorx.New(errorx.InvalidReferralCode, "Invalid referral code")
	}

	if referrer.ID == referredUserID {
		return nil, errorx.New(errorx.SelfReferral, "You cannot refer yourself")
	}

	if _, err := d.referralRepo.GetByReferredUserID(ctx, referredUserID); err == nil {
		return nil, errorx.New(errorx.AlreadyReferred, "This user was already referred")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get referral: %v", err)
		return nil, errorx.Unknown
	}

	referral := &entity.Referral{
		Base:           entity.Base{ID: uuid.NewString()},
		ReferrerUserID: referrer.ID,
		ReferredUserID: referredUserID,
		Code:           req.ReferralCode,
		RewardGiven:    false,
	}

	if err := d.referralRepo.Create(ctx, referral); err != nil {
		if isDuplicateError(err) {
			return nil, errorx.New(errorx.AlreadyReferred, "This user was already referred")
		}

		xcontext.Logger(ctx).Errorf("Cannot create referral: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateReferralResponse{Referral: model.ConvertReferral(referral)}, nil
}

func (d *referralDomain) CreditIfPending(
	ctx context.Context, req *model.CreditReferralRequest,
) (*model.CreditReferralResponse, error) {
	if req.ReferredUserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty referred user")
	}

	referral, err := d.referralRepo.GetByReferredUserID(ctx, req.ReferredUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Duplicate triggers are expected, not exceptional.
			return &model.CreditReferralResponse{Credited: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get referral: %v", err)
		return nil, errorx.Unknown
	}

	if referral.RewardGiven {
		return &model.CreditReferralResponse{Credited: false}, nil
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Compare-and-set on reward_given keeps concurrent duplicate triggers
	// from crediting twice; only the winner appends the ledger row.
	credited, err := d.referralRepo.MarkRewarded(ctx, referral.ID, req.ActionID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark referral as rewarded: %v", err)
		return nil, errorx.Unknown
	}

	if !credited {
		return &model.CreditReferralResponse{Credited: false}, nil
	}

	cfg := xcontext.Configs(ctx).Campaign
	reward := &entity.RewardHistory{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     referral.ReferrerUserID,
		CampaignID: cfg.ReferralCampaignID,
		Amount:     cfg.ReferralRewardPoints,
		Reason:     entity.RewardReasonReferral,
	}

	if err := d.rewardHistoryRepo.Create(ctx, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward history: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreditReferralResponse{Credited: true}, nil
}
