package repository

import (
	"context"
	"database/sql"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *entity.Referral) error
	GetByReferredUserID(ctx context.Context, referredUserID string) (*entity.Referral, error)

	// MarkRewarded flips reward_given to true only if it is still false,
	// and reports whether this call won the flip. Concurrent duplicate
	// triggers therefore credit at most once.
	MarkRewarded(ctx context.Context, referralID, actionID string) (bool, error)
}

type referralRepository struct{}

func NewReferralRepository() *referralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(ctx context.Context, referral *entity.Referral) error {
	return xcontext.DB(ctx).Create(referral).Error
}

func (r *referralRepository) GetByReferredUserID(
	ctx context.Context, referredUserID string,
) (*entity.Referral, error) {
	var result entity.Referral
	err := xcontext.DB(ctx).
		Where("referred_user_id=?", referredUserID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *referralRepository) MarkRewarded(
	ctx context.Context, referralID, actionID string,
) (bool, error) {
	updates := map[string]any{"reward_given": true}
	if actionID != "" {
		updates["action_id"] = sql.NullString{String: actionID, Valid: true}
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Referral{}).
		Where("id=? AND reward_given=?", referralID, false).
		Updates(updates)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
