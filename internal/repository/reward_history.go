package repository

import (
	"context"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
)

type RewardHistoryRepository interface {
	Create(ctx context.Context, reward *entity.RewardHistory) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.RewardHistory, error)
}

type rewardHistoryRepository struct{}

func NewRewardHistoryRepository() *rewardHistoryRepository {
	return &rewardHistoryRepository{}
}

func (r *rewardHistoryRepository) Create(ctx context.Context, reward *entity.RewardHistory) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardHistoryRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.RewardHistory, error) {
	var result []entity.RewardHistory
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
