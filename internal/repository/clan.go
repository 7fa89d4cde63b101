package repository

import (
	"context"
	"errors"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ClanRepository interface {
	Create(ctx context.Context, clan *entity.Clan) error
	GetByID(ctx context.Context, id string) (*entity.Clan, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Clan, error)
	IncreaseParticipants(ctx context.Context, id string) error

	// AddScoreByLeaderboardID bumps the aggregate score of the clan owning
	// the given leaderboard. It is a no-op when the leaderboard belongs to
	// a campaign instead.
	AddScoreByLeaderboardID(ctx context.Context, leaderboardID string, delta int64) error
}

type clanRepository struct{}

func NewClanRepository() *clanRepository {
	return &clanRepository{}
}

func (r *clanRepository) Create(ctx context.Context, clan *entity.Clan) error {
	return xcontext.DB(ctx).Create(clan).Error
}

func (r *clanRepository) GetByID(ctx context.Context, id string) (*entity.Clan, error) {
	var result entity.Clan
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *clanRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Clan, error) {
	var result []entity.Clan
	err := xcontext.DB(ctx).
		Order("score DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clanRepository) IncreaseParticipants(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Clan{}).
		Where("id=?", id).
		Update("participants", gorm.Expr("participants+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *clanRepository) AddScoreByLeaderboardID(
	ctx context.Context, leaderboardID string, delta int64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Clan{}).
		Where("leaderboard_id=?", leaderboardID).
		Update("score", gorm.Expr("score+?", delta)).Error
}
