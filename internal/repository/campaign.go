package repository

import (
	"context"
	"errors"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Campaign, error)
	IncreaseParticipants(ctx context.Context, id string) error
}

type campaignRepository struct{}

func NewCampaignRepository() *campaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	return xcontext.DB(ctx).Create(campaign).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	var result entity.Campaign
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Campaign, error) {
	var result []entity.Campaign
	err := xcontext.DB(ctx).
		Order("start_date DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignRepository) IncreaseParticipants(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Campaign{}).
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
