package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantRepository interface {
	GetCampaignParticipant(ctx context.Context, campaignID, userID string) (*entity.CampaignParticipant, error)
	CreateCampaignParticipant(ctx context.Context, participant *entity.CampaignParticipant) error

	GetClanParticipant(ctx context.Context, clanID, userID string) (*entity.ClanParticipant, error)

	// UpsertClanParticipant inserts the membership row, or reactivates it
	// in place when the user rejoins a clan left earlier.
	UpsertClanParticipant(ctx context.Context, participant *entity.ClanParticipant) error

	MarkClanParticipantLeft(ctx context.Context, clanID, userID string) error
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) GetCampaignParticipant(
	ctx context.Context, campaignID, userID string,
) (*entity.CampaignParticipant, error) {
	var result entity.CampaignParticipant
	err := xcontext.DB(ctx).
		Where("campaign_id=? AND user_id=?", campaignID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) CreateCampaignParticipant(
	ctx context.Context, participant *entity.CampaignParticipant,
) error {
	return xcontext.DB(ctx).Create(participant).Error
}

func (r *participantRepository) GetClanParticipant(
	ctx context.Context, clanID, userID string,
) (*entity.ClanParticipant, error) {
	var result entity.ClanParticipant
	err := xcontext.DB(ctx).
		Where("clan_id=? AND user_id=?", clanID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) UpsertClanParticipant(
	ctx context.Context, participant *entity.ClanParticipant,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clan_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "joined_at"}),
		}).
		Create(participant).Error
}

func (r *participantRepository) MarkClanParticipantLeft(
	ctx context.Context, clanID, userID string,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.ClanParticipant{}).
		Where("clan_id=? AND user_id=?", clanID, userID).
		Updates(map[string]any{
			"status":     entity.ParticipantLeft,
			"updated_at": time.Now(),
		})

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
