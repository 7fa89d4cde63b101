package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// UpdateActiveClan moves the user's clan pointer, but only while the
	// pointer still matches previousClanID (empty means no active clan).
	// It returns gorm.ErrRecordNotFound when another writer got there
	// first.
	UpdateActiveClan(ctx context.Context, userID, previousClanID, clanID string, joinedAt time.Time) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Where("referral_code=?", code).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateActiveClan(
	ctx context.Context, userID, previousClanID, clanID string, joinedAt time.Time,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", userID)

	// The update succeeds only if the active clan is still the one the
	// caller observed, so racing joins for the same user cannot both win.
	if previousClanID == "" {
		tx = tx.Where("active_clan_id IS NULL")
	} else {
		tx = tx.Where("active_clan_id=?", previousClanID)
	}

	tx = tx.Updates(map[string]any{
		"active_clan_id": sql.NullString{String: clanID, Valid: true},
		"clan_joined_at": sql.NullTime{Time: joinedAt, Valid: true},
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
