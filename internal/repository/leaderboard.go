package repository

import (
	"context"
	"errors"

	"github.com/clanbase/backend/internal/entity"
	"github.com/clanbase/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository interface {
	Create(ctx context.Context, leaderboard *entity.Leaderboard) error
	GetByID(ctx context.Context, id string) (*entity.Leaderboard, error)

	GetEntry(ctx context.Context, leaderboardID, userID string) (*entity.LeaderboardEntry, error)
	GetEntries(ctx context.Context, leaderboardID string, offset, limit int) ([]entity.LeaderboardEntry, error)

	// GetEntriesForUpdate loads every entry of one leaderboard under a row
	// lock, ordered by points descending with creation time then user id
	// breaking ties. Callers must hold an open transaction.
	GetEntriesForUpdate(ctx context.Context, leaderboardID string) ([]entity.LeaderboardEntry, error)

	CreateEntry(ctx context.Context, entry *entity.LeaderboardEntry) error
	IncreaseEntryPoints(ctx context.Context, leaderboardID, userID string, delta int64) error
	UpdateEntryRank(ctx context.Context, leaderboardID, userID string, rank uint64) error
}

type leaderboardRepository struct{}

func NewLeaderboardRepository() *leaderboardRepository {
	return &leaderboardRepository{}
}

func (r *leaderboardRepository) Create(ctx context.Context, leaderboard *entity.Leaderboard) error {
	return xcontext.DB(ctx).Create(leaderboard).Error
}

func (r *leaderboardRepository) GetByID(ctx context.Context, id string) (*entity.Leaderboard, error) {
	var result entity.Leaderboard
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *leaderboardRepository) GetEntry(
	ctx context.Context, leaderboardID, userID string,
) (*entity.LeaderboardEntry, error) {
	var result entity.LeaderboardEntry
	err := xcontext.DB(ctx).
		Where("leaderboard_id=? AND user_id=?", leaderboardID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *leaderboardRepository) GetEntries(
	ctx context.Context, leaderboardID string, offset, limit int,
) ([]entity.LeaderboardEntry, error) {
	var result []entity.LeaderboardEntry
	err := xcontext.DB(ctx).
		Where("leaderboard_id=?", leaderboardID).
		Order("points DESC, created_at ASC, user_id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *leaderboardRepository) GetEntriesForUpdate(
	ctx context.Context, leaderboardID string,
) ([]entity.LeaderboardEntry, error) {
	tx := xcontext.DB(ctx)
	// sqlite locks the whole database per transaction and rejects FOR UPDATE.
	if tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var result []entity.LeaderboardEntry
	err := tx.
		Where("leaderboard_id=?", leaderboardID).
		Order("points DESC, created_at ASC, user_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *leaderboardRepository) CreateEntry(ctx context.Context, entry *entity.LeaderboardEntry) error {
	return xcontext.DB(ctx).Create(entry).Error
}

func (r *leaderboardRepository) IncreaseEntryPoints(
	ctx context.Context, leaderboardID, userID string, delta int64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.LeaderboardEntry{}).
		Where("leaderboard_id=? AND user_id=?", leaderboardID, userID).
		Update("points", gorm.Expr("points+?", delta))

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

func (r *leaderboardRepository) UpdateEntryRank(
	ctx context.Context, leaderboardID, userID string, rank uint64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.LeaderboardEntry{}).
		Where("leaderboard_id=? AND user_id=?", leaderboardID, userID).
		Update("rank", rank).Error
}
