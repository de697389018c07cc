package repository

import (
	"context"

	"gorm.io/gorm"

	"nfl-fantasy/backend/internal/model"
	apperrors "nfl-fantasy/backend/pkg/errors"
)

// PlayerRepository 球员数据访问接口
type PlayerRepository interface {
	Create(ctx context.Context, player *model.Player) error
	GetByID(ctx context.Context, id string) (*model.Player, error)
	List(ctx context.Context) ([]model.Player, error)
	// Update 带乐观锁更新：version 不匹配时返回 ErrOptimisticLock
	Update(ctx context.Context, player *model.Player) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type playerRepo struct {
	db *gorm.DB
}

// NewPlayerRepo 创建 PlayerRepository 实例
func NewPlayerRepo(db *gorm.DB) PlayerRepository {
	return &playerRepo{db: db}
}

func (r *playerRepo) Create(ctx context.Context, player *model.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *playerRepo) GetByID(ctx context.Context, id string) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).
		Where("player_id = ?", id).
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepo) List(ctx context.Context) ([]model.Player, error) {
	var players []model.Player
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&players).Error
	return players, err
}

func (r *playerRepo) Update(ctx context.Context, player *model.Player) error {
	result := r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("player_id = ? AND version = ?", player.PlayerID, player.Version).
		Updates(map[string]interface{}{
			"name":       player.Name,
			"position":   player.Position,
			"team":       player.Team,
			"updated_by": player.UpdatedBy,
			"updated_at": gorm.Expr("NOW()"),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	player.Version++
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("player_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
