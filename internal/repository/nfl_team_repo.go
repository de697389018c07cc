package repository

import (
	"context"

	"gorm.io/gorm"

	"nfl-fantasy/backend/internal/model"
)

// NflTeamRepository NFL 球队数据访问接口
type NflTeamRepository interface {
	Create(ctx context.Context, team *model.NflTeam) error
	GetByID(ctx context.Context, id string) (*model.NflTeam, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, includeInactive bool) ([]model.NflTeam, error)
}

type nflTeamRepo struct {
	db *gorm.DB
}

// NewNflTeamRepo 创建 NflTeamRepository 实例
func NewNflTeamRepo(db *gorm.DB) NflTeamRepository {
	return &nflTeamRepo{db: db}
}

func (r *nflTeamRepo) Create(ctx context.Context, team *model.NflTeam) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *nflTeamRepo) GetByID(ctx context.Context, id string) (*model.NflTeam, error) {
	var team model.NflTeam
	err := r.db.WithContext(ctx).
		Where("nfl_team_id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *nflTeamRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NflTeam{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (r *nflTeamRepo) List(ctx context.Context, includeInactive bool) ([]model.NflTeam, error) {
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}

	var teams []model.NflTeam
	err := db.Order("name ASC").Find(&teams).Error
	return teams, err
}
