package repository

import (
	"context"

	"gorm.io/gorm"

	"nfl-fantasy/backend/internal/model"
)

// SeasonRepository 赛季数据访问接口
type SeasonRepository interface {
	// LockForCreate 在当前事务内对 seasons 表加锁，串行化并发创建
	LockForCreate(ctx context.Context) error
	// ListAll 不含周次的全部赛季，用作冲突校验快照
	ListAll(ctx context.Context) ([]model.Season, error)
	// List 含周次的全部赛季，按创建时间倒序
	List(ctx context.Context) ([]model.Season, error)
	GetByID(ctx context.Context, id string) (*model.Season, error)
	GetCurrent(ctx context.Context) (*model.Season, error)
	// CreateWithWeeks 写入赛季及其全部周次
	CreateWithWeeks(ctx context.Context, season *model.Season) error
}

type seasonRepo struct {
	db *gorm.DB
}

// NewSeasonRepo 创建 SeasonRepository 实例
func NewSeasonRepo(db *gorm.DB) SeasonRepository {
	return &seasonRepo{db: db}
}

// SHARE ROW EXCLUSIVE 与自身互斥，但不阻塞普通读
func (r *seasonRepo) LockForCreate(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Exec("LOCK TABLE seasons IN SHARE ROW EXCLUSIVE MODE").Error
}

func (r *seasonRepo) ListAll(ctx context.Context) ([]model.Season, error) {
	var seasons []model.Season
	err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Find(&seasons).Error
	return seasons, err
}

func (r *seasonRepo) List(ctx context.Context) ([]model.Season, error) {
	var seasons []model.Season
	err := r.db.WithContext(ctx).
		Preload("Weeks", orderWeeks).
		Order("created_at DESC").
		Find(&seasons).Error
	return seasons, err
}

func (r *seasonRepo) GetByID(ctx context.Context, id string) (*model.Season, error) {
	var season model.Season
	err := r.db.WithContext(ctx).
		Preload("Weeks", orderWeeks).
		Where("season_id = ?", id).
		First(&season).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *seasonRepo) GetCurrent(ctx context.Context) (*model.Season, error) {
	var season model.Season
	err := r.db.WithContext(ctx).
		Preload("Weeks", orderWeeks).
		Where("is_current = ?", true).
		First(&season).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *seasonRepo) CreateWithWeeks(ctx context.Context, season *model.Season) error {
	return r.db.WithContext(ctx).Create(season).Error
}

func orderWeeks(db *gorm.DB) *gorm.DB {
	return db.Order("number ASC")
}
