package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nfl-fantasy/backend/internal/model"
)

// LeagueFilter 联赛搜索条件，零值字段不参与过滤
type LeagueFilter struct {
	Name     string
	SeasonID string
	IsActive *bool
}

// LeagueRepository 联赛数据访问接口（含联赛内球队与审计）
type LeagueRepository interface {
	Create(ctx context.Context, league *model.League) error
	GetByID(ctx context.Context, id string) (*model.League, error)
	// GetByIDForUpdate 行锁读取，须在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.League, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, filter LeagueFilter) ([]model.League, error)

	CountTeams(ctx context.Context, leagueID string) (int64, error)
	HasTeamForUser(ctx context.Context, leagueID, userID string) (bool, error)
	TeamNameTaken(ctx context.Context, leagueID, teamName string) (bool, error)
	AliasTaken(ctx context.Context, leagueID, alias string) (bool, error)
	CreateTeam(ctx context.Context, team *model.Team) error

	CreateAudit(ctx context.Context, audit *model.LeagueAudit) error
}

type leagueRepo struct {
	db *gorm.DB
}

// NewLeagueRepo 创建 LeagueRepository 实例
func NewLeagueRepo(db *gorm.DB) LeagueRepository {
	return &leagueRepo{db: db}
}

func (r *leagueRepo) Create(ctx context.Context, league *model.League) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(league).Error
}

func (r *leagueRepo) GetByID(ctx context.Context, id string) (*model.League, error) {
	var league model.League
	err := r.db.WithContext(ctx).
		Preload("Season").
		Preload("Teams", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("league_id = ?", id).
		First(&league).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.League, error) {
	var league model.League
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("league_id = ?", id).
		First(&league).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.League{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (r *leagueRepo) Search(ctx context.Context, filter LeagueFilter) ([]model.League, error) {
	db := r.db.WithContext(ctx).Model(&model.League{})

	if filter.Name != "" {
		db = db.Where("name ILIKE ?", "%"+escapeLike(filter.Name)+"%")
	}
	if filter.SeasonID != "" {
		db = db.Where("season_id = ?", filter.SeasonID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	var leagues []model.League
	err := db.Preload("Season").
		Preload("Teams").
		Order("name ASC").
		Find(&leagues).Error
	return leagues, err
}

func (r *leagueRepo) CountTeams(ctx context.Context, leagueID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("league_id = ?", leagueID).
		Count(&count).Error
	return count, err
}

func (r *leagueRepo) HasTeamForUser(ctx context.Context, leagueID, userID string) (bool, error) {
	return r.teamExists(ctx, "league_id = ? AND user_id = ?", leagueID, userID)
}

func (r *leagueRepo) TeamNameTaken(ctx context.Context, leagueID, teamName string) (bool, error) {
	return r.teamExists(ctx, "league_id = ? AND LOWER(team_name) = LOWER(?)", leagueID, teamName)
}

func (r *leagueRepo) AliasTaken(ctx context.Context, leagueID, alias string) (bool, error) {
	return r.teamExists(ctx, "league_id = ? AND LOWER(alias) = LOWER(?)", leagueID, alias)
}

func (r *leagueRepo) teamExists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where(query, args...).
		Count(&count).Error
	return count > 0, err
}

func (r *leagueRepo) CreateTeam(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error
}

func (r *leagueRepo) CreateAudit(ctx context.Context, audit *model.LeagueAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，用户输入按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
