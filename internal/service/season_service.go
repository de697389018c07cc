package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/planner"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
	"nfl-fantasy/backend/pkg/metrics"
)

// ── 赛季模块业务错误 ──
// 规划校验失败直接返回 *planner.ValidationError，由 Handler 按 Kind 映射

var (
	ErrSeasonNotFound   = errors.New("赛季不存在")
	ErrSeasonDateFormat = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrSeasonConflict   = errors.New("赛季与并发写入的记录冲突，请重试")
	ErrWeekNotFound     = errors.New("该日期不在赛季的任何一周内")
)

const dateLayout = "2006-01-02"

// SeasonService 赛季业务接口
type SeasonService interface {
	Create(ctx context.Context, req *dto.CreateSeasonRequest, callerID string) (*dto.SeasonResponse, error)
	List(ctx context.Context) ([]dto.SeasonResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SeasonResponse, error)
	GetCurrent(ctx context.Context) (*dto.SeasonResponse, error)
	CheckName(ctx context.Context, name string) (*dto.NameCheckResponse, error)
	CheckConflicts(ctx context.Context, req *dto.CheckConflictsRequest) (*planner.ConflictReport, error)
	GetWeekForDate(ctx context.Context, seasonID, date string) (*dto.WeekResponse, error)
}

type seasonService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewSeasonService 创建 SeasonService 实例
// loc 决定"今天"的日历日期
func NewSeasonService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) SeasonService {
	if loc == nil {
		loc = time.UTC
	}
	return &seasonService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *seasonService) Create(ctx context.Context, req *dto.CreateSeasonRequest, callerID string) (*dto.SeasonResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// 表锁 + 快照 + 写入在同一事务内，保证校验与写入之间无并发插入
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Season.LockForCreate(ctx); err != nil {
		rollback()
		s.logger.Error("锁定赛季表失败", zap.Error(err))
		return nil, err
	}

	existing, err := txRepo.Season.ListAll(ctx)
	if err != nil {
		rollback()
		s.logger.Error("读取赛季快照失败", zap.Error(err))
		return nil, err
	}

	candidate := planner.Candidate{
		Name:       req.Name,
		WeeksCount: req.WeeksCount,
		StartDate:  startDate,
		EndDate:    endDate,
		IsCurrent:  req.IsCurrent,
	}

	weeks, err := planner.ValidateNew(candidate, toPlannerSeasons(existing), s.today())
	if err != nil {
		rollback()
		var ve *planner.ValidationError
		if errors.As(err, &ve) {
			metrics.SeasonRejected(ve.Kind.String())
		}
		s.logger.Info("赛季校验未通过", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	season := &model.Season{
		Name:       req.Name,
		WeeksCount: req.WeeksCount,
		StartDate:  planner.DateOf(startDate),
		EndDate:    planner.DateOf(endDate),
		IsCurrent:  req.IsCurrent,
		Weeks:      make([]model.Week, 0, len(weeks)),
	}
	season.StampCreate(callerID)
	for _, w := range weeks {
		season.Weeks = append(season.Weeks, model.Week{
			Number:    w.Number,
			StartDate: w.StartDate,
			EndDate:   w.EndDate,
		})
	}

	if err := txRepo.Season.CreateWithWeeks(ctx, season); err != nil {
		rollback()
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrSeasonConflict
		}
		s.logger.Error("创建赛季失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	metrics.SeasonCreated()
	s.logger.Info("赛季已创建",
		zap.String("season_id", season.SeasonID),
		zap.String("name", season.Name),
		zap.Int("weeks", len(season.Weeks)),
		zap.Bool("is_current", season.IsCurrent),
	)

	return toSeasonResponse(season), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *seasonService) List(ctx context.Context) ([]dto.SeasonResponse, error) {
	seasons, err := s.repo.Season.List(ctx)
	if err != nil {
		s.logger.Error("列出赛季失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SeasonResponse, 0, len(seasons))
	for i := range seasons {
		result = append(result, *toSeasonResponse(&seasons[i]))
	}
	return result, nil
}

func (s *seasonService) GetByID(ctx context.Context, id string) (*dto.SeasonResponse, error) {
	season, err := s.getSeason(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSeasonResponse(season), nil
}

func (s *seasonService) GetCurrent(ctx context.Context) (*dto.SeasonResponse, error) {
	season, err := s.repo.Season.GetCurrent(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrSeasonNotFound
		}
		s.logger.Error("查询当前赛季失败", zap.Error(err))
		return nil, err
	}
	return toSeasonResponse(season), nil
}

// ────────────────────── 预检 ──────────────────────

func (s *seasonService) CheckName(ctx context.Context, name string) (*dto.NameCheckResponse, error) {
	existing, err := s.repo.Season.ListAll(ctx)
	if err != nil {
		s.logger.Error("读取赛季快照失败", zap.Error(err))
		return nil, err
	}

	return &dto.NameCheckResponse{
		Name:      name,
		Available: planner.NameAvailable(name, toPlannerSeasons(existing)),
	}, nil
}

func (s *seasonService) CheckConflicts(ctx context.Context, req *dto.CheckConflictsRequest) (*planner.ConflictReport, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Season.ListAll(ctx)
	if err != nil {
		s.logger.Error("读取赛季快照失败", zap.Error(err))
		return nil, err
	}

	report := planner.CheckConflicts(planner.Candidate{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsCurrent: req.IsCurrent,
	}, toPlannerSeasons(existing))

	return &report, nil
}

// ────────────────────── GetWeekForDate ──────────────────────

func (s *seasonService) GetWeekForDate(ctx context.Context, seasonID, date string) (*dto.WeekResponse, error) {
	var at time.Time
	if date == "" {
		at = s.today()
	} else {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, ErrSeasonDateFormat
		}
		at = parsed
	}

	season, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	week, ok := planner.WeekAt(toPlannerWeeks(season.Weeks), at)
	if !ok {
		return nil, ErrWeekNotFound
	}
	resp := toWeekResponse(week)
	return &resp, nil
}

// ── 内部辅助方法 ──

func (s *seasonService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *seasonService) getSeason(ctx context.Context, id string) (*model.Season, error) {
	season, err := s.repo.Season.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrSeasonNotFound
		}
		s.logger.Error("查询赛季失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return season, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrSeasonDateFormat
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrSeasonDateFormat
	}
	return startDate, endDate, nil
}

func toPlannerSeasons(seasons []model.Season) []planner.Season {
	result := make([]planner.Season, 0, len(seasons))
	for _, s := range seasons {
		result = append(result, planner.Season{
			Name:      s.Name,
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
			IsCurrent: s.IsCurrent,
		})
	}
	return result
}

func toPlannerWeeks(weeks []model.Week) []planner.Week {
	result := make([]planner.Week, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, planner.Week{
			Number:    w.Number,
			StartDate: planner.DateOf(w.StartDate),
			EndDate:   planner.DateOf(w.EndDate),
		})
	}
	return result
}

func toWeekResponse(w planner.Week) dto.WeekResponse {
	return dto.WeekResponse{
		Number:    w.Number,
		StartDate: w.StartDate.Format(dateLayout),
		EndDate:   w.EndDate.Format(dateLayout),
		Days:      w.Days(),
	}
}

func toSeasonResponse(season *model.Season) *dto.SeasonResponse {
	resp := &dto.SeasonResponse{
		ID:         season.SeasonID,
		Name:       season.Name,
		WeeksCount: season.WeeksCount,
		StartDate:  season.StartDate.Format(dateLayout),
		EndDate:    season.EndDate.Format(dateLayout),
		IsCurrent:  season.IsCurrent,
		CreatedAt:  season.CreatedAt.Format(time.RFC3339),
		Weeks:      make([]dto.WeekResponse, 0, len(season.Weeks)),
	}
	for _, w := range toPlannerWeeks(season.Weeks) {
		resp.Weeks = append(resp.Weeks, toWeekResponse(w))
	}
	return resp
}
