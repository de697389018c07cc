package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
	"nfl-fantasy/backend/pkg/metrics"
)

// ── 联赛模块业务错误 ──

var (
	ErrLeagueNotFound        = errors.New("联赛不存在")
	ErrLeagueNameTaken       = errors.New("已存在同名联赛")
	ErrLeagueMaxTeamsInvalid = errors.New("球队数量必须为 4-20 之间的偶数")
	ErrLeaguePasswordFormat  = errors.New("联赛密码须为 8-12 位，且包含大小写字母和数字")
	ErrNoCurrentSeason       = errors.New("当前没有进行中的赛季")
	ErrLeagueInactive        = errors.New("联赛已停用")
	ErrLeaguePasswordInvalid = errors.New("联赛密码错误")
	ErrLeagueFull            = errors.New("联赛名额已满")
	ErrAlreadyInLeague       = errors.New("已在该联赛中拥有球队")
	ErrTeamNameTaken         = errors.New("联赛内球队名称已被使用")
	ErrTeamAliasTaken        = errors.New("联赛内别名已被使用")
)

const (
	leagueMinTeams = 4
	leagueMaxTeams = 20

	defaultPositions = "1 QB, 2 RB, 1 K, 1 DEF, 2 WR, 1 RB/WR, 1 TE, 6 BN, 3 IR"
	defaultScoring   = "PassingYards:1/25,PassingTD:4,IntThrown:-2,RushingYards:1/10,Receptions:1," +
		"ReceivingYards:1/10,RushRecvTD:6,Sacks:1,Interceptions:2,FumblesRecovered:2,Safeties:2," +
		"Touchdowns:6,TeamDef2ptReturn:2,PATMade:1,FG0-50:3,FG50+:5,PointsAllowed<=10:5," +
		"PointsAllowed<=20:2,PointsAllowed<=30:0,PointsAllowed>30:-2"
)

// LeagueService 联赛业务接口
type LeagueService interface {
	Create(ctx context.Context, req *dto.CreateLeagueRequest, userID string) (*dto.CreateLeagueResponse, error)
	Join(ctx context.Context, req *dto.JoinLeagueRequest, userID string) (*dto.JoinLeagueResponse, error)
	Search(ctx context.Context, req *dto.SearchLeagueRequest) ([]dto.LeagueResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LeagueResponse, error)
}

type leagueService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeagueService 创建 LeagueService 实例
func NewLeagueService(repo *repository.Repository, logger *zap.Logger) LeagueService {
	return &leagueService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *leagueService) Create(ctx context.Context, req *dto.CreateLeagueRequest, userID string) (*dto.CreateLeagueResponse, error) {
	if req.MaxTeams < leagueMinTeams || req.MaxTeams > leagueMaxTeams || req.MaxTeams%2 != 0 {
		return nil, ErrLeagueMaxTeamsInvalid
	}
	if !validPassword(req.Password) {
		return nil, ErrLeaguePasswordFormat
	}

	taken, err := s.repo.League.ExistsByName(ctx, req.Name)
	if err != nil {
		s.logger.Error("检查联赛名称失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrLeagueNameTaken
	}

	season, err := s.repo.Season.GetCurrent(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrNoCurrentSeason
		}
		s.logger.Error("查询当前赛季失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("联赛密码哈希失败", zap.Error(err))
		return nil, err
	}

	league := &model.League{
		Name:                req.Name,
		Description:         req.Description,
		MaxTeams:            req.MaxTeams,
		PasswordHash:        string(hash),
		Status:              model.LeagueStatusPreDraft,
		IsActive:            true,
		SeasonID:            season.SeasonID,
		CommissionerID:      userID,
		PlayoffType:         req.PlayoffType,
		AllowDecimalPoints:  true,
		DefaultPositions:    defaultPositions,
		DefaultScoring:      defaultScoring,
		TradeDeadlineActive: false,
	}
	league.StampCreate(userID)

	// 联赛 + 委员球队 + 审计 原子写入
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

	if err := txRepo.League.Create(ctx, league); err != nil {
		rollback()
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrLeagueNameTaken
		}
		s.logger.Error("创建联赛失败", zap.Error(err))
		return nil, err
	}

	team := &model.Team{
		LeagueID: league.LeagueID,
		UserID:   userID,
		TeamName: req.CommissionerTeamName,
		Alias:    req.CommissionerAlias,
	}
	team.StampCreate(userID)
	if err := txRepo.League.CreateTeam(ctx, team); err != nil {
		rollback()
		s.logger.Error("创建委员球队失败", zap.Error(err))
		return nil, err
	}

	if err := txRepo.League.CreateAudit(ctx, newLeagueAudit(league.LeagueID, userID, model.LeagueActionCreate)); err != nil {
		rollback()
		s.logger.Error("写入联赛审计失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("联赛已创建",
		zap.String("league_id", league.LeagueID),
		zap.String("season_id", season.SeasonID),
		zap.String("commissioner_id", userID),
	)

	return &dto.CreateLeagueResponse{
		LeagueID:       league.LeagueID,
		TeamID:         team.TeamID,
		RemainingSpots: league.MaxTeams - 1,
	}, nil
}

// ────────────────────── Join ──────────────────────

func (s *leagueService) Join(ctx context.Context, req *dto.JoinLeagueRequest, userID string) (*dto.JoinLeagueResponse, error) {
	// 联赛行锁保证容量检查与插入之间无并发加入
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
	fail := func(err error, outcome string) (*dto.JoinLeagueResponse, error) {
		if tx != nil {
			tx.Rollback()
		}
		metrics.LeagueJoin(outcome)
		return nil, err
	}

	txRepo := s.repo.WithTx(tx)

	league, err := txRepo.League.GetByIDForUpdate(ctx, req.LeagueID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return fail(ErrLeagueNotFound, "not_found")
		}
		s.logger.Error("查询联赛失败", zap.String("league_id", req.LeagueID), zap.Error(err))
		return fail(err, "error")
	}
	if !league.IsActive {
		return fail(ErrLeagueInactive, "inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(league.PasswordHash), []byte(req.Password)); err != nil {
		return fail(ErrLeaguePasswordInvalid, "bad_password")
	}

	joined, err := txRepo.League.HasTeamForUser(ctx, league.LeagueID, userID)
	if err != nil {
		s.logger.Error("查询联赛成员失败", zap.Error(err))
		return fail(err, "error")
	}
	if joined {
		return fail(ErrAlreadyInLeague, "already_joined")
	}

	count, err := txRepo.League.CountTeams(ctx, league.LeagueID)
	if err != nil {
		s.logger.Error("统计联赛球队失败", zap.Error(err))
		return fail(err, "error")
	}
	if count >= int64(league.MaxTeams) {
		return fail(ErrLeagueFull, "full")
	}

	taken, err := txRepo.League.AliasTaken(ctx, league.LeagueID, req.Alias)
	if err != nil {
		s.logger.Error("检查别名失败", zap.Error(err))
		return fail(err, "error")
	}
	if taken {
		return fail(ErrTeamAliasTaken, "alias_taken")
	}

	taken, err = txRepo.League.TeamNameTaken(ctx, league.LeagueID, req.TeamName)
	if err != nil {
		s.logger.Error("检查球队名称失败", zap.Error(err))
		return fail(err, "error")
	}
	if taken {
		return fail(ErrTeamNameTaken, "team_name_taken")
	}

	team := &model.Team{
		LeagueID: league.LeagueID,
		UserID:   userID,
		TeamName: req.TeamName,
		Alias:    req.Alias,
	}
	team.StampCreate(userID)
	if err := txRepo.League.CreateTeam(ctx, team); err != nil {
		if apperrors.IsUniqueViolation(err) {
			// 事务已中止，回滚后在事务外重新检查是哪条唯一约束被并发占用
			if tx != nil {
				tx.Rollback()
				tx = nil
			}
			outcome, conflict := s.classifyTeamConflict(ctx, league.LeagueID, userID, req)
			return fail(conflict, outcome)
		}
		s.logger.Error("创建球队失败", zap.Error(err))
		return fail(err, "error")
	}

	if err := txRepo.League.CreateAudit(ctx, newLeagueAudit(league.LeagueID, userID, model.LeagueActionJoin)); err != nil {
		s.logger.Error("写入联赛审计失败", zap.Error(err))
		return fail(err, "error")
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			metrics.LeagueJoin("error")
			return nil, err
		}
	}

	metrics.LeagueJoin("success")
	s.logger.Info("用户加入联赛", zap.String("league_id", league.LeagueID), zap.String("user_id", userID))

	return &dto.JoinLeagueResponse{
		LeagueID:       league.LeagueID,
		TeamID:         team.TeamID,
		RemainingSpots: league.MaxTeams - int(count) - 1,
	}, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *leagueService) Search(ctx context.Context, req *dto.SearchLeagueRequest) ([]dto.LeagueResponse, error) {
	leagues, err := s.repo.League.Search(ctx, repository.LeagueFilter{
		Name:     req.Name,
		SeasonID: req.SeasonID,
		IsActive: req.IsActive,
	})
	if err != nil {
		s.logger.Error("搜索联赛失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LeagueResponse, 0, len(leagues))
	for i := range leagues {
		// 列表不展开球队明细
		resp := toLeagueResponse(&leagues[i])
		resp.Teams = nil
		result = append(result, *resp)
	}
	return result, nil
}

func (s *leagueService) GetByID(ctx context.Context, id string) (*dto.LeagueResponse, error) {
	league, err := s.repo.League.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrLeagueNotFound
		}
		s.logger.Error("查询联赛失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toLeagueResponse(league), nil
}

// ── 内部辅助方法 ──

func newLeagueAudit(leagueID, userID, action string) *model.LeagueAudit {
	return &model.LeagueAudit{
		LeagueID:  leagueID,
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}

func toLeagueResponse(league *model.League) *dto.LeagueResponse {
	resp := &dto.LeagueResponse{
		ID:                  league.LeagueID,
		Name:                league.Name,
		Description:         league.Description,
		MaxTeams:            league.MaxTeams,
		TeamsCount:          len(league.Teams),
		Status:              league.Status,
		IsActive:            league.IsActive,
		SeasonID:            league.SeasonID,
		CommissionerID:      league.CommissionerID,
		PlayoffType:         league.PlayoffType,
		AllowDecimalPoints:  league.AllowDecimalPoints,
		DefaultPositions:    league.DefaultPositions,
		DefaultScoring:      league.DefaultScoring,
		TradeDeadlineActive: league.TradeDeadlineActive,
		CreatedAt:           league.CreatedAt.Format(time.RFC3339),
	}
	if league.Season != nil {
		resp.SeasonName = league.Season.Name
	}
	for _, t := range league.Teams {
		resp.Teams = append(resp.Teams, dto.TeamResponse{
			ID:       t.TeamID,
			TeamName: t.TeamName,
			Alias:    t.Alias,
			UserID:   t.UserID,
		})
	}
	return resp
}

// classifyTeamConflict 唯一约束冲突后判断具体原因
// 三项均未命中（如冲突行随后被删除）时按已加入处理
func (s *leagueService) classifyTeamConflict(ctx context.Context, leagueID, userID string, req *dto.JoinLeagueRequest) (string, error) {
	if joined, err := s.repo.League.HasTeamForUser(ctx, leagueID, userID); err == nil && joined {
		return "already_joined", ErrAlreadyInLeague
	}
	if taken, err := s.repo.League.AliasTaken(ctx, leagueID, req.Alias); err == nil && taken {
		return "alias_taken", ErrTeamAliasTaken
	}
	if taken, err := s.repo.League.TeamNameTaken(ctx, leagueID, req.TeamName); err == nil && taken {
		return "team_name_taken", ErrTeamNameTaken
	}
	return "already_joined", ErrAlreadyInLeague
}
