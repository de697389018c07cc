package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
)

// ── NFL 球队模块业务错误 ──

var (
	ErrNflTeamNotFound  = errors.New("NFL 球队不存在")
	ErrNflTeamNameTaken = errors.New("已存在同名 NFL 球队")
	ErrNflTeamInvalid   = errors.New("名称、城市与图片均不能为空")
)

// NflTeamService NFL 球队业务接口
type NflTeamService interface {
	Create(ctx context.Context, req *dto.CreateNflTeamRequest, callerID string) (*dto.NflTeamResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.NflTeamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.NflTeamResponse, error)
}

type nflTeamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNflTeamService 创建 NflTeamService 实例
func NewNflTeamService(repo *repository.Repository, logger *zap.Logger) NflTeamService {
	return &nflTeamService{repo: repo, logger: logger}
}

func (s *nflTeamService) Create(ctx context.Context, req *dto.CreateNflTeamRequest, callerID string) (*dto.NflTeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	city := strings.TrimSpace(req.City)
	image := strings.TrimSpace(req.Image)
	if name == "" || city == "" || image == "" {
		return nil, ErrNflTeamInvalid
	}

	taken, err := s.repo.NflTeam.ExistsByName(ctx, name)
	if err != nil {
		s.logger.Error("检查 NFL 球队名称失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrNflTeamNameTaken
	}

	team := &model.NflTeam{
		Name:      name,
		City:      city,
		Image:     image,
		Thumbnail: fmt.Sprintf("thumb_%s.png", uuid.NewString()),
		IsActive:  true,
	}
	team.StampCreate(callerID)

	if err := s.repo.NflTeam.Create(ctx, team); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrNflTeamNameTaken
		}
		s.logger.Error("创建 NFL 球队失败", zap.Error(err))
		return nil, err
	}

	return toNflTeamResponse(team), nil
}

func (s *nflTeamService) List(ctx context.Context, includeInactive bool) ([]dto.NflTeamResponse, error) {
	teams, err := s.repo.NflTeam.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("列出 NFL 球队失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.NflTeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, *toNflTeamResponse(&teams[i]))
	}
	return result, nil
}

func (s *nflTeamService) GetByID(ctx context.Context, id string) (*dto.NflTeamResponse, error) {
	team, err := s.repo.NflTeam.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrNflTeamNotFound
		}
		s.logger.Error("查询 NFL 球队失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toNflTeamResponse(team), nil
}

func toNflTeamResponse(team *model.NflTeam) *dto.NflTeamResponse {
	return &dto.NflTeamResponse{
		ID:        team.NflTeamID,
		Name:      team.Name,
		City:      team.City,
		Image:     team.Image,
		Thumbnail: team.Thumbnail,
		IsActive:  team.IsActive,
		CreatedAt: team.CreatedAt.Format(time.RFC3339),
	}
}
