package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
)

var ErrPlayerNotFound = errors.New("球员不存在")

// PlayerService 球员业务接口
type PlayerService interface {
	List(ctx context.Context) ([]dto.PlayerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PlayerResponse, error)
	Create(ctx context.Context, req *dto.CreatePlayerRequest, callerID string) (*dto.PlayerResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePlayerRequest, callerID string) (*dto.PlayerResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type playerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlayerService 创建 PlayerService 实例
func NewPlayerService(repo *repository.Repository, logger *zap.Logger) PlayerService {
	return &playerService{repo: repo, logger: logger}
}

func (s *playerService) List(ctx context.Context) ([]dto.PlayerResponse, error) {
	players, err := s.repo.Player.List(ctx)
	if err != nil {
		s.logger.Error("列出球员失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		result = append(result, toPlayerResponse(&players[i]))
	}
	return result, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*dto.PlayerResponse, error) {
	player, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPlayerResponse(player)
	return &resp, nil
}

func (s *playerService) Create(ctx context.Context, req *dto.CreatePlayerRequest, callerID string) (*dto.PlayerResponse, error) {
	player := &model.Player{
		Name:     req.Name,
		Position: req.Position,
		Team:     req.Team,
	}
	player.StampCreate(callerID)
	player.Version = 1

	if err := s.repo.Player.Create(ctx, player); err != nil {
		s.logger.Error("创建球员失败", zap.Error(err))
		return nil, err
	}

	resp := toPlayerResponse(player)
	return &resp, nil
}

func (s *playerService) Update(ctx context.Context, id string, req *dto.UpdatePlayerRequest, callerID string) (*dto.PlayerResponse, error) {
	player, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if player.Version != req.Version {
		return nil, apperrors.ErrOptimisticLock
	}

	if req.Name != nil {
		player.Name = *req.Name
	}
	if req.Position != nil {
		player.Position = *req.Position
	}
	if req.Team != nil {
		player.Team = *req.Team
	}
	player.StampUpdate(callerID)

	if err := s.repo.Player.Update(ctx, player); err != nil {
		if !errors.Is(err, apperrors.ErrOptimisticLock) {
			s.logger.Error("更新球员失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := toPlayerResponse(player)
	return &resp, nil
}

func (s *playerService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Player.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除球员失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *playerService) get(ctx context.Context, id string) (*model.Player, error) {
	player, err := s.repo.Player.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("查询球员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return player, nil
}

func toPlayerResponse(p *model.Player) dto.PlayerResponse {
	return dto.PlayerResponse{
		ID:       p.PlayerID,
		Name:     p.Name,
		Position: p.Position,
		Team:     p.Team,
		Version:  p.Version,
	}
}
