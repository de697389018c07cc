package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/service"
	apperrors "nfl-fantasy/backend/pkg/errors"
	"nfl-fantasy/backend/pkg/response"
)

// PlayerHandler 球员模块 HTTP 处理器
type PlayerHandler struct {
	playerSvc service.PlayerService
}

// NewPlayerHandler 创建 PlayerHandler
func NewPlayerHandler(playerSvc service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerSvc: playerSvc}
}

// ListPlayers 获取球员列表
// GET /api/v1/players
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.playerSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": players})
}

// GetPlayer 获取球员详情
// GET /api/v1/players/:id
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	player, err := h.playerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePlayerError(c, err)
		return
	}

	response.OK(c, player)
}

// CreatePlayer 创建球员
// POST /api/v1/players
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	player, err := h.playerSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handlePlayerError(c, err)
		return
	}

	response.Created(c, player)
}

// UpdatePlayer 更新球员（需携带 version）
// PUT /api/v1/players/:id
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	var req dto.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	player, err := h.playerSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handlePlayerError(c, err)
		return
	}

	response.OK(c, player)
}

// DeletePlayer 删除球员
// DELETE /api/v1/players/:id
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.playerSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handlePlayerError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *PlayerHandler) handlePlayerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		response.NotFound(c, 15001, "球员不存在")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 15002, "数据已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
