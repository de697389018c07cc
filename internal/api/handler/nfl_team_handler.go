package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/service"
	"nfl-fantasy/backend/pkg/response"
)

// NflTeamHandler NFL 球队模块 HTTP 处理器
type NflTeamHandler struct {
	nflTeamSvc service.NflTeamService
}

// NewNflTeamHandler 创建 NflTeamHandler
func NewNflTeamHandler(nflTeamSvc service.NflTeamService) *NflTeamHandler {
	return &NflTeamHandler{nflTeamSvc: nflTeamSvc}
}

// ListNflTeams 获取 NFL 球队列表
// GET /api/v1/nfl-teams?include_inactive=true
func (h *NflTeamHandler) ListNflTeams(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	teams, err := h.nflTeamSvc.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": teams})
}

// GetNflTeam 获取 NFL 球队详情
// GET /api/v1/nfl-teams/:id
func (h *NflTeamHandler) GetNflTeam(c *gin.Context) {
	team, err := h.nflTeamSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleNflTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// CreateNflTeam 创建 NFL 球队
// POST /api/v1/nfl-teams
func (h *NflTeamHandler) CreateNflTeam(c *gin.Context) {
	var req dto.CreateNflTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	team, err := h.nflTeamSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleNflTeamError(c, err)
		return
	}

	response.Created(c, team)
}

func (h *NflTeamHandler) handleNflTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNflTeamNotFound):
		response.NotFound(c, 14001, "NFL 球队不存在")
	case errors.Is(err, service.ErrNflTeamNameTaken):
		response.Conflict(c, 14002, "已存在同名 NFL 球队")
	case errors.Is(err, service.ErrNflTeamInvalid):
		response.BadRequest(c, 14003, "名称、城市与图片均不能为空")
	default:
		response.InternalError(c)
	}
}
