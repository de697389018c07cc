package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/service"
	"nfl-fantasy/backend/pkg/response"
)

// LeagueHandler 联赛模块 HTTP 处理器
type LeagueHandler struct {
	leagueSvc service.LeagueService
}

// NewLeagueHandler 创建 LeagueHandler
func NewLeagueHandler(leagueSvc service.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueSvc: leagueSvc}
}

// CreateLeague 创建联赛，调用者成为委员
// POST /api/v1/leagues
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	var req dto.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.leagueSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}

	response.Created(c, result)
}

// JoinLeague 加入联赛
// POST /api/v1/leagues/join
func (h *LeagueHandler) JoinLeague(c *gin.Context) {
	var req dto.JoinLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.leagueSvc.Join(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}

	response.OK(c, result)
}

// SearchLeagues 搜索联赛
// GET /api/v1/leagues?name=&season_id=&is_active=
func (h *LeagueHandler) SearchLeagues(c *gin.Context) {
	var req dto.SearchLeagueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	leagues, err := h.leagueSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": leagues})
}

// GetLeague 获取联赛详情
// GET /api/v1/leagues/:id
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	league, err := h.leagueSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}

	response.OK(c, league)
}

// handleLeagueError 统一处理联赛模块业务错误
func (h *LeagueHandler) handleLeagueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeagueNotFound):
		response.NotFound(c, 13001, "联赛不存在")
	case errors.Is(err, service.ErrLeagueNameTaken):
		response.Conflict(c, 13002, "已存在同名联赛")
	case errors.Is(err, service.ErrLeagueMaxTeamsInvalid):
		response.BadRequest(c, 13003, "球队数量必须为 4-20 之间的偶数")
	case errors.Is(err, service.ErrLeaguePasswordFormat):
		response.BadRequest(c, 13004, "联赛密码须为 8-12 位，且包含大小写字母和数字")
	case errors.Is(err, service.ErrNoCurrentSeason):
		response.BadRequest(c, 13005, "当前没有进行中的赛季")
	case errors.Is(err, service.ErrLeagueInactive):
		response.BadRequest(c, 13006, "联赛已停用")
	case errors.Is(err, service.ErrLeaguePasswordInvalid):
		response.Forbidden(c, 13007, "联赛密码错误")
	case errors.Is(err, service.ErrLeagueFull):
		response.Conflict(c, 13008, "联赛名额已满")
	case errors.Is(err, service.ErrAlreadyInLeague):
		response.Conflict(c, 13009, "已在该联赛中拥有球队")
	case errors.Is(err, service.ErrTeamNameTaken):
		response.Conflict(c, 13010, "联赛内球队名称已被使用")
	case errors.Is(err, service.ErrTeamAliasTaken):
		response.Conflict(c, 13011, "联赛内别名已被使用")
	default:
		response.InternalError(c)
	}
}
