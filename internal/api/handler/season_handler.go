package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/planner"
	"nfl-fantasy/backend/internal/service"
	"nfl-fantasy/backend/pkg/response"
)

// SeasonHandler 赛季模块 HTTP 处理器
type SeasonHandler struct {
	seasonSvc service.SeasonService
}

// NewSeasonHandler 创建 SeasonHandler
func NewSeasonHandler(seasonSvc service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonSvc: seasonSvc}
}

// ListSeasons 获取赛季列表
// GET /api/v1/seasons
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	seasons, err := h.seasonSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": seasons})
}

// GetSeason 获取赛季详情
// GET /api/v1/seasons/:id
func (h *SeasonHandler) GetSeason(c *gin.Context) {
	season, err := h.seasonSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, season)
}

// GetCurrentSeason 获取当前赛季
// GET /api/v1/seasons/current
func (h *SeasonHandler) GetCurrentSeason(c *gin.Context) {
	season, err := h.seasonSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, season)
}

// CreateSeason 创建赛季（自动切分周次）
// POST /api/v1/seasons
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req dto.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	season, err := h.seasonSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.Created(c, season)
}

// CheckName 检查赛季名称是否可用
// GET /api/v1/seasons/check-name/:name
func (h *SeasonHandler) CheckName(c *gin.Context) {
	result, err := h.seasonSvc.CheckName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, result)
}

// CheckConflicts 创建前冲突预检
// POST /api/v1/seasons/check-conflicts
func (h *SeasonHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.seasonSvc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, report)
}

// GetWeekAt 查询某日期所在的周次，date 缺省为今天
// GET /api/v1/seasons/:id/weeks/at?date=2026-09-10
func (h *SeasonHandler) GetWeekAt(c *gin.Context) {
	week, err := h.seasonSvc.GetWeekForDate(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, week)
}

// 规划校验失败的业务码，按 Kind 区分
var seasonKindCodes = map[planner.Kind]int{
	planner.KindInvalidWeekCount:      12011,
	planner.KindInvalidDateRange:      12012,
	planner.KindDatesInPast:           12013,
	planner.KindDuplicateName:         12014,
	planner.KindDateOverlap:           12015,
	planner.KindCurrentSeasonConflict: 12016,
	planner.KindWeekOverlap:           12017,
}

// handleSeasonError 统一处理赛季模块业务错误
func (h *SeasonHandler) handleSeasonError(c *gin.Context, err error) {
	var ve *planner.ValidationError
	if errors.As(err, &ve) {
		code, ok := seasonKindCodes[ve.Kind]
		if !ok {
			code = 12010
		}
		status := http.StatusBadRequest
		switch ve.Kind {
		case planner.KindDuplicateName, planner.KindDateOverlap, planner.KindCurrentSeasonConflict:
			status = http.StatusConflict
		}
		response.ErrorWithDetails(c, status, code, ve.Reason, ve.Kind.String())
		return
	}

	switch {
	case errors.Is(err, service.ErrSeasonNotFound):
		response.NotFound(c, 12001, "赛季不存在")
	case errors.Is(err, service.ErrSeasonDateFormat):
		response.BadRequest(c, 12002, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrSeasonConflict):
		response.Conflict(c, 12003, "赛季与并发写入的记录冲突，请重试")
	case errors.Is(err, service.ErrWeekNotFound):
		response.NotFound(c, 12004, "该日期不在赛季的任何一周内")
	default:
		response.InternalError(c)
	}
}
