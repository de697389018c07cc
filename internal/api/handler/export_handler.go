package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/internal/service"
	"nfl-fantasy/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSeason 导出赛季周历
// GET /api/v1/export/seasons/:id?format=xlsx|ics
func (h *ExportHandler) ExportSeason(c *gin.Context) {
	id := c.Param("id")

	var (
		buf         *bytes.Buffer
		filename    string
		contentType string
		err         error
	)
	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		buf, filename, err = h.exportSvc.ExportSeasonXLSX(c.Request.Context(), id)
		contentType = contentTypeXLSX
	case "ics":
		buf, filename, err = h.exportSvc.ExportSeasonICS(c.Request.Context(), id)
		contentType = contentTypeICS
	default:
		response.BadRequest(c, 10001, "format 仅支持 xlsx 或 ics")
		return
	}
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.PathEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSeasonNotFound):
		response.NotFound(c, 16101, "赛季不存在")
	case errors.Is(err, service.ErrExportNoWeeks):
		response.BadRequest(c, 16102, "该赛季没有周次数据")
	default:
		response.InternalError(c)
	}
}
