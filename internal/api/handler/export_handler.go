package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hit-timetable/internal/dto"
	"hit-timetable/internal/service"
	"hit-timetable/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出课表 Excel
// GET /api/v1/export/excel?week=5
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.ExportExcelQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "week 必须为正整数")
		return
	}

	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), userID, q.Week)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.File(c, service.ContentTypeXLSX, filename, buf.Bytes())
}

// ExportICS 导出 iCalendar
// GET /api/v1/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportICS(c.Request.Context(), userID)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.File(c, service.ContentTypeICS, filename, data)
}

func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		// 课表不存在、第一周未设置等与课表模块共用映射
		handleTimetableError(c, err)
	}
}
