package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"hit-timetable/internal/dto"
	"hit-timetable/internal/service"
	"hit-timetable/internal/timetable"
	pkgerrors "hit-timetable/pkg/errors"
	"hit-timetable/pkg/response"
)

// TimetableHandler 课表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// Import 导入课表
// POST /api/v1/timetables/import
//
// multipart/form-data, field="file"，支持 .xls / .xlsx
func (h *TimetableHandler) Import(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 15000, "请上传课表文件（.xls / .xlsx）")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xls" && ext != ".xlsx" {
		response.BadRequest(c, 15000, "仅支持 .xls / .xlsx 文件")
		return
	}

	resp, err := h.svc.Import(c.Request.Context(), userID, filepath.Base(header.Filename), file)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetMyTimetable 获取我的课表
// GET /api/v1/timetables/me
func (h *TimetableHandler) GetMyTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetMyTimetable(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// Clear 清空课表与第一周日期
// DELETE /api/v1/timetables/me
func (h *TimetableHandler) Clear(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Clear(c.Request.Context(), userID); err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetFirstWeek 设置第一周日期
// PUT /api/v1/timetables/first-week
func (h *TimetableHandler) SetFirstWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetFirstWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	resp, err := h.svc.SetFirstWeek(c.Request.Context(), userID, &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetWeekInfo 当前周次
// GET /api/v1/timetables/week-info
func (h *TimetableHandler) GetWeekInfo(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetWeekInfo(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetCourses 按星期与周次查询课程
// GET /api/v1/timetables/courses?day=3&week=5
func (h *TimetableHandler) GetCourses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.CoursesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	resp, err := h.svc.GetCourses(c.Request.Context(), userID, q.Day, q.Week)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetToday 今日课程视图
// GET /api/v1/timetables/today
func (h *TimetableHandler) GetToday(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetToday(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleTimetableError 统一课表模块错误映射
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 15004, "课表文件过大")
	case errors.Is(err, timetable.ErrHeaderNotFound):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 15001, "未识别到课表表头", err.Error())
	case errors.Is(err, timetable.ErrNoDayColumns):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 15002, "未识别到星期列", err.Error())
	case errors.Is(err, timetable.ErrSourceUnreadable):
		response.ErrorWithDetails(c, http.StatusBadRequest, 15003, "无法读取课表文件", err.Error())
	case errors.Is(err, service.ErrTimetableNotImported):
		response.NotFound(c, 15005, "尚未导入课表")
	case errors.Is(err, service.ErrFirstWeekInvalid):
		response.ErrorWithDetails(c, http.StatusBadRequest, 15006, "第一周日期无效", err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.ErrorWithDetails(c, http.StatusConflict, 15007, "设置已被修改", err.Error())
	case errors.Is(err, service.ErrFirstWeekNotSet):
		response.BadRequest(c, 15008, "请先设置第一周日期")
	default:
		response.InternalError(c)
	}
}
