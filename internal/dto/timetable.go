package dto

import "hit-timetable/internal/timetable"

// ── 课表导入 ──

// ImportTimetableResponse 导入结果摘要
type ImportTimetableResponse struct {
	SourceTitle string `json:"source_title"`
	FileName    string `json:"file_name"`
	CourseCount int    `json:"course_count"`
	DayCount    int    `json:"day_count"`
	ImportedAt  string `json:"imported_at"`
}

// ── 课表查询 ──

// MyTimetableResponse 完整课表：课程按 (星期, 节次) 排序
type MyTimetableResponse struct {
	SourceTitle string             `json:"source_title"`
	FileName    string             `json:"file_name"`
	CourseCount int                `json:"course_count"`
	DayCount    int                `json:"day_count"`
	ImportedAt  string             `json:"imported_at"`
	WeekInfo    WeekInfoResponse   `json:"week_info"`
	Courses     []timetable.Course `json:"courses"`
}

// WeekInfoResponse 当前周次
type WeekInfoResponse struct {
	Status        timetable.WeekStatus `json:"status"`
	Week          int                  `json:"week,omitempty"`
	FirstWeekDate string               `json:"first_week_date,omitempty"` // YYYY-MM-DD
	Version       int                  `json:"version"`
	Text          string               `json:"text"`
}

// CoursesQuery 按星期与周次查询课程
type CoursesQuery struct {
	Day  int `form:"day"  binding:"required,min=1,max=7"`
	Week int `form:"week" binding:"required,min=1"`
}

// CoursesResponse 某天某周的课程
type CoursesResponse struct {
	DayIndex int                `json:"day_index"`
	DayName  string             `json:"day_name"`
	Week     int                `json:"week"`
	Courses  []timetable.Course `json:"courses"`
}

// TodayResponse 今日课程视图
type TodayResponse struct {
	Title   string   `json:"title"`
	Status  string   `json:"status"`
	Lines   []string `json:"lines"`
	Message string   `json:"message,omitempty"`
}

// ── 第一周日期 ──

// SetFirstWeekRequest 设置第一周日期请求
type SetFirstWeekRequest struct {
	Date    string `json:"date"    binding:"required"` // YYYY-MM-DD
	Version int    `json:"version" binding:"omitempty,min=0"`
}

// ── 导出 ──

// ExportExcelQuery Excel 导出参数，Week 为 0 表示导出全部周
type ExportExcelQuery struct {
	Week int `form:"week" binding:"omitempty,min=1"`
}
