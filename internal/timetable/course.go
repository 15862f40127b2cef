package timetable

import "time"

// Course 一个星期/节次格子中的一门课程
type Course struct {
	DayIndex     int    `json:"day_index"` // 1=星期一 … 7=星期日
	DayName      string `json:"day_name"`
	SectionLabel string `json:"section_label"`
	SectionOrder int    `json:"section_order"` // 源表行号，仅用于稳定排序
	CourseName   string `json:"course_name"`
	Teacher      string `json:"teacher"`
	WeekSpec     string `json:"week_spec"`
	Location     string `json:"location"`
	RawCellText  string `json:"raw_cell_text"`
}

// Result 一次导入的完整结果
type Result struct {
	SourceTitle string    `json:"source_title"`
	ImportedAt  time.Time `json:"imported_at"`
	Courses     []Course  `json:"courses"`
}

// DayCount 统计课程覆盖的星期数
func (r *Result) DayCount() int {
	return CountDays(r.Courses)
}

// CountDays 统计课程列表覆盖的不同星期数
func CountDays(courses []Course) int {
	seen := make(map[int]struct{}, 7)
	for _, c := range courses {
		seen[c.DayIndex] = struct{}{}
	}
	return len(seen)
}
