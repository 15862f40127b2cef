package timetable

import "time"

// WeekStatus 当前周次状态
type WeekStatus string

const (
	WeekUnset      WeekStatus = "unset"       // 未设置第一周日期
	WeekNotStarted WeekStatus = "not_started" // 第一周尚未到来
	WeekInProgress WeekStatus = "in_progress"
)

// WeekInfo 当前周次，仅 Status 为 WeekInProgress 时 Week 有效（≥1）
type WeekInfo struct {
	Status WeekStatus `json:"status"`
	Week   int        `json:"week,omitempty"`
}

// Started 是否可以按周次查询课程
func (w WeekInfo) Started() bool {
	return w.Status == WeekInProgress && w.Week >= 1
}

// CurrentWeek 根据第一周日期与今天计算当前周次，只比较日历日期
func CurrentWeek(firstWeek *time.Time, today time.Time) WeekInfo {
	if firstWeek == nil {
		return WeekInfo{Status: WeekUnset}
	}
	days := daysBetween(*firstWeek, today)
	if days < 0 {
		return WeekInfo{Status: WeekNotStarted}
	}
	week := days/7 + 1
	if week < 1 {
		week = 1
	}
	return WeekInfo{Status: WeekInProgress, Week: week}
}

// DayIndexOf 将 time.Weekday (0=Sunday) 转为 1=星期一 … 7=星期日
func DayIndexOf(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// CourseDate 第 week 周中星期为 dayIndex 的日期。
// 周的边界与 CurrentWeek 一致：从第一周日期起每 7 天为一周。
func CourseDate(firstWeek time.Time, week, dayIndex int) time.Time {
	start := truncateDate(firstWeek).AddDate(0, 0, (week-1)*7)
	offset := (dayIndex - DayIndexOf(start) + 7) % 7
	return start.AddDate(0, 0, offset)
}

func daysBetween(from, to time.Time) int {
	return int(truncateDate(to).Sub(truncateDate(from)).Hours() / 24)
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
