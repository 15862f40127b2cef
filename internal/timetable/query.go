package timetable

import "sort"

// CoursesForWeek 筛选指定星期、指定周有课的课程，按节次排序
func CoursesForWeek(courses []Course, dayIndex, week int) []Course {
	result := make([]Course, 0)
	for _, c := range courses {
		if c.DayIndex == dayIndex && Matches(c.WeekSpec, week) {
			result = append(result, c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SectionOrder < result[j].SectionOrder
	})
	return result
}

// SortCourses 按 (星期, 节次) 稳定排序，返回新切片
func SortCourses(courses []Course) []Course {
	sorted := make([]Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DayIndex != sorted[j].DayIndex {
			return sorted[i].DayIndex < sorted[j].DayIndex
		}
		return sorted[i].SectionOrder < sorted[j].SectionOrder
	})
	return sorted
}
