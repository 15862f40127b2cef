package timetable

import "testing"

func TestCoursesForWeek(t *testing.T) {
	courses := []Course{
		{DayIndex: 1, SectionOrder: 6, CourseName: "晚课", WeekSpec: "[1-16]周"},
		{DayIndex: 1, SectionOrder: 3, CourseName: "早课", WeekSpec: "[1-16]周"},
		{DayIndex: 1, SectionOrder: 4, CourseName: "单周课", WeekSpec: "[1-15]单周"},
		{DayIndex: 1, SectionOrder: 5, CourseName: "无周次"},
		{DayIndex: 2, SectionOrder: 3, CourseName: "星期二", WeekSpec: "[1-16]周"},
		{DayIndex: 1, SectionOrder: 7, CourseName: "后八周", WeekSpec: "[9-16]周"},
	}

	got := CoursesForWeek(courses, 1, 2)
	want := []string{"早课", "无周次", "晚课"}
	if len(got) != len(want) {
		t.Fatalf("期望 %d 门课, 实际 %d: %+v", len(want), len(got), got)
	}
	for i, name := range want {
		if got[i].CourseName != name {
			t.Errorf("第 %d 门期望 %s, 实际 %s", i, name, got[i].CourseName)
		}
	}

	if got := CoursesForWeek(courses, 1, 3); len(got) != 4 {
		t.Errorf("第3周星期一期望 4 门课, 实际 %d", len(got))
	}
	if got := CoursesForWeek(courses, 3, 1); got == nil || len(got) != 0 {
		t.Errorf("无课时应返回空切片, 实际 %v", got)
	}
}

func TestSortCourses(t *testing.T) {
	courses := []Course{
		{DayIndex: 3, SectionOrder: 3, CourseName: "c"},
		{DayIndex: 1, SectionOrder: 5, CourseName: "b"},
		{DayIndex: 1, SectionOrder: 3, CourseName: "a1"},
		{DayIndex: 1, SectionOrder: 3, CourseName: "a2"},
	}
	sorted := SortCourses(courses)
	want := []string{"a1", "a2", "b", "c"}
	for i, name := range want {
		if sorted[i].CourseName != name {
			t.Errorf("第 %d 门期望 %s, 实际 %s", i, name, sorted[i].CourseName)
		}
	}
	if courses[0].CourseName != "c" {
		t.Error("SortCourses 不应修改原切片")
	}
}
