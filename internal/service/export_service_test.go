package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestExportService(r *testRepos) *exportService {
	cfg := testConfig()
	return &exportService{
		cfg:    cfg,
		repo:   r.repo,
		loc:    cfg.Timetable.Location(),
		now:    fixedNow,
		logger: zap.NewNop(),
	}
}

func importForExport(t *testing.T, r *testRepos) {
	t.Helper()
	importSample(t, newTestTimetableService(r))
}

func TestExportService_ExportExcel(t *testing.T) {
	r := newTestRepos()
	svc := newTestExportService(r)

	if _, _, err := svc.ExportExcel(context.Background(), testUser, 0); !errors.Is(err, ErrTimetableNotImported) {
		t.Fatalf("未导入时期望 ErrTimetableNotImported，实际 %v", err)
	}

	importForExport(t, r)
	buf, filename, err := svc.ExportExcel(context.Background(), testUser, 0)
	if err != nil {
		t.Fatalf("ExportExcel 失败: %v", err)
	}
	if filename != "2025春季学期_个人课表.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出文件无法打开: %v", err)
	}
	defer f.Close()

	if title, _ := f.GetCellValue(gridSheet, "A1"); title != "2025春季学期 个人课表" {
		t.Errorf("标题错误: %q", title)
	}
	if head, _ := f.GetCellValue(gridSheet, "B2"); head != "星期一" {
		t.Errorf("表头错误: %q", head)
	}
	if label, _ := f.GetCellValue(gridSheet, "A3"); label != "第1,2节" {
		t.Errorf("节次标签错误: %q", label)
	}
	wed, _ := f.GetCellValue(gridSheet, "D3")
	if !strings.Contains(wed, "课程A") || !strings.Contains(wed, "课程B") {
		t.Errorf("星期三第1,2节应包含两门课: %q", wed)
	}

	rows, err := f.GetRows(listSheet)
	if err != nil {
		t.Fatalf("读取课程列表失败: %v", err)
	}
	if len(rows) != 7 {
		t.Errorf("课程列表期望 1 行表头 + 6 行课程，实际 %d", len(rows))
	}
}

func TestExportService_ExportExcelByWeek(t *testing.T) {
	r := newTestRepos()
	svc := newTestExportService(r)
	importForExport(t, r)

	buf, filename, err := svc.ExportExcel(context.Background(), testUser, 2)
	if err != nil {
		t.Fatalf("ExportExcel 失败: %v", err)
	}
	if !strings.HasSuffix(filename, "_第2周.xlsx") {
		t.Errorf("文件名应包含周次: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出文件无法打开: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(listSheet)
	// 第 2 周：高数、物理(双周)、课程A、体育
	if len(rows) != 5 {
		t.Errorf("第2周课程列表期望 4 门课，实际 %d 行", len(rows))
	}
	if title, _ := f.GetCellValue(gridSheet, "A1"); title != "2025春季学期 个人课表 第2周" {
		t.Errorf("标题错误: %q", title)
	}
}

func TestExportService_ExportICS(t *testing.T) {
	r := newTestRepos()
	svc := newTestExportService(r)
	importForExport(t, r)

	if _, _, err := svc.ExportICS(context.Background(), testUser); !errors.Is(err, ErrFirstWeekNotSet) {
		t.Fatalf("未设置第一周时期望 ErrFirstWeekNotSet，实际 %v", err)
	}

	setFirstWeek(t, r, testUser, time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC))
	data, filename, err := svc.ExportICS(context.Background(), testUser)
	if err != nil {
		t.Fatalf("ExportICS 失败: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名错误: %s", filename)
	}

	content := string(data)
	// 高数 16 + A 16 + B 4 + 物理 4 + 线代 8 + 体育 20（无周次，按 max_weeks）
	if n := strings.Count(content, "BEGIN:VEVENT"); n != 68 {
		t.Errorf("事件数期望 68，实际 %d", n)
	}
	if !strings.Contains(content, "SUMMARY:高等数学") {
		t.Error("缺少课程名")
	}
	// 第1周星期一
	if !strings.Contains(content, "20250224") {
		t.Error("第1周星期一的日期缺失")
	}

	again, _, _ := svc.ExportICS(context.Background(), testUser)
	if !bytes.Equal(uidLines(data), uidLines(again)) {
		t.Error("重复导出的 UID 应保持稳定")
	}
}

func uidLines(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("UID:")) {
			out = append(out, line...)
		}
	}
	return out
}

func TestEventUID(t *testing.T) {
	r := newTestRepos()
	importForExport(t, r)
	tt := r.timetable.timetables[testUser]
	c := tt.Courses[0].ToParsed()

	if eventUID(tt.TimetableID, c, 1) == eventUID(tt.TimetableID, c, 2) {
		t.Error("不同周的 UID 不应相同")
	}
	if !strings.HasSuffix(eventUID(tt.TimetableID, c, 1), "@hit-timetable") {
		t.Error("UID 后缀错误")
	}
}
