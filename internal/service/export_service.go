package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hit-timetable/config"
	"hit-timetable/internal/model"
	"hit-timetable/internal/repository"
	"hit-timetable/internal/timetable"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 导出文件的 Content-Type
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel：「课表」Sheet 以节次为行、星期为列还原网格；「课程列表」Sheet 平铺全部课程
//   - ICS：对第 1 ~ max_weeks 周逐周匹配周次描述，每次上课生成一个全天事件
//   - 导出以内存字节返回，由 Handler 层设置响应头
type ExportService interface {
	// ExportExcel 导出课表为 Excel，week 为 0 表示不按周筛选
	ExportExcel(ctx context.Context, userID string, week int) (*bytes.Buffer, string, error)
	// ExportICS 导出课表为 iCalendar，需要已设置第一周日期
	ExportICS(ctx context.Context, userID string) ([]byte, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{
		cfg:    cfg,
		repo:   repo,
		loc:    cfg.Timetable.Location(),
		now:    time.Now,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportExcel 导出 Excel
// ═══════════════════════════════════════════════════════════
//
// 「课表」Sheet：
//   - A1：来源标题（按周导出时附加「第N周」）
//   - 第 2 行：节次 | 星期一 … 星期日
//   - 之后每个节次一行，单元格内多门课程以空行分隔

const (
	gridSheet = "课表"
	listSheet = "课程列表"
)

func (s *exportService) ExportExcel(ctx context.Context, userID string, week int) (*bytes.Buffer, string, error) {
	tt, err := s.loadTimetable(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	courses := timetable.SortCourses(model.ParsedCourses(tt.Courses))
	if week > 0 {
		filtered := make([]timetable.Course, 0, len(courses))
		for _, c := range courses {
			if timetable.Matches(c.WeekSpec, week) {
				filtered = append(filtered, c)
			}
		}
		courses = filtered
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gridSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if _, err := f.NewSheet(listSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if err := writeGridSheet(f, tt.SourceTitle, week, courses); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if err := writeListSheet(f, courses); err != nil {
		return nil, "", s.generateFailed(err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	return buf, exportFileName(tt.SourceTitle, week, "xlsx"), nil
}

// sectionRow 网格中的一行
type sectionRow struct {
	order int
	label string
}

func writeGridSheet(f *excelize.File, title string, week int, courses []timetable.Course) error {
	if week > 0 {
		title = strings.TrimSpace(fmt.Sprintf("%s 第%d周", title, week))
	}
	if err := f.SetCellValue(gridSheet, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(gridSheet, "A1", "H1"); err != nil {
		return err
	}

	header := []interface{}{"节次"}
	for day := 1; day <= 7; day++ {
		header = append(header, timetable.DayName(day))
	}
	if err := f.SetSheetRow(gridSheet, "A2", &header); err != nil {
		return err
	}

	// 收集节次行（按源表行号）与单元格内容
	var rows []sectionRow
	seen := make(map[int]bool)
	cells := make(map[[2]int][]string)
	for _, c := range courses {
		if !seen[c.SectionOrder] {
			seen[c.SectionOrder] = true
			rows = append(rows, sectionRow{order: c.SectionOrder, label: c.SectionLabel})
		}
		key := [2]int{c.SectionOrder, c.DayIndex}
		cells[key] = append(cells[key], courseCellText(c))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].order < rows[j].order })

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	for i, r := range rows {
		rowNum := i + 3
		values := []interface{}{r.label}
		for day := 1; day <= 7; day++ {
			values = append(values, strings.Join(cells[[2]int{r.order, day}], "\n\n"))
		}
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(gridSheet, start, &values); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(8, rowNum)
		if err := f.SetCellStyle(gridSheet, start, end, wrap); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(gridSheet, "A", "A", 12); err != nil {
		return err
	}
	return f.SetColWidth(gridSheet, "B", "H", 22)
}

func writeListSheet(f *excelize.File, courses []timetable.Course) error {
	header := []interface{}{"星期", "节次", "课程", "教师", "周次", "地点"}
	if err := f.SetSheetRow(listSheet, "A1", &header); err != nil {
		return err
	}
	for i, c := range courses {
		values := []interface{}{c.DayName, c.SectionLabel, c.CourseName, c.Teacher, c.WeekSpec, c.Location}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(listSheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// courseCellText 课程名、教师与周次、地点各占一行，空字段省略
func courseCellText(c timetable.Course) string {
	lines := []string{c.CourseName}
	if detail := strings.TrimSpace(c.Teacher + c.WeekSpec); detail != "" {
		lines = append(lines, detail)
	}
	if c.Location != "" {
		lines = append(lines, c.Location)
	}
	return strings.Join(lines, "\n")
}

// ═══════════════════════════════════════════════════════════
// ExportICS 导出 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context, userID string) ([]byte, string, error) {
	tt, err := s.loadTimetable(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	setting, err := s.repo.Setting.Get(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户偏好失败", zap.Error(err))
		return nil, "", err
	}
	if setting == nil || setting.FirstWeekDate == nil {
		return nil, "", ErrFirstWeekNotSet
	}
	d := *setting.FirstWeekDate
	firstWeek := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//hit-timetable//课表导出//CN")

	stamp := s.now()
	events := 0
	for _, c := range timetable.SortCourses(model.ParsedCourses(tt.Courses)) {
		for week := 1; week <= s.cfg.Timetable.MaxWeeks; week++ {
			if !timetable.Matches(c.WeekSpec, week) {
				continue
			}
			date := timetable.CourseDate(firstWeek, week, c.DayIndex)
			event := cal.AddEvent(eventUID(tt.TimetableID, c, week))
			event.SetSummary(c.CourseName)
			if c.Location != "" {
				event.SetLocation(c.Location)
			}
			event.SetDescription(eventDescription(c, week))
			event.SetAllDayStartAt(date)
			event.SetAllDayEndAt(date.AddDate(0, 0, 1))
			event.SetDtStampTime(stamp)
			events++
		}
	}

	s.logger.Info("导出 ICS", zap.String("user_id", userID), zap.Int("events", events))
	return []byte(cal.Serialize()), exportFileName(tt.SourceTitle, 0, "ics"), nil
}

// eventUID 同一课表、同一课程、同一周生成稳定的 UID，重复导出可被日历应用去重
func eventUID(timetableID string, c timetable.Course, week int) string {
	name := fmt.Sprintf("%s/%d/%d/%s/%d", timetableID, c.DayIndex, c.SectionOrder, c.CourseName, week)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@hit-timetable"
}

func eventDescription(c timetable.Course, week int) string {
	parts := []string{fmt.Sprintf("第%d周 %s %s", week, c.DayName, c.SectionLabel)}
	if c.Teacher != "" {
		parts = append(parts, "教师："+c.Teacher)
	}
	if c.WeekSpec != "" {
		parts = append(parts, "周次："+c.WeekSpec)
	}
	return strings.Join(parts, "\n")
}

// ── 辅助函数 ──

func (s *exportService) loadTimetable(ctx context.Context, userID string) (*model.Timetable, error) {
	tt, err := s.repo.Timetable.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotImported
		}
		s.logger.Error("查询课表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return tt, nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("生成导出文件失败", zap.Error(err))
	return ErrExportGenerateFail
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_")

func exportFileName(title string, week int, ext string) string {
	name := fileNameReplacer.Replace(strings.TrimSpace(title))
	if name == "" {
		name = "课表"
	}
	if week > 0 {
		name = fmt.Sprintf("%s_第%d周", name, week)
	}
	return name + "." + ext
}
