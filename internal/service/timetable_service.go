package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hit-timetable/config"
	"hit-timetable/internal/dto"
	"hit-timetable/internal/model"
	"hit-timetable/internal/repository"
	"hit-timetable/internal/timetable"
)

// ── 课表模块业务错误 ──

var (
	ErrTimetableNotImported  = errors.New("尚未导入课表")
	ErrTimetableFileTooLarge = errors.New("课表文件过大")
	ErrFirstWeekInvalid      = errors.New("第一周日期格式无效，应为 YYYY-MM-DD")
	ErrFirstWeekNotSet       = errors.New("尚未设置第一周日期")
)

// 今日视图状态
const (
	TodayNotImported = "not_imported"
	TodayUnset       = "unset"
	TodayNotStarted  = "not_started"
	TodayInProgress  = "in_progress"
)

const dateLayout = "2006-01-02"

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 导入采用全量替换：解析失败时不触碰已有数据；
//     解析成功后在单个事务中删除旧课表并写入新课表。
//   - 查询路径只读取两份快照（课程列表、第一周日期），
//     周次计算与匹配交给 internal/timetable 的纯函数。
// ─────────────────────────────────────────────────────────────

// TimetableService 课表模块业务接口
type TimetableService interface {
	// Import 解析上传的 .xls/.xlsx 并替换用户课表
	Import(ctx context.Context, userID, fileName string, r io.Reader) (*dto.ImportTimetableResponse, error)
	// GetMyTimetable 获取完整课表及当前周次
	GetMyTimetable(ctx context.Context, userID string) (*dto.MyTimetableResponse, error)
	// Clear 清空课表与第一周日期
	Clear(ctx context.Context, userID string) error
	// SetFirstWeek 设置第一周日期
	SetFirstWeek(ctx context.Context, userID string, req *dto.SetFirstWeekRequest) (*dto.WeekInfoResponse, error)
	// GetWeekInfo 获取当前周次
	GetWeekInfo(ctx context.Context, userID string) (*dto.WeekInfoResponse, error)
	// GetCourses 查询某天某周的课程
	GetCourses(ctx context.Context, userID string, dayIndex, week int) (*dto.CoursesResponse, error)
	// GetToday 今日课程视图
	GetToday(ctx context.Context, userID string) (*dto.TodayResponse, error)
}

type timetableService struct {
	cfg    *config.Config
	repo   *repository.Repository
	parser *timetable.Parser
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TimetableService {
	return newTimetableService(cfg, repo, logger, time.Now)
}

func newTimetableService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger, now func() time.Time) *timetableService {
	return &timetableService{
		cfg:  cfg,
		repo: repo,
		parser: timetable.NewParser(
			timetable.WithSectionColumn(cfg.Import.SectionColumn),
			timetable.WithClock(now),
		),
		loc:    cfg.Timetable.Location(),
		now:    now,
		logger: logger,
	}
}

// ════════════════════════════════════════════════════════════
// Import 导入课表
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 读取文件（超过 max_file_size 拒绝）
//   2. 识别格式并读取工作表
//   3. 解析为课程列表（任一步失败整体失败）
//   4. 事务替换旧课表

func (s *timetableService) Import(ctx context.Context, userID, fileName string, r io.Reader) (*dto.ImportTimetableResponse, error) {
	limit := s.cfg.Import.MaxFileSize
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", timetable.ErrSourceUnreadable, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTimetableFileTooLarge
	}

	sheet, err := timetable.OpenWorkbook(bytes.NewReader(data), s.cfg.Import.SheetIndex)
	if err != nil {
		s.logger.Warn("课表文件读取失败", zap.String("user_id", userID), zap.String("file", fileName), zap.Error(err))
		return nil, err
	}

	result, err := s.parser.Parse(sheet)
	if err != nil {
		s.logger.Warn("课表解析失败", zap.String("user_id", userID), zap.String("file", fileName), zap.Error(err))
		return nil, err
	}

	tt := &model.Timetable{
		UserID:      userID,
		SourceTitle: result.SourceTitle,
		FileName:    fileName,
		CourseCount: len(result.Courses),
		DayCount:    result.DayCount(),
		ImportedAt:  result.ImportedAt,
	}
	if err := s.repo.Timetable.Replace(ctx, tt, model.NewCourses(result.Courses)); err != nil {
		s.logger.Error("课表导入事务失败", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("课表导入失败: %w", err)
	}

	s.logger.Info("课表导入成功",
		zap.String("user_id", userID),
		zap.String("title", tt.SourceTitle),
		zap.Int("courses", tt.CourseCount),
		zap.Int("days", tt.DayCount),
	)

	return &dto.ImportTimetableResponse{
		SourceTitle: tt.SourceTitle,
		FileName:    tt.FileName,
		CourseCount: tt.CourseCount,
		DayCount:    tt.DayCount,
		ImportedAt:  tt.ImportedAt.In(s.loc).Format(time.RFC3339),
	}, nil
}

// ════════════════════════════════════════════════════════════
// 查询
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetMyTimetable(ctx context.Context, userID string) (*dto.MyTimetableResponse, error) {
	tt, err := s.loadTimetable(ctx, userID)
	if err != nil {
		return nil, err
	}
	info, err := s.GetWeekInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses := timetable.SortCourses(model.ParsedCourses(tt.Courses))
	return &dto.MyTimetableResponse{
		SourceTitle: tt.SourceTitle,
		FileName:    tt.FileName,
		CourseCount: len(courses),
		DayCount:    timetable.CountDays(courses),
		ImportedAt:  tt.ImportedAt.In(s.loc).Format(time.RFC3339),
		WeekInfo:    *info,
		Courses:     courses,
	}, nil
}

func (s *timetableService) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Timetable.Clear(ctx, userID); err != nil {
		s.logger.Error("清空课表失败", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("清空课表失败: %w", err)
	}
	s.logger.Info("课表已清空", zap.String("user_id", userID))
	return nil
}

func (s *timetableService) GetCourses(ctx context.Context, userID string, dayIndex, week int) (*dto.CoursesResponse, error) {
	tt, err := s.loadTimetable(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.CoursesResponse{
		DayIndex: dayIndex,
		DayName:  timetable.DayName(dayIndex),
		Week:     week,
		Courses:  timetable.CoursesForWeek(model.ParsedCourses(tt.Courses), dayIndex, week),
	}, nil
}

// ════════════════════════════════════════════════════════════
// 第一周日期与当前周次
// ════════════════════════════════════════════════════════════

func (s *timetableService) SetFirstWeek(ctx context.Context, userID string, req *dto.SetFirstWeekRequest) (*dto.WeekInfoResponse, error) {
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		return nil, ErrFirstWeekInvalid
	}

	// 未携带版本号时以当前版本为准（后写覆盖）
	version := req.Version
	if version == 0 {
		current, err := s.repo.Setting.Get(ctx, userID)
		switch {
		case err == nil:
			version = current.Version
		case !errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Error("查询用户偏好失败", zap.Error(err))
			return nil, err
		}
	}

	setting, err := s.repo.Setting.SetFirstWeek(ctx, userID, &date, version)
	if err != nil {
		return nil, err
	}
	return s.weekInfo(setting), nil
}

func (s *timetableService) GetWeekInfo(ctx context.Context, userID string) (*dto.WeekInfoResponse, error) {
	setting, err := s.repo.Setting.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询用户偏好失败", zap.Error(err))
			return nil, err
		}
		setting = nil
	}
	return s.weekInfo(setting), nil
}

func (s *timetableService) weekInfo(setting *model.UserSetting) *dto.WeekInfoResponse {
	var first *time.Time
	resp := &dto.WeekInfoResponse{}
	if setting != nil {
		resp.Version = setting.Version
		if setting.FirstWeekDate != nil {
			d := s.localDate(*setting.FirstWeekDate)
			first = &d
			resp.FirstWeekDate = d.Format(dateLayout)
		}
	}

	info := timetable.CurrentWeek(first, s.now().In(s.loc))
	resp.Status = info.Status
	resp.Week = info.Week
	switch info.Status {
	case timetable.WeekUnset:
		resp.Text = "第一周日期：未设置"
	case timetable.WeekNotStarted:
		resp.Text = fmt.Sprintf("第一周日期：%s（课程未开始）", resp.FirstWeekDate)
	default:
		resp.Text = fmt.Sprintf("第一周日期：%s（当前第%d周）", resp.FirstWeekDate, info.Week)
	}
	return resp
}

// localDate 数据库 date 列按 UTC 零点读回，转为配置时区的同一日历日
func (s *timetableService) localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// ════════════════════════════════════════════════════════════
// GetToday 今日课程视图
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetToday(ctx context.Context, userID string) (*dto.TodayResponse, error) {
	tt, err := s.loadTimetable(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrTimetableNotImported) {
			return &dto.TodayResponse{Title: "今日课程", Status: TodayNotImported, Lines: []string{}, Message: "未导入课表"}, nil
		}
		return nil, err
	}

	info, err := s.GetWeekInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.loc)
	dayIndex := timetable.DayIndexOf(today)
	dayName := timetable.DayName(dayIndex)

	resp := &dto.TodayResponse{Title: dayName + "课程", Lines: []string{}}
	switch info.Status {
	case timetable.WeekUnset:
		resp.Status = TodayUnset
		resp.Message = "请先设置第一周日期"
		return resp, nil
	case timetable.WeekNotStarted:
		resp.Status = TodayNotStarted
		resp.Message = "课程未开始"
		return resp, nil
	}

	resp.Status = TodayInProgress
	resp.Title = fmt.Sprintf("%s 第%d周", dayName, info.Week)
	for _, c := range timetable.CoursesForWeek(model.ParsedCourses(tt.Courses), dayIndex, info.Week) {
		resp.Lines = append(resp.Lines, fmt.Sprintf("%s %s@%s", c.SectionLabel, c.CourseName, c.Location))
	}
	if len(resp.Lines) == 0 {
		resp.Message = "今天没有课程"
	}
	return resp, nil
}

// ── 辅助函数 ──

func (s *timetableService) loadTimetable(ctx context.Context, userID string) (*model.Timetable, error) {
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
