package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"hit-timetable/config"
	"hit-timetable/internal/model"
	"hit-timetable/internal/repository"
	pkgerrors "hit-timetable/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 与 username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uk_users_username"}
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	user.CreatedAt = time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)
	m.users[user.Username] = user
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.UserID == id {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok && u.Username == username {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	settings map[string]*model.UserSetting
	getErr   error
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{settings: make(map[string]*model.UserSetting)}
}

func (m *mockSettingRepo) Get(_ context.Context, userID string) (*model.UserSetting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.settings[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) SetFirstWeek(_ context.Context, userID string, date *time.Time, version int) (*model.UserSetting, error) {
	current, exists := m.settings[userID]
	if version == 0 {
		if exists {
			return nil, pkgerrors.ErrOptimisticLock
		}
		s := &model.UserSetting{UserID: userID, FirstWeekDate: date, Version: 1}
		m.settings[userID] = s
		cp := *s
		return &cp, nil
	}
	if !exists || current.Version != version {
		return nil, pkgerrors.ErrOptimisticLock
	}
	current.FirstWeekDate = date
	current.Version = version + 1
	cp := *current
	return &cp, nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	timetables   map[string]*model.Timetable
	settings     *mockSettingRepo
	replaceCalls int
	replaceErr   error
}

func newMockTimetableRepo(settings *mockSettingRepo) *mockTimetableRepo {
	return &mockTimetableRepo{timetables: make(map[string]*model.Timetable), settings: settings}
}

func (m *mockTimetableRepo) GetByUser(_ context.Context, userID string) (*model.Timetable, error) {
	if tt, ok := m.timetables[userID]; ok {
		cp := *tt
		cp.Courses = append([]model.Course(nil), tt.Courses...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) Replace(_ context.Context, tt *model.Timetable, courses []model.Course) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	tt.TimetableID = fmt.Sprintf("tt-%s-%d", tt.UserID, m.replaceCalls)
	for i := range courses {
		courses[i].TimetableID = tt.TimetableID
		courses[i].CourseID = fmt.Sprintf("%s-c%d", tt.TimetableID, i)
	}
	stored := *tt
	stored.Courses = append([]model.Course(nil), courses...)
	m.timetables[tt.UserID] = &stored
	return nil
}

func (m *mockTimetableRepo) Clear(_ context.Context, userID string) error {
	delete(m.timetables, userID)
	delete(m.settings.settings, userID)
	return nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		m.revoked[jti] = ttl
	}
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 测试辅助 ──

type testRepos struct {
	repo      *repository.Repository
	users     *mockUserRepo
	timetable *mockTimetableRepo
	settings  *mockSettingRepo
}

func newTestRepos() *testRepos {
	settings := newMockSettingRepo()
	r := &testRepos{
		users:     newMockUserRepo(),
		timetable: newMockTimetableRepo(settings),
		settings:  settings,
	}
	r.repo = &repository.Repository{
		User:      r.users,
		Timetable: r.timetable,
		Setting:   r.settings,
	}
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Import: config.ImportConfig{
			MaxFileSize:   1 << 20,
			SectionColumn: 1,
			RateLimit:     10,
			RateWindow:    time.Minute,
		},
		Timetable: config.TimetableConfig{MaxWeeks: 20, Timezone: "Asia/Shanghai"},
	}
}

// sampleWorkbook 构造一份典型的教务系统课表
func sampleWorkbook(t *testing.T) []byte {
	t.Helper()
	rows := [][]interface{}{
		{"2025春季学期 个人课表"},
		{"", "节次", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"},
		{"上午", "第1,2节", "高等数学\n张老师[1-16]主楼203", "", "课程A\n老师甲[1-16]L203\n课程B\n老师乙[1-8]单周G305"},
		{"", "第3,4节", "", "大学物理\n李老师[1-8]双周\n格物楼305", "线性代数\n陈老师[9-16]正心楼11"},
		{"下午", "第5,6节", "", "", "体育\n正心楼101"},
	}

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("写入行失败: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("生成工作簿失败: %v", err)
	}
	return buf.Bytes()
}

func fixedNow() time.Time {
	// 2025-03-05 星期三 10:00 (UTC+8)
	return time.Date(2025, 3, 5, 2, 0, 0, 0, time.UTC)
}

func setFirstWeek(t *testing.T, r *testRepos, userID string, date time.Time) {
	t.Helper()
	if _, err := r.settings.SetFirstWeek(context.Background(), userID, &date, 0); err != nil {
		t.Fatalf("设置第一周失败: %v", err)
	}
}
