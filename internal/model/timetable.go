package model

import (
	"time"

	"hit-timetable/internal/timetable"
)

// Timetable 导入的课表，对应 timetables，每个用户至多一份
type Timetable struct {
	TimetableID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:uk_timetables_user" json:"user_id"`
	SourceTitle string    `gorm:"type:varchar(255);not null;default:''"          json:"source_title"`
	FileName    string    `gorm:"type:varchar(255);not null;default:''"          json:"file_name"`
	CourseCount int       `gorm:"not null;default:0"                             json:"course_count"`
	DayCount    int       `gorm:"not null;default:0"                             json:"day_count"`
	ImportedAt  time.Time `gorm:"not null"                                       json:"imported_at"`
	BaseModel

	// 关联
	Courses []Course `gorm:"foreignKey:TimetableID;references:TimetableID" json:"courses,omitempty"`
}

// TableName 指定表名
func (Timetable) TableName() string { return "timetables" }

// Course 课程记录，对应 courses，导入后不再修改
type Course struct {
	CourseID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	TimetableID  string `gorm:"type:uuid;not null"                             json:"timetable_id"`
	Position     int    `gorm:"not null"                                       json:"position"` // 导入顺序
	DayIndex     int    `gorm:"type:smallint;not null"                         json:"day_index"`
	DayName      string `gorm:"type:varchar(16);not null"                      json:"day_name"`
	SectionLabel string `gorm:"type:varchar(64);not null"                      json:"section_label"`
	SectionOrder int    `gorm:"not null"                                       json:"section_order"`
	CourseName   string `gorm:"type:varchar(255);not null"                     json:"course_name"`
	Teacher      string `gorm:"type:varchar(255);not null;default:''"          json:"teacher"`
	WeekSpec     string `gorm:"type:varchar(255);not null;default:''"          json:"week_spec"`
	Location     string `gorm:"type:varchar(255);not null;default:''"          json:"location"`
	RawCellText  string `gorm:"type:text;not null;default:''"                  json:"raw_cell_text"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// NewCourses 将解析结果转为持久化记录，Position 保留导入顺序
func NewCourses(parsed []timetable.Course) []Course {
	courses := make([]Course, len(parsed))
	for i, c := range parsed {
		courses[i] = Course{
			Position:     i,
			DayIndex:     c.DayIndex,
			DayName:      c.DayName,
			SectionLabel: c.SectionLabel,
			SectionOrder: c.SectionOrder,
			CourseName:   c.CourseName,
			Teacher:      c.Teacher,
			WeekSpec:     c.WeekSpec,
			Location:     c.Location,
			RawCellText:  c.RawCellText,
		}
	}
	return courses
}

// ToParsed 转回领域对象，供周次匹配使用
func (c *Course) ToParsed() timetable.Course {
	return timetable.Course{
		DayIndex:     c.DayIndex,
		DayName:      c.DayName,
		SectionLabel: c.SectionLabel,
		SectionOrder: c.SectionOrder,
		CourseName:   c.CourseName,
		Teacher:      c.Teacher,
		WeekSpec:     c.WeekSpec,
		Location:     c.Location,
		RawCellText:  c.RawCellText,
	}
}

// ParsedCourses 批量转回领域对象
func ParsedCourses(courses []Course) []timetable.Course {
	parsed := make([]timetable.Course, len(courses))
	for i := range courses {
		parsed[i] = courses[i].ToParsed()
	}
	return parsed
}
