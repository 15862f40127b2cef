package repository

import (
	"context"

	"gorm.io/gorm"

	"hit-timetable/internal/model"
)

// courseBatchSize 批量插入课程的分批大小
const courseBatchSize = 200

// TimetableRepository 课表数据访问接口
type TimetableRepository interface {
	// GetByUser 读取用户课表及全部课程（按导入顺序），不存在时返回 gorm.ErrRecordNotFound
	GetByUser(ctx context.Context, userID string) (*model.Timetable, error)
	// Replace 在事务中全量替换用户课表：删除旧课表与课程，写入新课表与课程
	Replace(ctx context.Context, timetable *model.Timetable, courses []model.Course) error
	// Clear 在事务中删除用户课表、课程与第一周日期
	Clear(ctx context.Context, userID string) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) GetByUser(ctx context.Context, userID string) (*model.Timetable, error) {
	var tt model.Timetable
	err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *timetableRepo) Replace(ctx context.Context, timetable *model.Timetable, courses []model.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTimetable(tx, timetable.UserID); err != nil {
			return err
		}

		// 课程单独批量写入，避免关联自动保存
		timetable.Courses = nil
		if err := tx.Omit("Courses").Create(timetable).Error; err != nil {
			return err
		}

		if len(courses) == 0 {
			return nil
		}
		for i := range courses {
			courses[i].TimetableID = timetable.TimetableID
		}
		if err := tx.CreateInBatches(&courses, courseBatchSize).Error; err != nil {
			return err
		}
		timetable.Courses = courses
		return nil
	})
}

func (r *timetableRepo) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTimetable(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.UserSetting{}).Error
	})
}

// deleteTimetable 硬删除用户课表与课程（替换场景无需保留旧数据）
func deleteTimetable(tx *gorm.DB, userID string) error {
	ids := tx.Model(&model.Timetable{}).Select("timetable_id").Where("user_id = ?", userID)
	if err := tx.Where("timetable_id IN (?)", ids).Delete(&model.Course{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&model.Timetable{}).Error
}
