package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hit-timetable/internal/model"
	pkgerrors "hit-timetable/pkg/errors"
)

// SettingRepository 用户偏好数据访问接口
type SettingRepository interface {
	// Get 读取用户偏好，不存在时返回 gorm.ErrRecordNotFound
	Get(ctx context.Context, userID string) (*model.UserSetting, error)
	// SetFirstWeek 按版本号更新第一周日期；version 为 0 表示首次创建。
	// 版本不一致或并发创建时返回 ErrOptimisticLock。
	SetFirstWeek(ctx context.Context, userID string, date *time.Time, version int) (*model.UserSetting, error)
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo 创建 SettingRepository 实例
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context, userID string) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) SetFirstWeek(ctx context.Context, userID string, date *time.Time, version int) (*model.UserSetting, error) {
	if version == 0 {
		setting := &model.UserSetting{UserID: userID, FirstWeekDate: date, Version: 1}
		if err := r.db.WithContext(ctx).Create(setting).Error; err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				return nil, pkgerrors.ErrOptimisticLock
			}
			return nil, err
		}
		return setting, nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.UserSetting{}).
		Where("user_id = ? AND version = ?", userID, version).
		Updates(map[string]interface{}{
			"first_week_date": date,
			"version":         version + 1,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.ErrOptimisticLock
	}
	return r.Get(ctx, userID)
}
