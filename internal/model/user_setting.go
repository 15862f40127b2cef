package model

import "time"

// UserSetting 用户偏好，对应 user_settings
type UserSetting struct {
	UserID        string     `gorm:"type:uuid;primaryKey"  json:"user_id"`
	FirstWeekDate *time.Time `gorm:"type:date"             json:"first_week_date"` // 第一周中任意一天，nil 表示未设置
	Version       int        `gorm:"not null;default:1"    json:"version"`
	BaseModel
}

// TableName 指定表名
func (UserSetting) TableName() string { return "user_settings" }
