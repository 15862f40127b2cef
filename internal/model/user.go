package model

// User 用户表，对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(64);not null"                      json:"username"`
	DisplayName  string `gorm:"type:varchar(64);not null;default:''"           json:"display_name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
