package database

import (
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  gormlogger.LogLevel
	}{
		{"debug", gormlogger.Info},
		{"info", gormlogger.Warn},
		{"warn", gormlogger.Error},
		{"error", gormlogger.Error},
		{"无效", gormlogger.Warn},
	}
	for _, tt := range tests {
		if got := GormLogLevel(tt.level); got != tt.want {
			t.Errorf("GormLogLevel(%q) 期望 %v, 实际 %v", tt.level, tt.want, got)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("读取内嵌迁移失败: %v", err)
	}
	if len(entries) == 0 || len(entries)%2 != 0 {
		t.Errorf("迁移文件应成对出现 (up/down), 实际 %d 个", len(entries))
	}
}
