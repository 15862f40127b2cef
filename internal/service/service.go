package service

import (
	"go.uber.org/zap"

	"hit-timetable/config"
	"hit-timetable/internal/repository"
	"hit-timetable/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Timetable TimetableService
	Export    ExportService
}

// NewService 创建 Service 聚合，blacklist 为 nil 时注销与 Token 轮换不生效
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Timetable: NewTimetableService(cfg, repo, logger),
		Export:    NewExportService(cfg, repo, logger),
	}
}
