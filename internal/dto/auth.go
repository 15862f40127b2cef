package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username    string `json:"username"     binding:"required,min=3,max=32,alphanum"`
	DisplayName string `json:"display_name" binding:"omitempty,max=32"`
	Password    string `json:"password"     binding:"required,min=8,max=64"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
