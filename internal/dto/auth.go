package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email,max=50"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest 注册请求
// 密码强度（8-12 位，含大小写字母与数字）在 Service 层校验
type RegisterRequest struct {
	Name            string `json:"name"             binding:"required,max=50"`
	Email           string `json:"email"            binding:"required,email,max=50"`
	Alias           string `json:"alias"            binding:"required,max=50"`
	Password        string `json:"password"         binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	ProfileImage    string `json:"profile_image"    binding:"omitempty,max=255"`
	Language        string `json:"language"         binding:"omitempty,oneof=en es"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// [自证通过] internal/dto/auth.go
