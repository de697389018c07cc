package dto

// ── 球员模块 DTO ──

// CreatePlayerRequest 创建球员请求
type CreatePlayerRequest struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Position string `json:"position" binding:"required,max=10"`
	Team     string `json:"team"     binding:"required,max=100"`
}

// UpdatePlayerRequest 更新球员请求，version 用于乐观锁
type UpdatePlayerRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=100"`
	Position *string `json:"position" binding:"omitempty,max=10"`
	Team     *string `json:"team"     binding:"omitempty,max=100"`
	Version  int     `json:"version"  binding:"required,min=1"`
}

// PlayerResponse 球员信息
type PlayerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	Version  int    `json:"version"`
}
