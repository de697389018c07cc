package dto

// ── NFL 球队模块 DTO ──

// CreateNflTeamRequest 创建 NFL 球队请求
type CreateNflTeamRequest struct {
	Name  string `json:"name"  binding:"required,max=100"`
	City  string `json:"city"  binding:"required,max=100"`
	Image string `json:"image" binding:"required,max=255"` // 已上传图片的引用
}

// NflTeamResponse NFL 球队信息
type NflTeamResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
