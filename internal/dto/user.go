package dto

// ── 用户管理 DTO（管理员） ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin manager"`
	Status  string `form:"status"  binding:"omitempty,oneof=active locked"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"` // 匹配姓名、邮箱或别名
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager"`
}

// ResetPasswordResponse 重置密码响应
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}
