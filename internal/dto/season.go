package dto

// ── 赛季模块 DTO ──

// CreateSeasonRequest 创建赛季请求
// weeks_count 的取值范围由赛季规划统一校验，便于返回具体原因
type CreateSeasonRequest struct {
	Name       string `json:"name"        binding:"required,max=100"`
	WeeksCount int    `json:"weeks_count"`
	StartDate  string `json:"start_date"  binding:"required"` // "2026-09-10"
	EndDate    string `json:"end_date"    binding:"required"` // "2027-01-10"
	IsCurrent  bool   `json:"is_current"`
}

// CheckConflictsRequest 创建前冲突预检请求
type CheckConflictsRequest struct {
	Name      string `json:"name"       binding:"required,max=100"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`
	IsCurrent bool   `json:"is_current"`
}

// SeasonResponse 赛季信息响应
type SeasonResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	WeeksCount int            `json:"weeks_count"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	IsCurrent  bool           `json:"is_current"`
	CreatedAt  string         `json:"created_at"`
	Weeks      []WeekResponse `json:"weeks"`
}

// WeekResponse 赛季周次
type WeekResponse struct {
	Number    int    `json:"number"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// NameCheckResponse 赛季名称可用性
type NameCheckResponse struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
