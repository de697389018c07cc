package dto

// ── 联赛模块 DTO ──

// CreateLeagueRequest 创建联赛请求
// max_teams 取值与密码强度在 Service 层校验
type CreateLeagueRequest struct {
	Name                 string  `json:"name"                   binding:"required,min=1,max=100"`
	Description          *string `json:"description"            binding:"omitempty,max=1000"`
	MaxTeams             int     `json:"max_teams"              binding:"required"`
	Password             string  `json:"password"               binding:"required"`
	PlayoffType          int     `json:"playoff_type"           binding:"required,oneof=4 6"`
	CommissionerTeamName string  `json:"commissioner_team_name" binding:"required,min=1,max=100"`
	CommissionerAlias    string  `json:"commissioner_alias"     binding:"required,max=30"`
}

// JoinLeagueRequest 加入联赛请求
type JoinLeagueRequest struct {
	LeagueID string `json:"league_id" binding:"required"`
	Password string `json:"password"  binding:"required,max=50"`
	Alias    string `json:"alias"     binding:"required,max=30"`
	TeamName string `json:"team_name" binding:"required,max=50"`
}

// SearchLeagueRequest 联赛搜索条件（query）
type SearchLeagueRequest struct {
	Name     string `form:"name"      binding:"omitempty,max=100"`
	SeasonID string `form:"season_id"`
	IsActive *bool  `form:"is_active"`
}

// CreateLeagueResponse 创建联赛结果
type CreateLeagueResponse struct {
	LeagueID       string `json:"league_id"`
	TeamID         string `json:"team_id"`
	RemainingSpots int    `json:"remaining_spots"`
}

// JoinLeagueResponse 加入联赛结果
type JoinLeagueResponse struct {
	LeagueID       string `json:"league_id"`
	TeamID         string `json:"team_id"`
	RemainingSpots int    `json:"remaining_spots"`
}

// LeagueResponse 联赛信息
type LeagueResponse struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         *string        `json:"description,omitempty"`
	MaxTeams            int            `json:"max_teams"`
	TeamsCount          int            `json:"teams_count"`
	Status              string         `json:"status"`
	IsActive            bool           `json:"is_active"`
	SeasonID            string         `json:"season_id"`
	SeasonName          string         `json:"season_name,omitempty"`
	CommissionerID      string         `json:"commissioner_id"`
	PlayoffType         int            `json:"playoff_type"`
	AllowDecimalPoints  bool           `json:"allow_decimal_points"`
	DefaultPositions    string         `json:"default_positions"`
	DefaultScoring      string         `json:"default_scoring"`
	TradeDeadlineActive bool           `json:"trade_deadline_active"`
	CreatedAt           string         `json:"created_at"`
	Teams               []TeamResponse `json:"teams,omitempty"`
}

// TeamResponse 联赛内球队
type TeamResponse struct {
	ID       string `json:"id"`
	TeamName string `json:"team_name"`
	Alias    string `json:"alias"`
	UserID   string `json:"user_id"`
}
