package model

import "time"

// 联赛状态
const (
	LeagueStatusPreDraft = "Pre-Draft"
)

// 联赛审计动作
const (
	LeagueActionCreate = "Create"
	LeagueActionJoin   = "Join"
)

// League 联赛表 — 对应 leagues
type League struct {
	LeagueID             string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"league_id"`
	Name                 string  `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description          *string `gorm:"type:text"                                      json:"description,omitempty"`
	MaxTeams             int     `gorm:"not null"                                       json:"max_teams"`
	PasswordHash         string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Status               string  `gorm:"type:varchar(20);not null;default:'Pre-Draft'"  json:"status"`
	IsActive             bool    `gorm:"not null;default:true"                          json:"is_active"`
	SeasonID             string  `gorm:"type:uuid;not null;index"                       json:"season_id"`
	CommissionerID       string  `gorm:"type:uuid;not null"                             json:"commissioner_id"`
	PlayoffType          int     `gorm:"not null"                                       json:"playoff_type"` // 4 | 6
	AllowDecimalPoints   bool    `gorm:"not null;default:true"                          json:"allow_decimal_points"`
	DefaultPositions     string  `gorm:"type:text;not null"                             json:"default_positions"`
	DefaultScoring       string  `gorm:"type:text;not null"                             json:"default_scoring"`
	TradeDeadlineActive  bool    `gorm:"not null;default:false"                         json:"trade_deadline_active"`
	MaxTradesPerTeam     *int    `json:"max_trades_per_team,omitempty"`
	MaxFreeAgentsPerTeam *int    `json:"max_free_agents_per_team,omitempty"`
	BaseModel

	// 关联
	Season *Season `gorm:"foreignKey:SeasonID;references:SeasonID" json:"season,omitempty"`
	Teams  []Team  `gorm:"foreignKey:LeagueID;references:LeagueID" json:"teams,omitempty"`
}

// TableName 指定表名
func (League) TableName() string { return "leagues" }

// Team 联赛内的梦幻球队 — 对应 teams
type Team struct {
	TeamID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	LeagueID string `gorm:"type:uuid;not null;index"                       json:"league_id"`
	UserID   string `gorm:"type:uuid;not null"                             json:"user_id"`
	TeamName string `gorm:"type:varchar(100);not null"                     json:"team_name"`
	Alias    string `gorm:"type:varchar(30);not null"                      json:"alias"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }

// LeagueAudit 联赛操作审计 — 对应 league_audits
type LeagueAudit struct {
	LeagueAuditID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"league_audit_id"`
	LeagueID      string    `gorm:"type:uuid;not null;index"                       json:"league_id"`
	UserID        string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Action        string    `gorm:"type:varchar(20);not null"                      json:"action"`
	Timestamp     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"timestamp"`
}

// TableName 指定表名
func (LeagueAudit) TableName() string { return "league_audits" }
