package model

// NflTeam NFL 真实球队表 — 对应 nfl_teams，由管理员手工维护
type NflTeam struct {
	NflTeamID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"nfl_team_id"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	City      string `gorm:"type:varchar(100);not null"                     json:"city"`
	Image     string `gorm:"type:varchar(255);not null"                     json:"image"`
	Thumbnail string `gorm:"type:varchar(255);not null"                     json:"thumbnail"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (NflTeam) TableName() string { return "nfl_teams" }
