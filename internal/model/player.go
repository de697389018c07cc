package model

// Player 球员表 — 对应 players
type Player struct {
	PlayerID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"player_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Position string `gorm:"type:varchar(10);not null"                      json:"position"`
	Team     string `gorm:"type:varchar(100);not null"                     json:"team"`
	VersionedModel
}

// TableName 指定表名
func (Player) TableName() string { return "players" }
