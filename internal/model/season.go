package model

import "time"

// Season 赛季表 — 对应 seasons
// 赛季与其全部周次在同一事务中创建，创建后不可修改。
type Season struct {
	SeasonID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"season_id"`
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	WeeksCount int       `gorm:"not null"                                       json:"weeks_count"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsCurrent  bool      `gorm:"not null;default:false"                         json:"is_current"`
	BaseModel

	// 关联
	Weeks []Week `gorm:"foreignKey:SeasonID;references:SeasonID" json:"weeks,omitempty"`
}

// TableName 指定表名
func (Season) TableName() string { return "seasons" }

// Week 赛季周次表 — 对应 season_weeks
type Week struct {
	WeekID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"week_id"`
	SeasonID  string    `gorm:"type:uuid;not null;index"                       json:"season_id"`
	Number    int       `gorm:"not null"                                       json:"number"` // 从 1 开始
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
}

// TableName 指定表名
func (Week) TableName() string { return "season_weeks" }
