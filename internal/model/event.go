package model

import (
	"time"

	"gorm.io/datatypes"
)

// Event 活动表 — 对应 events，描述整场活动的天数与会场地图
type Event struct {
	EventID EventID                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	NumDays int                           `gorm:"not null"                                       json:"num_days"`
	MapURL  *string                       `gorm:"type:varchar(500)"                              json:"map_url"`
	Days    datatypes.JSONSlice[time.Time] `gorm:"type:jsonb;not null;default:'[]'"               json:"days"`
	BaseModel
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
