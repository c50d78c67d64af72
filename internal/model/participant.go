package model

// Participant 参与者表 — 对应 participants
type Participant struct {
	ParticipantID ParticipantID `gorm:"type:uuid;primaryKey"                   json:"participant_id"`
	FullName      string        `gorm:"type:varchar(100);not null"             json:"full_name"`
	Email         string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone         string        `gorm:"type:varchar(30);not null"              json:"phone"`
	Team          *string       `gorm:"type:varchar(100)"                      json:"team,omitempty"`
	QRCode        string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"qr_code"` // 默认等于 ParticipantID
	BaseModel
}

// TableName 指定表名
func (Participant) TableName() string { return "participants" }
