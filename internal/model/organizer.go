package model

// OrganizerStatus 组织者当前状态
type OrganizerStatus string

const (
	OrganizerFree     OrganizerStatus = "free"
	OrganizerOccupied OrganizerStatus = "occupied"
	OrganizerTimeout  OrganizerStatus = "timeout"
)

// Organizer 组织者表 — 对应 organizers
type Organizer struct {
	OrganizerID  OrganizerID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"organizer_id"`
	FullName     string          `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        string          `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Phone        string          `gorm:"type:varchar(30);not null"                      json:"phone"`
	Status       OrganizerStatus `gorm:"type:varchar(20);not null;default:'free'"       json:"status"` // free | occupied | timeout
	Department   string          `gorm:"type:varchar(50);not null"                      json:"department"`
	IsAbsent     bool            `gorm:"not null;default:false"                         json:"is_absent"`
	PasswordHash string          `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Organizer) TableName() string { return "organizers" }
