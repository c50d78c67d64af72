package model

// Admin 管理员表 — 对应 admins
type Admin struct {
	AdminID      AdminID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	FullName     string  `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Department   string  `gorm:"type:varchar(50);not null"                      json:"department"`
	Phone        string  `gorm:"type:varchar(30);not null"                      json:"phone"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	ProfileImage *string `gorm:"type:varchar(500)"                              json:"profile_image"`
	BaseModel
}

// TableName 指定表名
func (Admin) TableName() string { return "admins" }
