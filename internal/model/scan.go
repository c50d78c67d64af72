package model

import "time"

// ScanStatus 参与者在某任务下的扫码状态
type ScanStatus string

const (
	ScanStatusScanned   ScanStatus = "scanned"
	ScanStatusUnscanned ScanStatus = "unscanned"
)

// ScanRecord 扫码记录表 — 对应 scan_records
// 每个任务一条，ParticipantIDs 为当前已扫码的参与者集合；不在集合中即为未扫码。
type ScanRecord struct {
	ScanRecordID   ScanRecordID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scan_record_id,omitempty"`
	TaskID         TaskID                `gorm:"type:uuid;not null;uniqueIndex"                 json:"task_id"`
	ParticipantIDs IDList[ParticipantID] `gorm:"type:jsonb;not null;default:'[]'"               json:"participant_ids"`
	BaseModel
}

// TableName 指定表名
func (ScanRecord) TableName() string { return "scan_records" }

// StatusOf 推导参与者状态
func (r *ScanRecord) StatusOf(id ParticipantID) ScanStatus {
	if r != nil && r.ParticipantIDs.Contains(id) {
		return ScanStatusScanned
	}
	return ScanStatusUnscanned
}

// ScanEvent 扫码事件表 — 对应 scan_events（仅追加的审计日志）
type ScanEvent struct {
	ScanEventID   ScanEventID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scan_event_id"`
	TaskID        TaskID        `gorm:"type:uuid;not null"                             json:"task_id"`
	ParticipantID ParticipantID `gorm:"type:uuid;not null"                             json:"participant_id"`
	Action        ScanStatus    `gorm:"type:varchar(10);not null"                      json:"action"` // scanned | unscanned
	OccurredAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"occurred_at"`
}

// TableName 指定表名
func (ScanEvent) TableName() string { return "scan_events" }
