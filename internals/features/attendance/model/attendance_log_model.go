package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttendanceLogModel adalah cermin off-chain dari fakta kehadiran yang sudah
// terkonfirmasi di chain. Append-only: baris hanya ditulis setelah receipt
// diterima, dengan tx_reference sebagai join key balik ke transaksi on-chain.
type AttendanceLogModel struct {
	AttendanceLogID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_logs_id" json:"attendance_logs_id"`

	AttendanceLogStudentID string         `gorm:"not null;index;column:attendance_logs_student_id" json:"attendance_logs_student_id"`
	AttendanceLogName      string         `gorm:"not null;column:attendance_logs_name"             json:"attendance_logs_name"`
	AttendanceLogDate      datatypes.Date `gorm:"not null;column:attendance_logs_date"             json:"attendance_logs_date"`
	AttendanceLogIsPresent bool           `gorm:"not null;column:attendance_logs_is_present"       json:"attendance_logs_is_present"`

	// Alasan disimpan plaintext di sini; on-chain hanya commitment-nya.
	AttendanceLogReason string `gorm:"column:attendance_logs_reason" json:"attendance_logs_reason"`

	AttendanceLogTxReference string `gorm:"uniqueIndex;not null;column:attendance_logs_tx_reference" json:"attendance_logs_tx_reference"`

	AttendanceLogCreatedAt time.Time `gorm:"column:attendance_logs_created_at;autoCreateTime;index" json:"attendance_logs_created_at"`
}

func (AttendanceLogModel) TableName() string { return "attendance_logs" }
