package dto

import (
	"time"

	m "absensichain_backend/internals/features/attendance/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Log kehadiran (JSON). Tanggal = epoch day (hari sejak 1970-01-01, integer).
type LogAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required,max=64"`
	Name      string `json:"name"       validate:"required,max=120"`
	Date      *int64 `json:"date"       validate:"required,min=0"`
	IsPresent *bool  `json:"is_present" validate:"required"`

	// Wajib diisi saat is_present=false; wajib kosong saat is_present=true
	// (invariant dicek Validator, bukan tag).
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type VerifyResponse struct {
	Present    bool   `json:"present"`
	ReasonHash string `json:"reasonHash"`
	Name       string `json:"name"`
}

type LogSuccessResponse struct {
	Tx     string `json:"tx"`
	Block  uint64 `json:"block"`
	Status string `json:"status"`
}

type AttendanceLogResponse struct {
	StudentID   string    `json:"student_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	IsPresent   bool      `json:"is_present"`
	Reason      string    `json:"reason"`
	TxReference string    `json:"tx_reference"`
	CreatedAt   time.Time `json:"created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func FromAttendanceLogModel(row m.AttendanceLogModel) AttendanceLogResponse {
	return AttendanceLogResponse{
		StudentID:   row.AttendanceLogStudentID,
		Name:        row.AttendanceLogName,
		Date:        time.Time(row.AttendanceLogDate).Format("2006-01-02"),
		IsPresent:   row.AttendanceLogIsPresent,
		Reason:      row.AttendanceLogReason,
		TxReference: row.AttendanceLogTxReference,
		CreatedAt:   row.AttendanceLogCreatedAt,
	}
}

func FromAttendanceLogModels(rows []m.AttendanceLogModel) []AttendanceLogResponse {
	out := make([]AttendanceLogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromAttendanceLogModel(row))
	}
	return out
}
