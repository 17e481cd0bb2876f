package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"absensichain_backend/internals/features/attendance/model"
)

// StudentStore dan AttendanceStore memisahkan orkestrasi dari GORM supaya
// coordinator bisa diuji dengan fake tanpa database hidup.

type StudentStore interface {
	// FindName mengembalikan nama terdaftar; found=false kalau belum ada.
	FindName(ctx context.Context, studentID string) (name string, found bool, err error)
	Insert(ctx context.Context, studentID, name string) error
}

type AttendanceStore interface {
	Insert(ctx context.Context, row *model.AttendanceLogModel) error
	ListAll(ctx context.Context) ([]model.AttendanceLogModel, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceLogModel, error)
	ListTxReferences(ctx context.Context) ([]string, error)
}

/* =========================================================
 * GORM IMPL
 * ========================================================= */

type gormStudentStore struct{ db *gorm.DB }

func NewStudentStore(db *gorm.DB) StudentStore { return &gormStudentStore{db: db} }

func (s *gormStudentStore) FindName(ctx context.Context, studentID string) (string, bool, error) {
	var row model.StudentModel
	err := s.db.WithContext(ctx).
		Where("students_student_id = ?", studentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.StudentsName, true, nil
}

func (s *gormStudentStore) Insert(ctx context.Context, studentID, name string) error {
	return s.db.WithContext(ctx).Create(&model.StudentModel{
		StudentsStudentID: studentID,
		StudentsName:      name,
	}).Error
}

type gormAttendanceStore struct{ db *gorm.DB }

func NewAttendanceStore(db *gorm.DB) AttendanceStore { return &gormAttendanceStore{db: db} }

func (s *gormAttendanceStore) Insert(ctx context.Context, row *model.AttendanceLogModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormAttendanceStore) ListAll(ctx context.Context) ([]model.AttendanceLogModel, error) {
	var rows []model.AttendanceLogModel
	err := s.db.WithContext(ctx).
		Order("attendance_logs_created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *gormAttendanceStore) ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceLogModel, error) {
	var rows []model.AttendanceLogModel
	err := s.db.WithContext(ctx).
		Where("attendance_logs_student_id = ?", studentID).
		Order("attendance_logs_created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *gormAttendanceStore) ListTxReferences(ctx context.Context) ([]string, error) {
	var refs []string
	err := s.db.WithContext(ctx).
		Model(&model.AttendanceLogModel{}).
		Pluck("attendance_logs_tx_reference", &refs).Error
	return refs, err
}
