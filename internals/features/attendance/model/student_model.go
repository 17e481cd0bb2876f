package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentModel adalah registry identitas murid. Satu student_id terikat ke satu
// nama sejak klaim pertama — tidak pernah di-update, tidak pernah dihapus.
// Unique index di students_student_id adalah wasit terakhir untuk balapan
// check-then-insert antar request.
type StudentModel struct {
	StudentsID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:students_id" json:"students_id"`

	StudentsStudentID string `gorm:"uniqueIndex;not null;column:students_student_id" json:"students_student_id"`
	StudentsName      string `gorm:"not null;column:students_name"                   json:"students_name"`

	StudentsCreatedAt time.Time `gorm:"column:students_created_at;autoCreateTime" json:"students_created_at"`
}

func (StudentModel) TableName() string { return "students" }
