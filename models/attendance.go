package models

import "time"

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_course_student_date" json:"course_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_course_student_date" json:"student_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_course_student_date" json:"date"`
	Status    string    `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
