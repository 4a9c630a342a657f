package database

import (
	"github.com/campushub/lms-app/models"
	"gorm.io/gorm"
)

// Migrate runs the schema migration once at startup. Request handlers
// never touch the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Announcement{},
		&models.CourseRequest{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.AttendanceRecord{},
		&models.Notification{},
	)
}
