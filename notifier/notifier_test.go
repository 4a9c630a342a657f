package notifier_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/campushub/lms-app/database"
	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id uint, role, campus string) models.User {
	t.Helper()
	user := models.User{
		ID:       id,
		Name:     fmt.Sprintf("User %d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
		Password: "secret",
		Role:     role,
		Campus:   campus,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func enroll(t *testing.T, db *gorm.DB, courseID, studentID uint, status string) {
	t.Helper()
	e := models.Enrollment{CourseID: courseID, StudentID: studentID, Status: status}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}

func TestAssignmentFanOutCompleteness(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	course := models.Course{ID: 7, Code: "CS101", Title: "Intro", FacultyID: 100}
	assert.NoError(t, db.Create(&course).Error)

	for _, id := range []uint{1, 2, 3} {
		seedUser(t, db, id, models.RoleStudent, "Main")
		enroll(t, db, course.ID, id, models.EnrollmentActive)
	}
	// Dropped student must not be a recipient.
	seedUser(t, db, 4, models.RoleStudent, "Main")
	enroll(t, db, course.ID, 4, models.EnrollmentDropped)

	assignment := models.Assignment{
		ID:       99,
		CourseID: course.ID,
		Title:    "Midterm",
		Points:   100,
		DueDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, db.Create(&assignment).Error)

	recipients, err := n.ActiveStudents(course.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, recipients)

	results := n.Notify(notifier.AssignmentPosted(assignment, course, "Dr. Smith", recipients))
	assert.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}

	var notifs []models.Notification
	assert.NoError(t, db.Find(&notifs).Error)
	assert.Len(t, notifs, 3)

	seen := map[uint]bool{}
	for _, notif := range notifs {
		seen[notif.UserID] = true
		assert.Equal(t, models.NotifAssignment, notif.Type)
		assert.NotNil(t, notif.RelatedID)
		assert.Equal(t, assignment.ID, *notif.RelatedID)
		assert.False(t, notif.IsRead)
		assert.Contains(t, notif.Title, "New Assignment Posted")
		assert.Equal(t, "Dr. Smith", notif.ActorName)
		assert.Equal(t, "Midterm", notif.SubjectTitle)
	}
	assert.Len(t, seen, 3)
}

func TestAssignmentScenarioUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	course := models.Course{ID: 7, Code: "CS101", Title: "Intro", FacultyID: 100}
	assert.NoError(t, db.Create(&course).Error)
	seedUser(t, db, 42, models.RoleStudent, "Main")
	enroll(t, db, course.ID, 42, models.EnrollmentActive)

	before, err := n.UnreadCount(42)
	assert.NoError(t, err)

	assignment := models.Assignment{
		ID:       99,
		CourseID: course.ID,
		Title:    "Midterm",
		Points:   100,
		DueDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, db.Create(&assignment).Error)

	recipients, err := n.ActiveStudents(course.ID)
	assert.NoError(t, err)
	n.Notify(notifier.AssignmentPosted(assignment, course, "Dr. Smith", recipients))

	after, err := n.UnreadCount(42)
	assert.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestGradePercentInMessage(t *testing.T) {
	assignment := models.Assignment{ID: 10, Title: "Final Project", Points: 100}
	submission := models.Submission{ID: 15, AssignmentID: 10, StudentID: 42}

	event := notifier.SubmissionGraded(submission, assignment, "Dr. Smith", 85)
	assert.Contains(t, event.Message, "85.0%")
	assert.Equal(t, models.NotifGrade, event.Type)
	assert.Equal(t, []uint{42}, event.Recipients)

	// Fractional points still round to one decimal.
	assignment.Points = 30
	event = notifier.SubmissionGraded(submission, assignment, "Dr. Smith", 20)
	assert.Contains(t, event.Message, "66.7%")
}

func TestReadStateIsolation(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	event := notifier.Event{
		Type:       models.NotifSystem,
		Title:      "Maintenance",
		Message:    "Scheduled downtime",
		Recipients: []uint{1, 2},
	}
	n.Notify(event)

	var first models.Notification
	assert.NoError(t, db.Where("user_id = ?", 1).First(&first).Error)
	assert.NoError(t, n.MarkRead(1, first.ID))

	var other models.Notification
	assert.NoError(t, db.Where("user_id = ?", 2).First(&other).Error)
	assert.False(t, other.IsRead, "marking user 1's copy read must not touch user 2's copy")
}

func TestMarkReadIdempotent(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "Hello",
		Message:    "Welcome",
		Recipients: []uint{1},
	})

	var notif models.Notification
	assert.NoError(t, db.Where("user_id = ?", 1).First(&notif).Error)

	assert.NoError(t, n.MarkRead(1, notif.ID))
	assert.NoError(t, n.MarkRead(1, notif.ID), "second mark-read must be a no-op, not an error")

	assert.NoError(t, db.First(&notif, notif.ID).Error)
	assert.True(t, notif.IsRead)
}

func TestMarkReadOwnershipMaskedAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "Private",
		Message:    "For user 1 only",
		Recipients: []uint{1},
	})

	var notif models.Notification
	assert.NoError(t, db.Where("user_id = ?", 1).First(&notif).Error)

	err := n.MarkRead(2, notif.ID)
	assert.ErrorIs(t, err, notifier.ErrNotFound)

	missing := n.MarkRead(2, 99999)
	assert.ErrorIs(t, missing, notifier.ErrNotFound)
	assert.Equal(t, err.Error(), missing.Error(), "owned-by-other and missing must be indistinguishable")
}

func TestUnreadCountConsistency(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "A",
		Message:    "a",
		Recipients: []uint{1, 1, 1},
	})
	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "B",
		Message:    "b",
		Recipients: []uint{2},
	})

	count, err := n.UnreadCount(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var notif models.Notification
	assert.NoError(t, db.Where("user_id = ?", 1).First(&notif).Error)
	assert.NoError(t, n.MarkRead(1, notif.ID))

	count, err = n.UnreadCount(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, n.MarkAllRead(1))
	count, err = n.UnreadCount(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// MarkAllRead is idempotent and scoped to its user.
	assert.NoError(t, n.MarkAllRead(1))
	count, err = n.UnreadCount(2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReadStateIsMonotonic(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "Once",
		Message:    "read stays read",
		Recipients: []uint{1},
	})

	var notif models.Notification
	assert.NoError(t, db.Where("user_id = ?", 1).First(&notif).Error)
	assert.NoError(t, n.MarkRead(1, notif.ID))

	// No exposed operation transitions read back to unread; re-running
	// every mutation leaves the row read.
	assert.NoError(t, n.MarkRead(1, notif.ID))
	assert.NoError(t, n.MarkAllRead(1))

	assert.NoError(t, db.First(&notif, notif.ID).Error)
	assert.True(t, notif.IsRead)
}

func TestClearAllScoped(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "X",
		Message:    "x",
		Recipients: []uint{1, 1, 2},
	})

	assert.NoError(t, n.ClearAll(1))

	mine, err := n.List(1, 0)
	assert.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := n.List(2, 0)
	assert.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestClearThenNewRequestScenario(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	admin := seedUser(t, db, 1, models.RoleAdmin, "Main")
	faculty := seedUser(t, db, 2, models.RoleFaculty, "Main")

	n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "Old",
		Message:    "old",
		Recipients: []uint{admin.ID},
	})
	assert.NoError(t, n.ClearAll(admin.ID))

	empty, err := n.List(admin.ID, 0)
	assert.NoError(t, err)
	assert.Empty(t, empty)

	req := models.CourseRequest{ID: 5, FacultyID: faculty.ID, Code: "CS200", Title: "Algorithms", Status: models.RequestPending}
	assert.NoError(t, db.Create(&req).Error)

	admins, err := n.Admins()
	assert.NoError(t, err)
	n.Notify(notifier.CourseRequestSubmitted(req, faculty.Name, admins))

	after, err := n.List(admin.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, after, 1)
	assert.Equal(t, models.NotifCourse, after[0].Type)
}

func TestEmptyRecipientSetIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	course := models.Course{ID: 1, Code: "CS900", Title: "Empty", FacultyID: 10}
	assert.NoError(t, db.Create(&course).Error)

	recipients, err := n.ActiveStudents(course.ID)
	assert.NoError(t, err)
	assert.Empty(t, recipients)

	results := n.Notify(notifier.AssignmentPosted(models.Assignment{ID: 1, CourseID: 1, Title: "T", Points: 10}, course, "x", recipients))
	assert.Nil(t, results)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPartialFailureReportsPerRecipient(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	// With the table gone every insert fails; the loop must still visit
	// every recipient and report each failure instead of aborting.
	assert.NoError(t, db.Migrator().DropTable(&models.Notification{}))

	results := n.Notify(notifier.Event{
		Type:       models.NotifSystem,
		Title:      "Doomed",
		Message:    "no table",
		Recipients: []uint{1, 2, 3},
	})
	assert.Len(t, results, 3)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}

func TestListCapAndOrder(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	for i := 0; i < 20; i++ {
		notif := models.Notification{
			UserID:    1,
			Title:     "N",
			Message:   "m",
			Type:      models.NotifSystem,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		assert.NoError(t, db.Create(&notif).Error)
	}

	notifs, err := n.List(1, 0)
	assert.NoError(t, err)
	assert.Len(t, notifs, notifier.DefaultListLimit)

	// Newest first.
	for i := 1; i < len(notifs); i++ {
		assert.False(t, notifs[i].CreatedAt.After(notifs[i-1].CreatedAt))
	}

	// A requested limit above the cap is clamped.
	notifs, err = n.List(1, 100)
	assert.NoError(t, err)
	assert.Len(t, notifs, notifier.DefaultListLimit)

	notifs, err = n.List(1, 5)
	assert.NoError(t, err)
	assert.Len(t, notifs, 5)
}

func TestAnnouncementAudience(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	author := seedUser(t, db, 1, models.RoleFaculty, "North")
	seedUser(t, db, 2, models.RoleStudent, "North")
	seedUser(t, db, 3, models.RoleStudent, "South")
	seedUser(t, db, 4, models.RoleFaculty, "North")
	seedUser(t, db, 5, models.RoleAdmin, "North")

	// Students only, one campus.
	ann := models.Announcement{AuthorID: author.ID, Target: models.AnnouncementTargetStudents, Campus: "North"}
	ids, err := n.AnnouncementAudience(ann)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{2}, ids)

	// All campuses disables the campus filter.
	ann.Campus = models.AllCampuses
	ids, err = n.AnnouncementAudience(ann)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3}, ids)

	// Target "all" includes faculty but never admins or the author.
	ann.Target = models.AnnouncementTargetAll
	ids, err = n.AnnouncementAudience(ann)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3, 4}, ids)
}

func TestOtherParticipants(t *testing.T) {
	db := setupTestDB(t)
	n := notifier.New(db, nil)

	conv := models.Conversation{ID: 1}
	assert.NoError(t, db.Create(&conv).Error)
	for _, id := range []uint{10, 11, 12} {
		p := models.ConversationParticipant{ConversationID: conv.ID, UserID: id}
		assert.NoError(t, db.Create(&p).Error)
	}

	ids, err := n.OtherParticipants(conv.ID, 10)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{11, 12}, ids)
}

func TestCourseRequestDecidedMessages(t *testing.T) {
	req := models.CourseRequest{ID: 9, FacultyID: 3, Title: "Databases", Status: models.RequestApproved}

	event := notifier.CourseRequestDecided(req, "Admin Ann")
	assert.Equal(t, []uint{3}, event.Recipients)
	assert.Contains(t, event.Title, "Approved")
	assert.Contains(t, event.Message, "approved")

	req.Status = models.RequestRejected
	req.DecisionNote = "duplicate code"
	event = notifier.CourseRequestDecided(req, "Admin Ann")
	assert.Contains(t, event.Title, "Rejected")
	assert.Contains(t, event.Message, "duplicate code")
}
