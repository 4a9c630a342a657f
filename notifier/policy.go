package notifier

import (
	"github.com/campushub/lms-app/models"
)

// Recipient resolvers. Each returns the exact set of user IDs eligible
// for one event type; an empty set is a valid outcome.

// ActiveStudents returns students with an active enrollment in the
// course. Dropped enrollments are excluded.
func (n *Notifier) ActiveStudents(courseID uint) ([]uint, error) {
	var ids []uint
	err := n.DB.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentActive).
		Pluck("student_id", &ids).Error
	return ids, err
}

// Admins returns every admin-role user. Course requests are reviewed
// globally, so there is no campus filter.
func (n *Notifier) Admins() ([]uint, error) {
	var ids []uint
	err := n.DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Pluck("id", &ids).Error
	return ids, err
}

// AnnouncementAudience returns students matching the announcement's
// target and campus. "All Campuses" disables the campus filter. The
// author is excluded so faculty/admin never subscribe to themselves.
func (n *Notifier) AnnouncementAudience(ann models.Announcement) ([]uint, error) {
	query := n.DB.Model(&models.User{}).Where("id <> ?", ann.AuthorID)

	switch ann.Target {
	case models.AnnouncementTargetStudents:
		query = query.Where("role = ?", models.RoleStudent)
	default:
		query = query.Where("role IN ?", []string{models.RoleStudent, models.RoleFaculty})
	}

	if ann.Campus != "" && ann.Campus != models.AllCampuses {
		query = query.Where("campus = ?", ann.Campus)
	}

	var ids []uint
	err := query.Pluck("id", &ids).Error
	return ids, err
}

// OtherParticipants returns the conversation's participants minus the
// sender.
func (n *Notifier) OtherParticipants(conversationID, senderID uint) ([]uint, error) {
	var ids []uint
	err := n.DB.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id <> ?", conversationID, senderID).
		Pluck("user_id", &ids).Error
	return ids, err
}
