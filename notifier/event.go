package notifier

import (
	"fmt"

	"github.com/campushub/lms-app/models"
)

// Event is one domain occurrence to fan out. Recipients are resolved
// by the caller (see policy.go) before delivery; Title/Message/actor
// context are captured at send time and never recomputed, so later
// edits to the subject entity do not rewrite delivered notifications.
type Event struct {
	Type         string
	Title        string
	Message      string
	RelatedID    *uint
	ActorName    string
	SubjectTitle string
	Recipients   []uint
}

// AssignmentPosted notifies every active student of the course.
func AssignmentPosted(assignment models.Assignment, course models.Course, actorName string, recipients []uint) Event {
	id := assignment.ID
	return Event{
		Type:         models.NotifAssignment,
		Title:        "New Assignment Posted",
		Message:      fmt.Sprintf("%s posted \"%s\" in %s, due %s", actorName, assignment.Title, course.Title, assignment.DueDate.Format("2006-01-02")),
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: assignment.Title,
		Recipients:   recipients,
	}
}

// SubmissionReceived notifies the course's faculty member that a
// student handed in work.
func SubmissionReceived(submission models.Submission, assignment models.Assignment, course models.Course, actorName string) Event {
	id := assignment.ID
	return Event{
		Type:         models.NotifSubmission,
		Title:        "New Submission",
		Message:      fmt.Sprintf("%s submitted \"%s\" in %s", actorName, assignment.Title, course.Title),
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: assignment.Title,
		Recipients:   []uint{course.FacultyID},
	}
}

// SubmissionGraded notifies the submitting student. The percentage is
// computed here, once, and embedded in the message text.
func SubmissionGraded(submission models.Submission, assignment models.Assignment, actorName string, grade float64) Event {
	id := assignment.ID
	percent := grade / assignment.Points * 100
	return Event{
		Type:         models.NotifGrade,
		Title:        "Assignment Graded",
		Message:      fmt.Sprintf("%s graded your submission for \"%s\": %.1f%%", actorName, assignment.Title, percent),
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: assignment.Title,
		Recipients:   []uint{submission.StudentID},
	}
}

// AnnouncementPublished notifies the announcement's audience.
func AnnouncementPublished(ann models.Announcement, actorName string, recipients []uint) Event {
	id := ann.ID
	return Event{
		Type:         models.NotifAnnouncement,
		Title:        "New Announcement",
		Message:      fmt.Sprintf("%s published \"%s\"", actorName, ann.Title),
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: ann.Title,
		Recipients:   recipients,
	}
}

// CourseRequestSubmitted notifies all admins.
func CourseRequestSubmitted(req models.CourseRequest, actorName string, recipients []uint) Event {
	id := req.ID
	return Event{
		Type:         models.NotifCourse,
		Title:        "New Course Request",
		Message:      fmt.Sprintf("%s requested a new course \"%s\" (%s)", actorName, req.Title, req.Code),
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: req.Title,
		Recipients:   recipients,
	}
}

// CourseRequestDecided notifies the requesting faculty member. One
// notification regardless of outcome; the message encodes the decision.
func CourseRequestDecided(req models.CourseRequest, actorName string) Event {
	id := req.ID
	title := "Course Request Approved"
	message := fmt.Sprintf("%s approved your course request \"%s\"", actorName, req.Title)
	if req.Status == models.RequestRejected {
		title = "Course Request Rejected"
		message = fmt.Sprintf("%s rejected your course request \"%s\"", actorName, req.Title)
		if req.DecisionNote != "" {
			message += ": " + req.DecisionNote
		}
	}
	return Event{
		Type:         models.NotifCourse,
		Title:        title,
		Message:      message,
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: req.Title,
		Recipients:   []uint{req.FacultyID},
	}
}

// NewMessage notifies the other participants of a conversation.
func NewMessage(msg models.Message, actorName string, recipients []uint) Event {
	id := msg.ConversationID
	return Event{
		Type:         models.NotifMessage,
		Title:        "New Message",
		Message:      fmt.Sprintf("%s sent you a message", actorName),
		RelatedID:    &id,
		ActorName:    actorName,
		SubjectTitle: "",
		Recipients:   recipients,
	}
}
