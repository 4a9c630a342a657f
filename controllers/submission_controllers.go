package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmissionController struct {
	DB       *gorm.DB
	Notifier *notifier.Notifier
}

func NewSubmissionController(db *gorm.DB, n *notifier.Notifier) *SubmissionController {
	return &SubmissionController{DB: db, Notifier: n}
}

// Submit -> student uploads their work for an assignment (multipart).
// Requires an active enrollment in the assignment's course.
func (sc *SubmissionController) Submit(c *gin.Context) {
	assignmentID, _ := strconv.Atoi(c.Param("assignment_id"))
	userID, _ := currentUserID(c)

	var assignment models.Assignment
	if err := sc.DB.Preload("Course").First(&assignment, assignmentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var enrollment models.Enrollment
	if err := sc.DB.Where("course_id = ? AND student_id = ? AND status = ?",
		assignment.CourseID, userID, models.EnrollmentActive).
		First(&enrollment).Error; err != nil {
		utils.RespondError(c, http.StatusForbidden, errors.New("not enrolled in this course"))
		return
	}

	var existing models.Submission
	if err := sc.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, userID).
		First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("already submitted"))
		return
	}

	c.Request.ParseMultipartForm(maxUploadSize)

	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file is required"))
		return
	}

	fileURL, err := saveUpload(c, file, "submission_files")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    userID,
		FileURL:      fileURL,
		Comment:      c.PostForm("comment"),
		SubmittedAt:  time.Now(),
	}

	if err := sc.DB.Create(&submission).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Submission %d received for assignment %d", submission.ID, assignment.ID)

	actorName := "A student"
	var actor models.User
	if err := sc.DB.First(&actor, userID).Error; err == nil {
		actorName = actor.Name
	}
	results := sc.Notifier.Notify(notifier.SubmissionReceived(submission, assignment, assignment.Course, actorName))
	reportDeliveries("submission received", results)

	utils.RespondJSON(c, http.StatusCreated, "Submission received", submission)
}

// GetSubmissions -> owning faculty lists submissions for an assignment.
func (sc *SubmissionController) GetSubmissions(c *gin.Context) {
	assignmentID, _ := strconv.Atoi(c.Param("assignment_id"))

	var assignment models.Assignment
	if err := sc.DB.Preload("Course").First(&assignment, assignmentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, _ := currentUserID(c)
	role, _ := c.Get("role")
	if role != models.RoleAdmin && assignment.Course.FacultyID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var submissions []models.Submission
	if err := sc.DB.Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Find(&submissions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Submissions", submissions)
}

// Grade -> faculty grades a submission. The grade update commits first;
// the student's notification (with the percentage embedded at send
// time) is best-effort after that.
func (sc *SubmissionController) Grade(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("submission_id"))

	var submission models.Submission
	if err := sc.DB.Preload("Assignment").Preload("Assignment.Course").
		First(&submission, submissionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, _ := currentUserID(c)
	role, _ := c.Get("role")
	if role != models.RoleAdmin && submission.Assignment.Course.FacultyID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Grade    *float64 `json:"grade" binding:"required"`
		Feedback string   `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.Grade < 0 || *req.Grade > submission.Assignment.Points {
		utils.RespondError(c, http.StatusBadRequest, errors.New("grade out of range"))
		return
	}

	now := time.Now()
	submission.Grade = req.Grade
	submission.Feedback = req.Feedback
	submission.GradedAt = &now

	if err := sc.DB.Save(&submission).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	actorName := "Your instructor"
	var actor models.User
	if err := sc.DB.First(&actor, userID).Error; err == nil {
		actorName = actor.Name
	}

	results := sc.Notifier.Notify(notifier.SubmissionGraded(submission, submission.Assignment, actorName, *req.Grade))
	reportDeliveries("submission graded", results)

	utils.RespondJSON(c, http.StatusOK, "Submission graded", submission)
}
