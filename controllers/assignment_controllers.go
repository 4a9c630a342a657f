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

type AssignmentController struct {
	DB       *gorm.DB
	Notifier *notifier.Notifier
}

func NewAssignmentController(db *gorm.DB, n *notifier.Notifier) *AssignmentController {
	return &AssignmentController{DB: db, Notifier: n}
}

// GetCourseAssignments lists a course's assignments.
func (ac *AssignmentController) GetCourseAssignments(c *gin.Context) {
	courseID, _ := strconv.Atoi(c.Param("course_id"))

	var assignments []models.Assignment
	if err := ac.DB.Where("course_id = ?", courseID).
		Order("due_date ASC").
		Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignments", assignments)
}

// CreateAssignment -> faculty posts an assignment, optionally with an
// attachment (multipart). After the insert commits, every active
// student of the course gets a notification; delivery failures are
// logged and do not fail this request.
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
	courseID, _ := strconv.Atoi(c.Param("course_id"))

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, _ := currentUserID(c)
	role, _ := c.Get("role")
	if role != models.RoleAdmin && course.FacultyID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	c.Request.ParseMultipartForm(maxUploadSize)

	title := c.PostForm("title")
	if title == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("title is required"))
		return
	}

	points := 100.0
	if pointsStr := c.PostForm("points"); pointsStr != "" {
		p, err := strconv.ParseFloat(pointsStr, 64)
		if err != nil || p <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid points"))
			return
		}
		points = p
	}

	dueDate, err := time.Parse("2006-01-02", c.PostForm("due_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid due_date, expected YYYY-MM-DD"))
		return
	}

	var attachmentURL string
	if file, err := c.FormFile("attachment"); err == nil {
		attachmentURL, err = saveUpload(c, file, "assignment_files")
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	assignment := models.Assignment{
		CourseID:      course.ID,
		Title:         title,
		Description:   c.PostForm("description"),
		Points:        points,
		DueDate:       dueDate,
		AttachmentURL: attachmentURL,
	}

	if err := ac.DB.Create(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Assignment created: %q in course %d", assignment.Title, course.ID)

	ac.notifyCourse(c, assignment, course)

	utils.RespondJSON(c, http.StatusCreated, "Assignment created", assignment)
}

func (ac *AssignmentController) notifyCourse(c *gin.Context, assignment models.Assignment, course models.Course) {
	recipients, err := ac.Notifier.ActiveStudents(course.ID)
	if err != nil {
		utils.ErrorLogger.Printf("assignment %d: resolving recipients failed: %v", assignment.ID, err)
		return
	}

	actorName := "Your instructor"
	userID, _ := currentUserID(c)
	var actor models.User
	if err := ac.DB.First(&actor, userID).Error; err == nil {
		actorName = actor.Name
	}

	results := ac.Notifier.Notify(notifier.AssignmentPosted(assignment, course, actorName, recipients))
	reportDeliveries("assignment created", results)
}

// GetAssignmentByID -> assignment detail.
func (ac *AssignmentController) GetAssignmentByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("assignment_id"))

	var assignment models.Assignment
	if err := ac.DB.Preload("Course").First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignment detail", assignment)
}

// UpdateAssignment -> owning faculty or admin. Already-sent
// notifications keep the text captured at post time.
func (ac *AssignmentController) UpdateAssignment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("assignment_id"))

	var assignment models.Assignment
	if err := ac.DB.Preload("Course").First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, _ := currentUserID(c)
	role, _ := c.Get("role")
	if role != models.RoleAdmin && assignment.Course.FacultyID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Points      *float64 `json:"points"`
		DueDate     *string  `json:"due_date"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid points"))
			return
		}
		assignment.Points = *req.Points
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid due_date, expected YYYY-MM-DD"))
			return
		}
		assignment.DueDate = due
	}

	if err := ac.DB.Save(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignment updated", assignment)
}

// DeleteAssignment -> owning faculty or admin. Notifications that
// reference the assignment are left in place with a dangling id.
func (ac *AssignmentController) DeleteAssignment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("assignment_id"))

	var assignment models.Assignment
	if err := ac.DB.Preload("Course").First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, _ := currentUserID(c)
	role, _ := c.Get("role")
	if role != models.RoleAdmin && assignment.Course.FacultyID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := ac.DB.Delete(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignment deleted", gin.H{"assignment_id": id})
}
