package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseRequestController struct {
	DB       *gorm.DB
	Notifier *notifier.Notifier
}

func NewCourseRequestController(db *gorm.DB, n *notifier.Notifier) *CourseRequestController {
	return &CourseRequestController{DB: db, Notifier: n}
}

// CreateRequest -> faculty submits a course request. Every admin gets a
// notification; requests are reviewed globally, no campus filter.
func (crc *CourseRequestController) CreateRequest(c *gin.Context) {
	type request struct {
		Code        string `json:"code" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Campus      string `json:"campus"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, _ := currentUserID(c)
	courseReq := models.CourseRequest{
		FacultyID:   userID,
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Campus:      req.Campus,
		Status:      models.RequestPending,
	}

	if err := crc.DB.Create(&courseReq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	admins, err := crc.Notifier.Admins()
	if err != nil {
		utils.ErrorLogger.Printf("course request %d: resolving admins failed: %v", courseReq.ID, err)
	} else {
		actorName := "A faculty member"
		var actor models.User
		if err := crc.DB.First(&actor, userID).Error; err == nil {
			actorName = actor.Name
		}
		results := crc.Notifier.Notify(notifier.CourseRequestSubmitted(courseReq, actorName, admins))
		reportDeliveries("course request submitted", results)
	}

	utils.RespondJSON(c, http.StatusCreated, "Course request submitted", courseReq)
}

// GetRequests -> admin lists requests; faculty see their own.
func (crc *CourseRequestController) GetRequests(c *gin.Context) {
	query := crc.DB.Preload("Faculty").Order("created_at DESC")

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		userID, _ := currentUserID(c)
		query = query.Where("faculty_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.CourseRequest
	if err := query.Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Course requests", requests)
}

// DecideRequest -> admin approves or rejects. Approval also creates the
// course. The requester gets one notification either way.
func (crc *CourseRequestController) DecideRequest(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("request_id"))

	var courseReq models.CourseRequest
	if err := crc.DB.First(&courseReq, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if courseReq.Status != models.RequestPending {
		utils.RespondError(c, http.StatusConflict, errors.New("request already decided"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=approved rejected"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	adminID, _ := currentUserID(c)
	courseReq.Status = req.Status
	courseReq.DecidedBy = &adminID
	courseReq.DecisionNote = req.Note

	if err := crc.DB.Save(&courseReq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if courseReq.Status == models.RequestApproved {
		course := models.Course{
			Code:        courseReq.Code,
			Title:       courseReq.Title,
			Description: courseReq.Description,
			Campus:      courseReq.Campus,
			FacultyID:   courseReq.FacultyID,
		}
		if err := crc.DB.Create(&course).Error; err != nil {
			utils.ErrorLogger.Printf("course request %d approved but course creation failed: %v", courseReq.ID, err)
		}
	}

	actorName := "An administrator"
	var actor models.User
	if err := crc.DB.First(&actor, adminID).Error; err == nil {
		actorName = actor.Name
	}
	results := crc.Notifier.Notify(notifier.CourseRequestDecided(courseReq, actorName))
	reportDeliveries("course request decided", results)

	utils.RespondJSON(c, http.StatusOK, "Course request "+courseReq.Status, courseReq)
}
