package controllers

import (
	"net/http"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/notifier"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnnouncementController struct {
	DB       *gorm.DB
	Notifier *notifier.Notifier
}

func NewAnnouncementController(db *gorm.DB, n *notifier.Notifier) *AnnouncementController {
	return &AnnouncementController{DB: db, Notifier: n}
}

// GetAnnouncements lists announcements, newest first.
func (ac *AnnouncementController) GetAnnouncements(c *gin.Context) {
	var announcements []models.Announcement
	if err := ac.DB.Preload("Author").
		Order("created_at DESC").
		Limit(50).
		Find(&announcements).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Announcements", announcements)
}

// CreateAnnouncement -> faculty/admin publish an announcement. The
// audience (target + campus filter) gets one notification each; the
// author never notifies themselves.
func (ac *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	type request struct {
		Title  string `json:"title" binding:"required"`
		Body   string `json:"body" binding:"required"`
		Target string `json:"target" binding:"omitempty,oneof=all students"`
		Campus string `json:"campus"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, _ := currentUserID(c)
	ann := models.Announcement{
		AuthorID: userID,
		Title:    req.Title,
		Body:     req.Body,
		Target:   req.Target,
		Campus:   req.Campus,
	}
	if ann.Target == "" {
		ann.Target = models.AnnouncementTargetAll
	}
	if ann.Campus == "" {
		ann.Campus = models.AllCampuses
	}

	if err := ac.DB.Create(&ann).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recipients, err := ac.Notifier.AnnouncementAudience(ann)
	if err != nil {
		utils.ErrorLogger.Printf("announcement %d: resolving audience failed: %v", ann.ID, err)
	} else {
		actorName := "Campus"
		var actor models.User
		if err := ac.DB.First(&actor, userID).Error; err == nil {
			actorName = actor.Name
		}
		results := ac.Notifier.Notify(notifier.AnnouncementPublished(ann, actorName, recipients))
		reportDeliveries("announcement published", results)
	}

	utils.RespondJSON(c, http.StatusCreated, "Announcement published", ann)
}
