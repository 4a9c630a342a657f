package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushub/lms-app/controllers"
	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/notifier"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupRequestRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	n := notifier.New(db, nil)
	requestCtrl := controllers.NewCourseRequestController(db, n)

	router := gin.New()
	router.Use(identity(userID, role))
	router.POST("/course-requests", requestCtrl.CreateRequest)
	router.GET("/course-requests", requestCtrl.GetRequests)
	router.PATCH("/course-requests/:request_id", requestCtrl.DecideRequest)
	return router
}

func TestCourseRequestNotifiesAllAdmins(t *testing.T) {
	db := setupTestDB(t)

	faculty := seedUser(t, db, 1, models.RoleFaculty)
	seedUser(t, db, 2, models.RoleAdmin)
	seedUser(t, db, 3, models.RoleAdmin)
	seedUser(t, db, 4, models.RoleStudent)

	router := setupRequestRouter(db, faculty.ID, models.RoleFaculty)

	payload, _ := json.Marshal(map[string]string{
		"code":  "CS300",
		"title": "Compilers",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/course-requests", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var notifs []models.Notification
	assert.NoError(t, db.Order("user_id").Find(&notifs).Error)
	assert.Len(t, notifs, 2, "both admins, nobody else")
	assert.Equal(t, uint(2), notifs[0].UserID)
	assert.Equal(t, uint(3), notifs[1].UserID)
	for _, notif := range notifs {
		assert.Equal(t, models.NotifCourse, notif.Type)
	}
}

func TestDecideRequestApprovalCreatesCourseAndNotifies(t *testing.T) {
	db := setupTestDB(t)

	faculty := seedUser(t, db, 1, models.RoleFaculty)
	admin := seedUser(t, db, 2, models.RoleAdmin)

	courseReq := models.CourseRequest{
		ID: 9, FacultyID: faculty.ID, Code: "CS300", Title: "Compilers",
		Status: models.RequestPending,
	}
	assert.NoError(t, db.Create(&courseReq).Error)

	router := setupRequestRouter(db, admin.ID, models.RoleAdmin)

	payload, _ := json.Marshal(map[string]string{"status": "approved"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/course-requests/%d", courseReq.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var course models.Course
	assert.NoError(t, db.Where("code = ?", "CS300").First(&course).Error)
	assert.Equal(t, faculty.ID, course.FacultyID)

	var notif models.Notification
	assert.NoError(t, db.Where("user_id = ?", faculty.ID).First(&notif).Error)
	assert.Contains(t, notif.Title, "Approved")

	// A second decision on the same request conflicts.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PATCH", fmt.Sprintf("/course-requests/%d", courseReq.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDecideRequestRejectionNotifiesWithNote(t *testing.T) {
	db := setupTestDB(t)

	faculty := seedUser(t, db, 1, models.RoleFaculty)
	admin := seedUser(t, db, 2, models.RoleAdmin)

	courseReq := models.CourseRequest{
		ID: 9, FacultyID: faculty.ID, Code: "CS300", Title: "Compilers",
		Status: models.RequestPending,
	}
	assert.NoError(t, db.Create(&courseReq).Error)

	router := setupRequestRouter(db, admin.ID, models.RoleAdmin)

	payload, _ := json.Marshal(map[string]string{"status": "rejected", "note": "duplicate code"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/course-requests/9", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Course{}).Count(&count)
	assert.Equal(t, int64(0), count, "rejection creates no course")

	var notif models.Notification
	assert.NoError(t, db.Where("user_id = ?", faculty.ID).First(&notif).Error)
	assert.Contains(t, notif.Title, "Rejected")
	assert.Contains(t, notif.Message, "duplicate code")
}
