package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// GetAllCourses lists courses. Students see every course; faculty can
// filter to their own with ?mine=true.
func (cc *CourseController) GetAllCourses(c *gin.Context) {
	query := cc.DB.Preload("Faculty")

	if c.Query("mine") == "true" {
		userID, _ := currentUserID(c)
		query = query.Where("faculty_id = ?", userID)
	}
	if campus := c.Query("campus"); campus != "" {
		query = query.Where("campus = ?", campus)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of courses", courses)
}

// CreateCourse -> faculty/admin create a course directly.
func (cc *CourseController) CreateCourse(c *gin.Context) {
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
	course := models.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Campus:      req.Campus,
		FacultyID:   userID,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Course created: %s (%s)", course.Title, course.Code)
	utils.RespondJSON(c, http.StatusCreated, "Course created", course)
}

// GetCourseByID -> course detail.
func (cc *CourseController) GetCourseByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("course_id"))

	var course models.Course
	if err := cc.DB.Preload("Faculty").First(&course, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Course detail", course)
}

// UpdateCourse -> owning faculty or admin.
func (cc *CourseController) UpdateCourse(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("course_id"))

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !cc.canManage(c, course) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Campus      *string `json:"campus"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Campus != nil {
		course.Campus = *req.Campus
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Course updated", course)
}

// DeleteCourse -> owning faculty or admin.
func (cc *CourseController) DeleteCourse(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("course_id"))

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !cc.canManage(c, course) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Course deleted", gin.H{"course_id": id})
}

// GetCourseStudents lists enrollments for a course.
func (cc *CourseController) GetCourseStudents(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("course_id"))

	var enrollments []models.Enrollment
	if err := cc.DB.Preload("Student").
		Where("course_id = ?", id).
		Find(&enrollments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Course students", enrollments)
}

// Enroll -> student self-enrolls in a course. Re-enrolling after a drop
// reactivates the existing row.
func (cc *CourseController) Enroll(c *gin.Context) {
	courseID, _ := strconv.Atoi(c.Param("course_id"))
	userID, _ := currentUserID(c)

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var enrollment models.Enrollment
	err := cc.DB.Where("course_id = ? AND student_id = ?", courseID, userID).First(&enrollment).Error
	switch {
	case err == nil:
		if enrollment.Status == models.EnrollmentActive {
			utils.RespondError(c, http.StatusConflict, errors.New("already enrolled"))
			return
		}
		enrollment.Status = models.EnrollmentActive
		if err := cc.DB.Save(&enrollment).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		enrollment = models.Enrollment{
			CourseID:  uint(courseID),
			StudentID: userID,
			Status:    models.EnrollmentActive,
		}
		if err := cc.DB.Create(&enrollment).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Enrolled", enrollment)
}

// UpdateEnrollment -> faculty/admin drop or reactivate a student.
func (cc *CourseController) UpdateEnrollment(c *gin.Context) {
	courseID, _ := strconv.Atoi(c.Param("course_id"))
	studentID, _ := strconv.Atoi(c.Param("student_id"))

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !cc.canManage(c, course) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=active dropped"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var enrollment models.Enrollment
	if err := cc.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&enrollment).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	enrollment.Status = req.Status
	if err := cc.DB.Save(&enrollment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Enrollment updated", enrollment)
}

func (cc *CourseController) canManage(c *gin.Context, course models.Course) bool {
	role, _ := c.Get("role")
	if role == models.RoleAdmin {
		return true
	}
	userID, _ := currentUserID(c)
	return role == models.RoleFaculty && course.FacultyID == userID
}
