package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// RecordAttendance upserts a day's records for a course in one
// transaction: all records commit or none do.
func (ac *AttendanceController) RecordAttendance(c *gin.Context) {
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

	type entry struct {
		StudentID uint   `json:"student_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
	}
	var req struct {
		Date    string  `json:"date" binding:"required"`
		Records []entry `json:"records" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
		return
	}
	for _, rec := range req.Records {
		switch rec.Status {
		case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
		default:
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status "+rec.Status))
			return
		}
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		for _, rec := range req.Records {
			var enrollment models.Enrollment
			if err := tx.Where("course_id = ? AND student_id = ? AND status = ?",
				courseID, rec.StudentID, models.EnrollmentActive).
				First(&enrollment).Error; err != nil {
				return errors.New("student " + strconv.Itoa(int(rec.StudentID)) + " is not actively enrolled")
			}

			var existing models.AttendanceRecord
			err := tx.Where("course_id = ? AND student_id = ? AND date = ?",
				courseID, rec.StudentID, req.Date).First(&existing).Error
			switch {
			case err == nil:
				existing.Status = rec.Status
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				record := models.AttendanceRecord{
					CourseID:  uint(courseID),
					StudentID: rec.StudentID,
					Date:      req.Date,
					Status:    rec.Status,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance recorded", gin.H{
		"course_id": courseID,
		"date":      req.Date,
		"count":     len(req.Records),
	})
}

// GetAttendance lists a course's attendance, optionally for one date.
func (ac *AttendanceController) GetAttendance(c *gin.Context) {
	courseID, _ := strconv.Atoi(c.Param("course_id"))

	query := ac.DB.Where("course_id = ?", courseID)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance records", records)
}
