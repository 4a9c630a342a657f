package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campushub/lms-app/models"
	"github.com/campushub/lms-app/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats aggregates counts for the admin dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats struct {
		TotalStudents   int64 `json:"total_students"`
		TotalFaculty    int64 `json:"total_faculty"`
		TotalCourses    int64 `json:"total_courses"`
		TotalEnrollment int64 `json:"total_enrollments"`
		PendingRequests int64 `json:"pending_requests"`
		TodaySignups    int64 `json:"today_signups"`
		UserStats       struct {
			Students int64 `json:"students"`
			Faculty  int64 `json:"faculty"`
			Admins   int64 `json:"admins"`
		} `json:"user_stats"`
	}

	today := time.Now().Format("2006-01-02")

	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.UserStats.Students)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleFaculty).Count(&stats.UserStats.Faculty)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.UserStats.Admins)
	stats.TotalStudents = stats.UserStats.Students
	stats.TotalFaculty = stats.UserStats.Faculty

	ac.DB.Model(&models.Course{}).Count(&stats.TotalCourses)
	ac.DB.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentActive).Count(&stats.TotalEnrollment)
	ac.DB.Model(&models.CourseRequest{}).Where("status = ?", models.RequestPending).Count(&stats.PendingRequests)
	ac.DB.Model(&models.User{}).Where("DATE(created_at) = ?", today).Count(&stats.TodaySignups)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetAllUsers lists every user, optionally filtered by role.
func (ac *AdminController) GetAllUsers(c *gin.Context) {
	query := ac.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// ExportGradeReportPDF renders a per-course grade report. Admin gets
// any course, faculty their own (route-level role gate plus the filter
// below).
func (ac *AdminController) ExportGradeReportPDF(c *gin.Context) {
	query := ac.DB.Preload("Faculty")

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		userID, _ := currentUserID(c)
		query = query.Where("faculty_id = ?", userID)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Grade Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Grade Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 8, "Generated "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	for _, course := range courses {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s - %s", course.Code, course.Title))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(70, 7, "Student", "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, "Assignment", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, "Grade", "1", 0, "R", false, 0, "")
		pdf.Ln(-1)

		var submissions []models.Submission
		ac.DB.Preload("Student").Preload("Assignment").
			Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
			Where("assignments.course_id = ? AND submissions.grade IS NOT NULL", course.ID).
			Find(&submissions)

		pdf.SetFont("Helvetica", "", 9)
		if len(submissions) == 0 {
			pdf.CellFormat(160, 7, "No graded submissions", "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}
		for _, s := range submissions {
			pdf.CellFormat(70, 7, s.Student.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 7, s.Assignment.Title, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.1f / %.0f", *s.Grade, s.Assignment.Points), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=grade-report.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("error writing grade report: %v", err)
	}
}
