package router

import (
	"net/http"
	"strings"

	"github.com/campushub/lms-app/controllers"
	"github.com/campushub/lms-app/middlewares"
	"github.com/campushub/lms-app/notifier"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, hub *notifier.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Uploaded files; only known document/image extensions are served.
	// The guard runs before gin's static handler touches the disk.
	uploads := r.Group("/uploads", uploadExtGuard())
	uploads.Static("", "public/uploads")

	n := notifier.New(db, hub)

	userCtrl := controllers.NewUserController(db)
	courseCtrl := controllers.NewCourseController(db)
	assignmentCtrl := controllers.NewAssignmentController(db, n)
	submissionCtrl := controllers.NewSubmissionController(db, n)
	announcementCtrl := controllers.NewAnnouncementController(db, n)
	requestCtrl := controllers.NewCourseRequestController(db, n)
	messageCtrl := controllers.NewMessageController(db, n)
	attendanceCtrl := controllers.NewAttendanceController(db)
	notificationCtrl := controllers.NewNotificationController(n)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)

	// NOTIFICATIONS (any role; always scoped to the caller)
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.GET("/notifications/count", notificationCtrl.GetUnreadCount)
	auth.PATCH("/notifications/:notif_id", notificationCtrl.MarkRead)
	auth.PATCH("/notifications", notificationCtrl.MarkAllRead)
	auth.DELETE("/notifications", notificationCtrl.ClearAll)

	// COURSES
	auth.GET("/courses", courseCtrl.GetAllCourses)
	auth.GET("/courses/:course_id", courseCtrl.GetCourseByID)
	auth.POST("/courses", middlewares.RequireRoles("faculty"), courseCtrl.CreateCourse)
	auth.PATCH("/courses/:course_id", middlewares.RequireRoles("faculty"), courseCtrl.UpdateCourse)
	auth.DELETE("/courses/:course_id", middlewares.RequireRoles("faculty"), courseCtrl.DeleteCourse)
	auth.GET("/courses/:course_id/students", middlewares.RequireRoles("faculty"), courseCtrl.GetCourseStudents)

	// ENROLLMENTS
	auth.POST("/courses/:course_id/enroll", middlewares.RequireRoles("student"), courseCtrl.Enroll)
	auth.PATCH("/courses/:course_id/enrollments/:student_id", middlewares.RequireRoles("faculty"), courseCtrl.UpdateEnrollment)

	// ASSIGNMENTS
	auth.GET("/courses/:course_id/assignments", assignmentCtrl.GetCourseAssignments)
	auth.POST("/courses/:course_id/assignments", middlewares.RequireRoles("faculty"), assignmentCtrl.CreateAssignment)
	auth.GET("/assignments/:assignment_id", assignmentCtrl.GetAssignmentByID)
	auth.PATCH("/assignments/:assignment_id", middlewares.RequireRoles("faculty"), assignmentCtrl.UpdateAssignment)
	auth.DELETE("/assignments/:assignment_id", middlewares.RequireRoles("faculty"), assignmentCtrl.DeleteAssignment)

	// SUBMISSIONS & GRADING
	auth.POST("/assignments/:assignment_id/submissions", middlewares.RequireRoles("student"), submissionCtrl.Submit)
	auth.GET("/assignments/:assignment_id/submissions", middlewares.RequireRoles("faculty"), submissionCtrl.GetSubmissions)
	auth.PATCH("/submissions/:submission_id/grade", middlewares.RequireRoles("faculty"), submissionCtrl.Grade)

	// ANNOUNCEMENTS
	auth.GET("/announcements", announcementCtrl.GetAnnouncements)
	auth.POST("/announcements", middlewares.RequireRoles("faculty"), announcementCtrl.CreateAnnouncement)

	// COURSE REQUESTS
	auth.POST("/course-requests", middlewares.RequireRoles("faculty"), requestCtrl.CreateRequest)
	auth.GET("/course-requests", middlewares.RequireRoles("faculty"), requestCtrl.GetRequests)
	auth.PATCH("/course-requests/:request_id", middlewares.RequireRoles("admin"), requestCtrl.DecideRequest)

	// MESSAGING
	auth.GET("/conversations", messageCtrl.GetConversations)
	auth.POST("/conversations", messageCtrl.CreateConversation)
	auth.GET("/conversations/:conversation_id/messages", messageCtrl.GetMessages)
	auth.POST("/conversations/:conversation_id/messages", messageCtrl.SendMessage)

	// ATTENDANCE
	auth.POST("/courses/:course_id/attendance", middlewares.RequireRoles("faculty"), attendanceCtrl.RecordAttendance)
	auth.GET("/courses/:course_id/attendance", middlewares.RequireRoles("faculty"), attendanceCtrl.GetAttendance)

	// ADMIN
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRoles("admin"))
	{
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/users", adminCtrl.GetAllUsers)
	}
	auth.GET("/reports/grades/export-pdf", middlewares.RequireRoles("faculty"), adminCtrl.ExportGradeReportPDF)

	// WebSocket badge push (token arrives as query param)
	auth.GET("/ws/notifications", controllers.NotificationSocketHandler(hub))

	return r
}

var servableUploadExts = []string{
	".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
	".txt", ".zip", ".jpg", ".jpeg", ".png",
}

func uploadExtGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.ToLower(c.Param("filepath"))
		for _, ext := range servableUploadExts {
			if strings.HasSuffix(path, ext) {
				c.Next()
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}
