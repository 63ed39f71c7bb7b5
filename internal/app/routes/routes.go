package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/controllers"
	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	internshipController *controllers.InternshipController,
	applicationController *controllers.ApplicationController,
	mentorController *controllers.MentorController,
	creditController *controllers.CreditController,
	notificationController *controllers.NotificationController,
	chatController *controllers.ChatController,
	forumController *controllers.ForumController,
	messageController *controllers.MessageController,
	portfolioController *controllers.PortfolioController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))

	// Account routes
	users := authenticated.Group("/users")
	{
		users.GET("/me", userController.GetMe)
		users.PUT("/me", userController.UpdateMe)
		users.PUT("/me/password", userController.ChangePassword)
		users.DELETE("/me", userController.DeleteMe)
	}

	// Student routes
	students := authenticated.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("/me", studentController.GetMyStudent)
		students.PUT("/me/profile", studentController.UpsertProfile)
		students.GET("/:id", studentController.GetStudent)
		students.GET("/:id/profile", studentController.GetProfile)
		students.PUT("/:id", studentController.UpdateStudent)

		studentsAdmin := students.Group("")
		studentsAdmin.Use(adminOnly)
		{
			studentsAdmin.GET("", studentController.ListStudents)
			studentsAdmin.POST("/:id/approve", studentController.ApproveStudent)
			studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
		}
	}

	// Internship routes
	internships := authenticated.Group("/internships")
	{
		internships.GET("", internshipController.ListInternships)
		internships.GET("/:id", internshipController.GetInternship)

		internshipsAdmin := internships.Group("")
		internshipsAdmin.Use(adminOnly)
		{
			internshipsAdmin.POST("", internshipController.CreateInternship)
			internshipsAdmin.PUT("/:id", internshipController.UpdateInternship)
			internshipsAdmin.POST("/:id/deactivate", internshipController.DeactivateInternship)
			internshipsAdmin.DELETE("/:id", internshipController.DeleteInternship)
			internshipsAdmin.GET("/:id/applications", applicationController.ListInternshipApplications)
		}
	}

	// Application routes
	applications := authenticated.Group("/applications")
	{
		applications.POST("", applicationController.Apply)
		applications.GET("/me", applicationController.ListMyApplications)
		applications.GET("/:id", applicationController.GetApplication)
		applications.POST("/:id/withdraw", applicationController.WithdrawApplication)

		applicationsAdmin := applications.Group("")
		applicationsAdmin.Use(adminOnly)
		{
			applicationsAdmin.PUT("/:id/status", applicationController.UpdateApplicationStatus)
		}
	}

	// Mentor, session and review routes
	mentors := authenticated.Group("/mentors")
	{
		mentors.GET("", mentorController.ListMentors)
		mentors.POST("/sessions", mentorController.BookSession)
		mentors.GET("/sessions/me", mentorController.ListMySessions)
		mentors.GET("/sessions/:id", mentorController.GetSession)
		mentors.PUT("/sessions/:id/status", mentorController.UpdateSessionStatus)
		mentors.POST("/reviews", mentorController.AddReview)
		mentors.GET("/:id", mentorController.GetMentor)
		mentors.GET("/:id/sessions", mentorController.ListMentorSessions)
		mentors.GET("/:id/reviews", mentorController.ListReviews)

		mentorsAdmin := mentors.Group("")
		mentorsAdmin.Use(adminOnly)
		{
			mentorsAdmin.POST("", mentorController.RegisterMentor)
		}
	}

	// Credit routes
	credits := authenticated.Group("/credits")
	{
		credits.GET("/me", creditController.GetMyBalance)
		credits.GET("/leaderboard", creditController.Leaderboard)
		credits.GET("/students/:id", creditController.GetStudentBalance)

		creditsAdmin := credits.Group("")
		creditsAdmin.Use(adminOnly)
		{
			creditsAdmin.POST("", creditController.AwardCredits)
		}
	}

	// Notification routes
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("/me", notificationController.ListMyNotifications)
		notifications.GET("/me/unread-count", notificationController.CountUnread)
		notifications.POST("/read-all", notificationController.MarkAllRead)
		notifications.POST("/:id/read", notificationController.MarkRead)
		notifications.DELETE("/:id", notificationController.DeleteNotification)

		notificationsAdmin := notifications.Group("")
		notificationsAdmin.Use(adminOnly)
		{
			notificationsAdmin.POST("", notificationController.CreateNotification)
		}
	}

	// Announcement routes
	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", notificationController.ListAnnouncements)
		announcements.GET("/:id", notificationController.GetAnnouncement)

		announcementsAdmin := announcements.Group("")
		announcementsAdmin.Use(adminOnly)
		{
			announcementsAdmin.POST("", notificationController.CreateAnnouncement)
			announcementsAdmin.PUT("/:id", notificationController.UpdateAnnouncement)
			announcementsAdmin.DELETE("/:id", notificationController.DeleteAnnouncement)
		}
	}

	// Chat routes
	chat := authenticated.Group("/chat")
	{
		chat.POST("/rooms", chatController.CreateRoom)
		chat.GET("/rooms", chatController.ListRooms)
		chat.GET("/rooms/:id", chatController.GetRoom)
		chat.POST("/rooms/:id/participants", chatController.AddParticipant)
		chat.POST("/rooms/:id/leave", chatController.LeaveRoom)
		chat.POST("/rooms/:id/messages", chatController.SendMessage)
		chat.GET("/rooms/:id/messages", chatController.ListMessages)
	}

	// Forum routes
	forums := authenticated.Group("/forums")
	{
		forums.POST("", forumController.CreateForum)
		forums.GET("", forumController.ListForums)
		forums.GET("/:id", forumController.GetForum)
		forums.DELETE("/:id", forumController.DeleteForum)
		forums.POST("/:id/posts", forumController.CreatePost)
		forums.GET("/:id/posts", forumController.ListPosts)
		forums.POST("/posts/:postId/upvote", forumController.UpvotePost)
		forums.DELETE("/posts/:postId", forumController.DeletePost)

		forumsAdmin := forums.Group("")
		forumsAdmin.Use(adminOnly)
		{
			forumsAdmin.POST("/:id/pin", forumController.PinForum)
		}
	}

	// Direct message routes
	messages := authenticated.Group("/messages")
	{
		messages.POST("", messageController.SendMessage)
		messages.GET("/inbox", messageController.Inbox)
		messages.GET("/sent", messageController.Sent)
		messages.GET("/conversations/:userId", messageController.Conversation)
		messages.GET("/:id", messageController.GetMessage)
		messages.POST("/:id/read", messageController.MarkMessageRead)
		messages.DELETE("/:id", messageController.DeleteMessage)
	}

	// Certification routes
	certifications := authenticated.Group("/certifications")
	{
		certifications.POST("", portfolioController.AddCertification)
		certifications.POST("/upload", portfolioController.UploadCertification)
		certifications.GET("", portfolioController.ListCertifications)
		certifications.GET("/:id", portfolioController.GetCertification)
		certifications.PUT("/:id", portfolioController.UpdateCertification)
		certifications.DELETE("/:id", portfolioController.DeleteCertification)
	}

	// CV routes
	cv := authenticated.Group("/cv")
	{
		cv.POST("/generate", portfolioController.GenerateCV)
		cv.GET("", portfolioController.ListCVs)
		cv.GET("/latest", portfolioController.GetLatestCV)
	}

	// GitHub and project routes
	github := authenticated.Group("/github")
	{
		github.GET("/authorize", portfolioController.GitHubAuthorize)
		github.POST("/connect", portfolioController.ConnectGitHub)
		github.POST("/disconnect", portfolioController.DisconnectGitHub)
		github.POST("/sync", portfolioController.SyncGitHub)
	}

	projects := authenticated.Group("/projects")
	{
		projects.POST("", portfolioController.AddProject)
		projects.GET("", portfolioController.ListProjects)
		projects.DELETE("/:id", portfolioController.DeleteProject)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
