package routes

import (
	"github.com/check-scam/api-go/controllers"
	"github.com/check-scam/api-go/middleware"
	"github.com/check-scam/api-go/search"
	"github.com/check-scam/api-go/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires every controller. Collaborators are constructed once in
// main and passed down; no package-level singletons.
func SetupRoutes(r *gin.Engine, db *gorm.DB, index search.Index, searcher *search.Searcher, propagator *search.Propagator, uploader storage.ImageUploader) {
	userController := controllers.NewUserController(db, uploader)
	warningController := controllers.NewWarningController(db, searcher, propagator, uploader)
	reportController := controllers.NewReportController(db, uploader)
	commentController := controllers.NewCommentController(db)
	adminController := controllers.NewAdminController(db)
	statisticsController := controllers.NewStatisticsController(db, searcher)
	healthController := controllers.NewHealthController(db, index)

	r.GET("/", healthController.Root)
	r.GET("/health", healthController.Health)

	public := r.Group("/api")
	{
		public.POST("/users/register", userController.Register)
		public.POST("/users/login", userController.Login)
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/me", userController.GetMe)
		protected.PUT("/users/me", userController.UpdateMe)
		protected.POST("/users/me/avatar", userController.UploadAvatar)
	}

	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/users", userController.ListUsers)
		admin.GET("/users/:id", userController.GetUser)
		admin.PUT("/users/:id", userController.UpdateUser)
		admin.DELETE("/users/:id", userController.DeleteUser)

		admin.GET("/statistics/dashboard", statisticsController.GetDashboard)
	}

	superAdmin := r.Group("/api")
	superAdmin.Use(middleware.AuthMiddleware(), middleware.SuperAdminOnly())

	SetupWarningRoutes(public, protected, admin, warningController)
	SetupReportRoutes(public, admin, reportController)
	SetupCommentRoutes(public, protected, commentController)
	SetupAdminRoutes(public, admin, superAdmin, adminController)
}
