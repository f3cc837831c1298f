package routes

import (
	"github.com/check-scam/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(public, admin, superAdmin *gin.RouterGroup, adminController *controllers.AdminController) {
	admins := public.Group("/admins")
	{
		admins.GET("", adminController.ListPublicAdmins)
		admins.GET("/:number", adminController.GetAdminByNumber)
	}

	admin.GET("/admins/profiles/all", adminController.ListAllProfiles)

	profiles := superAdmin.Group("/admins/profiles")
	{
		profiles.POST("", adminController.CreateProfile)
		profiles.PUT("/:id", adminController.UpdateProfile)
		profiles.DELETE("/:id", adminController.DeleteProfile)
	}
}
