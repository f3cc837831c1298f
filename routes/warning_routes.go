package routes

import (
	"github.com/check-scam/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupWarningRoutes(public, protected, admin *gin.RouterGroup, warningController *controllers.WarningController) {
	warnings := public.Group("/warnings")
	{
		warnings.GET("", warningController.ListWarnings)
		warnings.GET("/search", warningController.SearchWarnings)
		warnings.GET("/search/suggest", warningController.SuggestSearch)
		warnings.GET("/top/scammers", warningController.TopScammers)
		warnings.GET("/top/searches", warningController.TopSearches)
		warnings.GET("/:id", warningController.GetWarning)
	}

	protected.POST("/warnings", warningController.CreateWarning)

	adminWarnings := admin.Group("/warnings/admin")
	{
		adminWarnings.PUT("/:id/review", warningController.ReviewWarning)
		adminWarnings.DELETE("/:id", warningController.DeleteWarning)
	}
}
