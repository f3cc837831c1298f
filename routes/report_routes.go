package routes

import (
	"github.com/check-scam/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(public, admin *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := public.Group("/reports")
	{
		reports.POST("/scam", reportController.CreateScamReport)
		reports.POST("/website", reportController.CreateWebsiteReport)
	}

	adminReports := admin.Group("/reports/admin")
	{
		adminReports.GET("", reportController.ListReports)
		adminReports.PUT("/:id", reportController.UpdateReport)
		adminReports.DELETE("/:id", reportController.DeleteReport)
	}
}
