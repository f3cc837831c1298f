package routes

import (
	"github.com/check-scam/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupCommentRoutes(public, protected *gin.RouterGroup, commentController *controllers.CommentController) {
	public.GET("/comments/warning/:id", commentController.GetCommentsByWarning)

	comments := protected.Group("/comments")
	{
		comments.POST("", commentController.CreateComment)
		comments.PUT("/:id", commentController.UpdateComment)
		comments.DELETE("/:id", commentController.DeleteComment)
	}
}
