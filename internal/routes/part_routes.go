package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/controllers"
)

func PartRoutes(r *gin.Engine, db *gorm.DB) {
	ctl := controllers.NewPartController(db)

	parts := r.Group("/api/parts")
	{
		parts.GET("", ctl.List)
		parts.POST("", ctl.Create)
		parts.PUT("/:id", ctl.Update)
	}
}
