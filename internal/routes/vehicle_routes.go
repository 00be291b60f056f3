package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/controllers"
)

func VehicleRoutes(r *gin.Engine, db *gorm.DB) {
	ctl := controllers.NewVehicleController(db)

	vehicles := r.Group("/api/vehicles")
	{
		vehicles.GET("", ctl.List)
		vehicles.POST("", ctl.Create)
		vehicles.PUT("/:id", ctl.Update)
		vehicles.DELETE("/:id", ctl.Delete)
	}
}
