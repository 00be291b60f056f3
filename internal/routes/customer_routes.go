package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/controllers"
)

func CustomerRoutes(r *gin.Engine, db *gorm.DB) {
	ctl := controllers.NewCustomerController(db)

	customers := r.Group("/api/customers")
	{
		customers.GET("", ctl.List)
		customers.POST("", ctl.Create)
		customers.PUT("/:id", ctl.Update)
		customers.DELETE("/:id", ctl.Delete)
		customers.GET("/:id/vehicles", ctl.Vehicles)
	}
}
