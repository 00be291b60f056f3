package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/controllers"
)

func WorkOrderRoutes(r *gin.Engine, db *gorm.DB, strictStatusFlow bool) {
	ctl := controllers.NewWorkOrderController(db, strictStatusFlow)

	orders := r.Group("/api/workorders")
	{
		orders.GET("", ctl.List)
		orders.POST("", ctl.Create)
		orders.GET("/:id", ctl.Detail)
		orders.PUT("/:id/status", ctl.UpdateStatus)
		orders.PUT("/:id/work", ctl.UpdatePerformedWork)
		orders.POST("/:id/parts", ctl.AddPart)
	}
}
