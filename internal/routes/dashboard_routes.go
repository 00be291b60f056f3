package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/controllers"
)

func DashboardRoutes(r *gin.Engine, db *gorm.DB) {
	ctl := controllers.NewDashboardController(db)

	r.GET("/api/dashboard", ctl.Counts)
}
