package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/middleware"
)

func SetupRouter(db *gorm.DB, strictStatusFlow bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())
	r.Use(middleware.CORS())

	CustomerRoutes(r, db)
	VehicleRoutes(r, db)
	PartRoutes(r, db)
	PurchaseRoutes(r, db)
	WorkOrderRoutes(r, db, strictStatusFlow)
	DashboardRoutes(r, db)

	return r
}
