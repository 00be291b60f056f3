package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/controllers"
)

func PurchaseRoutes(r *gin.Engine, db *gorm.DB) {
	ctl := controllers.NewPurchaseController(db)

	purchases := r.Group("/api/purchases")
	{
		purchases.GET("", ctl.List)
		purchases.POST("", ctl.Create)
	}
}
