package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/services"
)

type DashboardController struct {
	svc *services.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{svc: services.NewDashboardService(db)}
}

func (ctl *DashboardController) Counts(c *gin.Context) {
	counts, err := ctl.svc.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
