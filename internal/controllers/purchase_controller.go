package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/services"
)

type PurchaseController struct {
	svc *services.PurchaseService
}

func NewPurchaseController(db *gorm.DB) *PurchaseController {
	return &PurchaseController{svc: services.NewPurchaseService(db)}
}

func (ctl *PurchaseController) List(c *gin.Context) {
	list, err := ctl.svc.List(c.Request.Context(), c.Query("search"), queryPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       list.Purchases,
		"pagination": list.Pagination,
		"counters":   list.Counters,
	})
}

// Create records the purchase; stock problems come back as warnings, the
// purchase order itself is already saved.
func (ctl *PurchaseController) Create(c *gin.Context) {
	var input services.ReceivePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase input: " + err.Error()})
		return
	}

	order, warnings, err := ctl.svc.Receive(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"purchase_order": order, "warnings": warnings})
}
