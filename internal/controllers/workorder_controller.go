package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/models"
	"workshop_manager/internal/services"
)

type WorkOrderController struct {
	svc *services.WorkOrderService
}

func NewWorkOrderController(db *gorm.DB, strictStatusFlow bool) *WorkOrderController {
	return &WorkOrderController{svc: services.NewWorkOrderService(db, strictStatusFlow)}
}

// List filters by status and searches by vehicle plate or customer name.
func (ctl *WorkOrderController) List(c *gin.Context) {
	status := models.WorkOrderStatus(c.DefaultQuery("status", "all"))

	list, err := ctl.svc.List(c.Request.Context(), c.Query("search"), status, queryPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       list.Orders,
		"pagination": list.Pagination,
		"counters":   list.Counters,
	})
}

// Create opens a work order. Consumption requests that fail validation are
// reported under "skipped"; the order and the remaining requests still go
// through.
func (ctl *WorkOrderController) Create(c *gin.Context) {
	var input services.CreateWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order input: " + err.Error()})
		return
	}

	order, skipped, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"work_order": order, "skipped": skipped})
}

// Detail returns the order with its consumed parts and the cost rollup.
func (ctl *WorkOrderController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	detail, err := ctl.svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ctl *WorkOrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		Status models.WorkOrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status input: " + err.Error()})
		return
	}

	order, err := ctl.svc.SetStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order": order})
}

func (ctl *WorkOrderController) UpdatePerformedWork(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		PerformedWork string `json:"performed_work"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	order, err := ctl.svc.UpdatePerformedWork(c.Request.Context(), id, input.PerformedWork)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order": order})
}

// AddPart consumes one part for an order that is already in progress.
func (ctl *WorkOrderController) AddPart(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input services.PartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part input: " + err.Error()})
		return
	}

	row, err := ctl.svc.ConsumePart(c.Request.Context(), id, input.PartID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"consumption": row})
}
