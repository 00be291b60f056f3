package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/services"
)

type PartController struct {
	svc *services.PartService
}

func NewPartController(db *gorm.DB) *PartController {
	return &PartController{svc: services.NewPartService(db)}
}

// List searches name/part number and filters by stock bucket
// (all, low, critical, in_stock).
func (ctl *PartController) List(c *gin.Context) {
	filter := services.StockFilter(c.DefaultQuery("stock", "all"))

	list, err := ctl.svc.List(c.Request.Context(), c.Query("search"), filter, queryPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       list.Parts,
		"pagination": list.Pagination,
		"counters":   list.Counters,
	})
}

func (ctl *PartController) Create(c *gin.Context) {
	var input services.CreatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part input: " + err.Error()})
		return
	}

	part, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"part": part})
}

func (ctl *PartController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input services.UpdatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part input: " + err.Error()})
		return
	}

	part, err := ctl.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"part": part})
}
