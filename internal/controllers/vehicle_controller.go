package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/services"
)

type VehicleController struct {
	svc *services.VehicleService
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{svc: services.NewVehicleService(db)}
}

// List searches plate/make/model and optionally narrows to one customer.
func (ctl *VehicleController) List(c *gin.Context) {
	var customerID uint
	if raw := c.Query("customer_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		customerID = uint(parsed)
	}

	list, err := ctl.svc.List(c.Request.Context(), c.Query("search"), customerID, queryPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       list.Vehicles,
		"pagination": list.Pagination,
		"counters":   list.Counters,
	})
}

func (ctl *VehicleController) Create(c *gin.Context) {
	var input services.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func (ctl *VehicleController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input services.UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle, err := ctl.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (ctl *VehicleController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctl.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
