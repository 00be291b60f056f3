package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workshop_manager/internal/services"
)

type CustomerController struct {
	svc *services.CustomerService
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{svc: services.NewCustomerService(db)}
}

// List supports free-text search over name/phone/email, the has-vehicles
// filter and pagination.
func (ctl *CustomerController) List(c *gin.Context) {
	filter := services.CustomerFilter(c.DefaultQuery("filter", "all"))

	list, err := ctl.svc.List(c.Request.Context(), c.Query("search"), filter, queryPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       list.Customers,
		"pagination": list.Pagination,
		"counters":   list.Counters,
	})
}

func (ctl *CustomerController) Create(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer input: " + err.Error()})
		return
	}

	customer, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (ctl *CustomerController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer input: " + err.Error()})
		return
	}

	customer, err := ctl.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (ctl *CustomerController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctl.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// Vehicles returns the customer's vehicles for dependent-field population.
func (ctl *CustomerController) Vehicles(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	vehicles, err := ctl.svc.Vehicles(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}
