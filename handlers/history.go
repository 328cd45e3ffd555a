package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motocare/database"
	"motocare/models"
	"motocare/services"
)

// GetServiceHistory lists a vehicle's service entries, newest first.
func GetServiceHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedVehicleQuery(c, vehicleID, userID); !ok {
		return
	}

	var entries []models.ServiceHistory
	if err := database.DB.Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC, odometer_at_service DESC").
		Find(&entries).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch service history", err.Error())
		return
	}

	resp := make([]models.ServiceHistoryResponse, len(entries))
	for i := range entries {
		resp[i] = entries[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "Service history fetched", resp)
}

type addHistoryInput struct {
	ServiceDate       string   `json:"service_date" binding:"required"`
	OdometerAtService *int     `json:"odometer_at_service" binding:"required,gte=0"`
	ServiceType       string   `json:"service_type" binding:"required"`
	Description       string   `json:"description"`
	WorkshopName      string   `json:"workshop_name"`
	Cost              *float64 `json:"cost"`
}

// AddServiceHistory records a performed service. The matching active
// schedule item is resolved inside the same transaction and a recompute
// is dispatched afterwards.
func AddServiceHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	var input addHistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Date, odometer and service type are required", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", input.ServiceDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid service date, expected YYYY-MM-DD", err.Error())
		return
	}

	entry, err := flows.AddServiceHistory(userID, vehicleID, services.HistoryInput{
		ServiceDate:       date,
		OdometerAtService: *input.OdometerAtService,
		ServiceType:       input.ServiceType,
		Description:       input.Description,
		WorkshopName:      input.WorkshopName,
		Cost:              input.Cost,
	})
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Vehicle not found or not yours", err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to record service history", err.Error())
		return
	}
	SuccessResponse(c, http.StatusCreated, "Service history recorded", entry.ToResponse())
}
