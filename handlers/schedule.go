package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"motocare/database"
	"motocare/models"
	"motocare/services"
)

// GetSchedules lists a vehicle's active schedule items, soonest due
// first (null targets sort last).
func GetSchedules(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedVehicleQuery(c, vehicleID, userID); !ok {
		return
	}

	var items []models.MaintenanceSchedule
	if err := database.DB.Where("vehicle_id = ? AND status IN ?", vehicleID, models.ActiveStatuses).
		Order("next_due_odometer IS NULL, next_due_odometer ASC").
		Find(&items).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch schedules", err.Error())
		return
	}

	resp := make([]models.MaintenanceScheduleResponse, len(items))
	for i := range items {
		resp[i] = items[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "Schedules fetched", resp)
}

type resolveScheduleInput struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED SKIPPED"`
}

// ResolveSchedule marks an active schedule item COMPLETED or SKIPPED
// without a service-history entry.
func ResolveSchedule(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}
	scheduleID, err := strconv.Atoi(c.Param("scheduleId"))
	if err != nil || scheduleID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid schedule id", c.Param("scheduleId"))
		return
	}

	var input resolveScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Status must be COMPLETED or SKIPPED", err.Error())
		return
	}

	item, err := flows.ResolveSchedule(userID, vehicleID, scheduleID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVehicleNotFound):
			ErrorResponse(c, http.StatusNotFound, "Vehicle not found or not yours", err.Error())
		case errors.Is(err, services.ErrScheduleNotFound):
			ErrorResponse(c, http.StatusNotFound, "Schedule item not found", err.Error())
		case errors.Is(err, services.ErrScheduleResolved):
			ErrorResponse(c, http.StatusConflict, "Schedule item already resolved", err.Error())
		default:
			ErrorResponse(c, http.StatusInternalServerError, "Failed to resolve schedule item", err.Error())
		}
		return
	}
	SuccessResponse(c, http.StatusOK, "Schedule item resolved", item.ToResponse())
}
