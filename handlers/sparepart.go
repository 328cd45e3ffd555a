package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motocare/database"
	"motocare/models"
)

// GetSparePartsForVehicle lists every spare part registered for the
// vehicle's model code.
func GetSparePartsForVehicle(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}
	vehicle, ok := ownedVehicleQuery(c, vehicleID, userID)
	if !ok {
		return
	}
	if vehicle.VehicleCode == "" {
		ErrorResponse(c, http.StatusNotFound, "No spare part data for this vehicle model", "")
		return
	}

	var parts []models.SparePart
	if err := database.DB.Where("vehicle_code = ?", vehicle.VehicleCode).
		Order("part_name ASC").
		Find(&parts).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch spare parts", err.Error())
		return
	}
	if len(parts) == 0 {
		ErrorResponse(c, http.StatusNotFound, "No spare parts registered for this model", "")
		return
	}
	SuccessResponse(c, http.StatusOK, "Spare parts fetched", parts)
}

// GetSparePartForService resolves the spare part for one service name on
// the vehicle's model.
func GetSparePartForService(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}
	serviceName := c.Param("serviceName")

	vehicle, ok := ownedVehicleQuery(c, vehicleID, userID)
	if !ok {
		return
	}
	if vehicle.VehicleCode == "" {
		ErrorResponse(c, http.StatusNotFound, "No spare part data for this vehicle model", "")
		return
	}

	var part models.SparePart
	err := database.DB.Where("vehicle_code = ? AND service_name = ?", vehicle.VehicleCode, serviceName).
		First(&part).Error
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "Spare part not found for this service", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Spare part fetched", part)
}
