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

// GetMyVehicles lists the authenticated user's vehicles, newest first.
func GetMyVehicles(c *gin.Context) {
	userID := c.GetInt("user_id")

	var vehicles []models.Vehicle
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch vehicles", err.Error())
		return
	}

	resp := make([]models.VehicleResponse, len(vehicles))
	for i := range vehicles {
		resp[i] = vehicles[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "Vehicles fetched", resp)
}

type createVehicleInput struct {
	PlateNumber     string `json:"plate_number" binding:"required"`
	Brand           string `json:"brand" binding:"required"`
	Model           string `json:"model" binding:"required"`
	Year            int    `json:"year"`
	CurrentOdometer int    `json:"current_odometer" binding:"gte=0"`
	LastServiceDate string `json:"last_service_date"`
	PhotoURL        string `json:"photo_url"`
}

// CreateVehicle adds a vehicle to the authenticated user and seeds its
// maintenance schedule.
func CreateVehicle(c *gin.Context) {
	userID := c.GetInt("user_id")

	var input createVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Plate number, brand and model are required", err.Error())
		return
	}

	lastServiceDate, ok := parseOptionalDate(c, input.LastServiceDate)
	if !ok {
		return
	}

	vehicle, err := flows.AddVehicle(userID, services.VehicleInput{
		PlateNumber:     input.PlateNumber,
		Brand:           input.Brand,
		Model:           input.Model,
		Year:            input.Year,
		CurrentOdometer: input.CurrentOdometer,
		LastServiceDate: lastServiceDate,
		PhotoURL:        input.PhotoURL,
	})
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to add vehicle", err.Error())
		return
	}
	SuccessResponse(c, http.StatusCreated, "Vehicle added", vehicle.ToResponse())
}

type updateOdometerInput struct {
	CurrentOdometer *int `json:"current_odometer" binding:"required,gte=0"`
}

// UpdateOdometer applies a manual odometer correction and triggers a
// schedule recompute.
func UpdateOdometer(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	var input updateOdometerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "current_odometer is required and must be >= 0", err.Error())
		return
	}

	vehicle, err := flows.UpdateOdometer(userID, vehicleID, *input.CurrentOdometer)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Vehicle not found or not yours", err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to update odometer", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Odometer updated", vehicle.ToResponse())
}

// vehicleIDParam parses the :vehicleId path parameter.
func vehicleIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle id", c.Param("vehicleId"))
		return 0, false
	}
	return id, true
}

// ownedVehicleQuery loads a vehicle scoped to the authenticated user for
// read-only endpoints. Writes go through services.Flows instead.
func ownedVehicleQuery(c *gin.Context, vehicleID, userID int) (*models.Vehicle, bool) {
	var vehicle models.Vehicle
	err := database.DB.Where("vehicle_id = ? AND user_id = ?", vehicleID, userID).First(&vehicle).Error
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "Vehicle not found or not yours", err.Error())
		return nil, false
	}
	return &vehicle, true
}
