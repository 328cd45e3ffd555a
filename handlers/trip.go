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

type recordTripInput struct {
	DistanceKm     *float64 `json:"distance_km" binding:"required,gt=0"`
	StartTime      *string  `json:"start_time"`
	EndTime        *string  `json:"end_time"`
	StartLatitude  *float64 `json:"start_latitude"`
	StartLongitude *float64 `json:"start_longitude"`
	EndLatitude    *float64 `json:"end_latitude"`
	EndLongitude   *float64 `json:"end_longitude"`
}

// RecordTrip stores a trip, rolls its distance into the odometer and
// triggers a schedule recompute.
func RecordTrip(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	var input recordTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "distance_km is required and must be > 0", err.Error())
		return
	}

	startTime, ok := parseOptionalTime(c, input.StartTime)
	if !ok {
		return
	}
	endTime, ok := parseOptionalTime(c, input.EndTime)
	if !ok {
		return
	}

	trip, newOdometer, err := flows.RecordTrip(userID, vehicleID, services.TripInput{
		DistanceKm:     *input.DistanceKm,
		StartTime:      startTime,
		EndTime:        endTime,
		StartLatitude:  input.StartLatitude,
		StartLongitude: input.StartLongitude,
		EndLatitude:    input.EndLatitude,
		EndLongitude:   input.EndLongitude,
	})
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Vehicle not found or not yours", err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to record trip", err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Trip recorded", gin.H{
		"trip":         trip,
		"new_odometer": newOdometer,
	})
}

// GetTrips lists a vehicle's trips, newest first.
func GetTrips(c *gin.Context) {
	userID := c.GetInt("user_id")
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedVehicleQuery(c, vehicleID, userID); !ok {
		return
	}

	var trips []models.Trip
	if err := database.DB.Where("vehicle_id = ?", vehicleID).
		Order("end_time DESC").
		Find(&trips).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch trips", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Trips fetched", trips)
}

// parseOptionalTime parses an RFC 3339 timestamp, writing the error
// response itself when the value is present but malformed.
func parseOptionalTime(c *gin.Context, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid timestamp, expected RFC 3339", err.Error())
		return nil, false
	}
	return &t, true
}
