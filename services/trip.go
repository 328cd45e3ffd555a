package services

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"motocare/models"
)

// TripInput is a validated trip submission.
type TripInput struct {
	DistanceKm     float64
	StartTime      *time.Time
	EndTime        *time.Time
	StartLatitude  *float64
	StartLongitude *float64
	EndLatitude    *float64
	EndLongitude   *float64
}

// RecordTrip stores the trip and rolls the distance into the vehicle
// odometer, then dispatches a recompute. Returns the trip and the new
// odometer reading.
func (f *Flows) RecordTrip(userID, vehicleID int, in TripInput) (*models.Trip, int, error) {
	end := time.Now()
	if in.EndTime != nil {
		end = *in.EndTime
	}
	trip := &models.Trip{
		VehicleID:      vehicleID,
		DistanceKm:     in.DistanceKm,
		StartTime:      in.StartTime,
		EndTime:        end,
		StartLatitude:  in.StartLatitude,
		StartLongitude: in.StartLongitude,
		EndLatitude:    in.EndLatitude,
		EndLongitude:   in.EndLongitude,
	}

	var newOdometer int
	err := f.store.InVehicleTx(vehicleID, func(tx Tx) error {
		vehicle, err := ownedVehicle(tx, vehicleID, userID)
		if err != nil {
			return err
		}
		if err := tx.CreateTrip(trip); err != nil {
			return fmt.Errorf("create trip: %w", err)
		}

		now := time.Now()
		newOdometer = vehicle.CurrentOdometer + int(math.Round(in.DistanceKm))
		vehicle.CurrentOdometer = newOdometer
		vehicle.LastOdometerUpdate = &now
		if err := tx.SaveVehicle(vehicle); err != nil {
			return fmt.Errorf("update vehicle odometer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	log.WithFields(log.Fields{
		"vehicle_id":  vehicleID,
		"distance_km": in.DistanceKm,
		"odometer":    newOdometer,
	}).Info("trip recorded")

	f.dispatch.Enqueue(vehicleID)
	return trip, newOdometer, nil
}
