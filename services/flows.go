package services

import (
	"errors"

	"motocare/models"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrVehicleNotFound  = errors.New("vehicle not found or not owned by user")
	ErrEmailTaken       = errors.New("email already registered")
	ErrScheduleNotFound = errors.New("schedule item not found")
	ErrScheduleResolved = errors.New("schedule item already resolved")
)

// Flows groups the mutating operations that handlers delegate to. Each
// flow commits its own transaction, then hands the vehicle id to the
// dispatcher; the HTTP response never waits on (or reflects) the
// scheduling outcome.
type Flows struct {
	store    Store
	dispatch Dispatcher
}

func NewFlows(store Store, dispatch Dispatcher) *Flows {
	return &Flows{store: store, dispatch: dispatch}
}

// ownedVehicle loads a vehicle and checks it belongs to the user.
func ownedVehicle(tx Tx, vehicleID, userID int) (*models.Vehicle, error) {
	v, err := tx.Vehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.UserID != userID {
		return nil, ErrVehicleNotFound
	}
	return v, nil
}
