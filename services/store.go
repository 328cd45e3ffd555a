package services

import "motocare/models"

// Store is the persistence boundary the scheduler and the mutating flows
// run against. InVehicleTx runs fn inside one transaction with the
// vehicle row locked, so concurrent triggers for the same vehicle
// serialize instead of racing the schedule find-or-create. Injected so
// tests can substitute an in-memory double.
type Store interface {
	// InTx runs fn in a plain transaction, for flows that create the
	// vehicle row itself (registration, vehicle add).
	InTx(fn func(tx Tx) error) error
	// InVehicleTx additionally locks the vehicle row for the duration.
	InVehicleTx(vehicleID int, fn func(tx Tx) error) error
}

// Tx is the transactional view handed to a flow. Single-row lookups
// return (nil, nil) when nothing matches.
type Tx interface {
	CreateUser(u *models.User) error
	UserByEmail(email string) (*models.User, error)

	Vehicle(vehicleID int) (*models.Vehicle, error)
	CreateVehicle(v *models.Vehicle) error
	SaveVehicle(v *models.Vehicle) error
	VehicleCode(brand, model string, year int) (string, error)

	ServiceRules() ([]models.ServiceRule, error)

	LatestHistory(vehicleID int, serviceType string) (*models.ServiceHistory, error)
	CreateHistory(entry *models.ServiceHistory) error

	ScheduleItem(vehicleID int, itemName string) (*models.MaintenanceSchedule, error)
	ScheduleByID(vehicleID, scheduleID int) (*models.MaintenanceSchedule, error)
	CreateScheduleItem(item *models.MaintenanceSchedule) error
	SaveScheduleItem(item *models.MaintenanceSchedule) error

	UnreadNotification(scheduleID int, notifType string) (*models.Notification, error)
	CreateNotification(n *models.Notification) error
	MarkNotificationsRead(scheduleID int, types ...string) error
	DeleteNotificationsBySchedule(scheduleID int) error

	CreateTrip(trip *models.Trip) error
}
