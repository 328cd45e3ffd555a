package services

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"motocare/models"
)

// HistoryInput is a validated service-history submission.
type HistoryInput struct {
	ServiceDate       time.Time
	OdometerAtService int
	ServiceType       string
	Description       string
	WorkshopName      string
	Cost              *float64
}

// AddServiceHistory appends a service entry, advances the vehicle's
// odometer and last-service date when the entry is newer, and resolves
// the matching active schedule item. Notifications tied to the resolved
// item are deleted outright: the concern no longer exists in its old
// form. A recompute is dispatched afterwards to regenerate a fresh row
// for the next cycle.
func (f *Flows) AddServiceHistory(userID, vehicleID int, in HistoryInput) (*models.ServiceHistory, error) {
	entry := &models.ServiceHistory{
		VehicleID:         vehicleID,
		ServiceDate:       in.ServiceDate,
		OdometerAtService: in.OdometerAtService,
		ServiceType:       in.ServiceType,
		Description:       in.Description,
		WorkshopName:      in.WorkshopName,
		Cost:              in.Cost,
	}

	err := f.store.InVehicleTx(vehicleID, func(tx Tx) error {
		vehicle, err := ownedVehicle(tx, vehicleID, userID)
		if err != nil {
			return err
		}

		if err := tx.CreateHistory(entry); err != nil {
			return fmt.Errorf("create history entry: %w", err)
		}

		now := time.Now()
		changed := false
		if in.OdometerAtService > vehicle.CurrentOdometer {
			vehicle.CurrentOdometer = in.OdometerAtService
			vehicle.LastOdometerUpdate = &now
			changed = true
		}
		if vehicle.LastServiceDate == nil || in.ServiceDate.After(*vehicle.LastServiceDate) {
			d := in.ServiceDate
			vehicle.LastServiceDate = &d
			changed = true
		}
		if changed {
			if err := tx.SaveVehicle(vehicle); err != nil {
				return fmt.Errorf("update vehicle: %w", err)
			}
		}

		item, err := tx.ScheduleItem(vehicleID, in.ServiceType)
		if err != nil {
			return fmt.Errorf("load schedule item: %w", err)
		}
		if item != nil && item.IsActive() {
			if err := completeItem(tx, item, in.ServiceDate, in.OdometerAtService); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"vehicle_id":   vehicleID,
		"service_type": in.ServiceType,
		"odometer":     in.OdometerAtService,
	}).Info("service history recorded")

	f.dispatch.Enqueue(vehicleID)
	return entry, nil
}

// completeItem marks an active schedule row COMPLETED with the entry
// that satisfied it, clears the due targets and drops its alerts.
func completeItem(tx Tx, item *models.MaintenanceSchedule, date time.Time, odometer int) error {
	item.Status = models.StatusCompleted
	d := date
	o := odometer
	item.LastPerformedDate = &d
	item.LastPerformedOdometer = &o
	item.NextDueOdometer = nil
	item.NextDueDate = nil
	if err := tx.SaveScheduleItem(item); err != nil {
		return fmt.Errorf("resolve schedule item: %w", err)
	}
	if err := tx.DeleteNotificationsBySchedule(item.ScheduleID); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}
