package services

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"motocare/models"
)

// reconcileNotifications keeps user-facing alerts in step with a
// schedule item, inside the same transaction as the schedule write.
//
// Guarantee: at most one unread notification per (schedule, type) at any
// time. Resolved concerns are marked read, never deleted, so alert
// history survives.
func (s *Scheduler) reconcileNotifications(tx Tx, item *models.MaintenanceSchedule, vehicle *models.Vehicle, status string) error {
	switch status {
	case models.StatusPending:
		// The concern resolved itself (fresh cycle); stop pestering.
		if err := tx.MarkNotificationsRead(item.ScheduleID, models.NotifOverdueAlert, models.NotifServiceReminder); err != nil {
			return fmt.Errorf("mark notifications read: %w", err)
		}
		return nil
	case models.StatusOverdue:
		return s.emitOnce(tx, item, vehicle, models.NotifOverdueAlert)
	case models.StatusUpcoming:
		return s.emitOnce(tx, item, vehicle, models.NotifServiceReminder)
	}
	// Terminal statuses: resolution paths already cleared their alerts.
	return nil
}

// emitOnce creates an alert of the given type unless an unread one for
// this schedule already exists.
func (s *Scheduler) emitOnce(tx Tx, item *models.MaintenanceSchedule, vehicle *models.Vehicle, notifType string) error {
	existing, err := tx.UnreadNotification(item.ScheduleID, notifType)
	if err != nil {
		return fmt.Errorf("find unread notification: %w", err)
	}
	if existing != nil {
		return nil
	}

	n := buildNotification(item, vehicle, notifType)
	if err := tx.CreateNotification(n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	log.WithFields(log.Fields{
		"vehicle_id":  vehicle.VehicleID,
		"schedule_id": item.ScheduleID,
		"type":        notifType,
	}).Info("notification created")
	return nil
}

func buildNotification(item *models.MaintenanceSchedule, vehicle *models.Vehicle, notifType string) *models.Notification {
	target := 0
	if item.NextDueOdometer != nil {
		target = *item.NextDueOdometer
	}
	vehicleID := vehicle.VehicleID
	scheduleID := item.ScheduleID

	var title, message string
	if notifType == models.NotifOverdueAlert {
		over := vehicle.CurrentOdometer - target
		title = fmt.Sprintf("Overdue: %s", item.ItemName)
		message = fmt.Sprintf("Your %s %s passed the %s target at %d km and is now %d km over. Service it as soon as possible.",
			vehicle.Brand, vehicle.Model, item.ItemName, target, over)
	} else {
		remaining := target - vehicle.CurrentOdometer
		title = fmt.Sprintf("Upcoming: %s", item.ItemName)
		message = fmt.Sprintf("Your %s %s is due for %s at %d km, %d km from now.",
			vehicle.Brand, vehicle.Model, item.ItemName, target, remaining)
	}

	return &models.Notification{
		UserID:     vehicle.UserID,
		VehicleID:  &vehicleID,
		ScheduleID: &scheduleID,
		Title:      title,
		Message:    message,
		Type:       notifType,
	}
}
