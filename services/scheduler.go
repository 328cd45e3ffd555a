package services

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"motocare/models"
)

// Scheduler recomputes the maintenance schedule of one vehicle from its
// current odometer, the rule catalog and the service history. Every
// mutating trigger (trip, odometer edit, history entry, vehicle
// creation) funnels into Recompute for the affected vehicle.
type Scheduler struct {
	store Store
}

func NewScheduler(store Store) *Scheduler {
	return &Scheduler{store: store}
}

// Recompute reevaluates every rule in the catalog against the vehicle
// and reconciles schedule rows and notifications. The whole pass runs in
// one transaction scoped to the vehicle: either all rows commit or none
// do. Calling it again with unchanged data writes nothing.
//
// A unique-key conflict means two triggers raced the same vehicle; the
// losing pass is retried once against the winner's committed rows.
func (s *Scheduler) Recompute(vehicleID int) error {
	err := s.store.InVehicleTx(vehicleID, func(tx Tx) error {
		return s.recomputeTx(tx, vehicleID)
	})
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		log.WithField("vehicle_id", vehicleID).Warn("schedule upsert raced a concurrent trigger, retrying once")
		err = s.store.InVehicleTx(vehicleID, func(tx Tx) error {
			return s.recomputeTx(tx, vehicleID)
		})
	}
	if err != nil {
		return fmt.Errorf("recompute vehicle %d: %w", vehicleID, err)
	}
	return nil
}

// InitializeSchedule seeds the first schedule snapshot for a freshly
// created vehicle. Same pass as Recompute.
func (s *Scheduler) InitializeSchedule(vehicleID int) error {
	return s.Recompute(vehicleID)
}

func (s *Scheduler) recomputeTx(tx Tx, vehicleID int) error {
	vehicle, err := tx.Vehicle(vehicleID)
	if err != nil {
		return fmt.Errorf("load vehicle: %w", err)
	}
	if vehicle == nil {
		log.WithField("vehicle_id", vehicleID).Warn("recompute skipped, vehicle not found")
		return nil
	}

	rules, err := tx.ServiceRules()
	if err != nil {
		return fmt.Errorf("load service rules: %w", err)
	}

	for i := range rules {
		rule := &rules[i]
		if !rule.Valid() {
			log.WithFields(log.Fields{
				"rule":        rule.ServiceName,
				"interval_km": rule.IntervalKm,
			}).Warn("skipping malformed service rule")
			continue
		}
		if err := s.evaluateRule(tx, vehicle, rule); err != nil {
			return fmt.Errorf("rule %q: %w", rule.ServiceName, err)
		}
	}
	return nil
}

// evaluateRule recomputes the schedule row for one (vehicle, rule) pair
// and hands the outcome to the notification reconciler.
func (s *Scheduler) evaluateRule(tx Tx, vehicle *models.Vehicle, rule *models.ServiceRule) error {
	last, err := tx.LatestHistory(vehicle.VehicleID, rule.ServiceName)
	if err != nil {
		return fmt.Errorf("latest history: %w", err)
	}

	// No history means the rule applies from odometer 0: a freshly
	// registered vehicle can be immediately overdue, which captures
	// maintenance deferred before registration.
	baseline := 0
	if last != nil {
		baseline = last.OdometerAtService
	}
	target := baseline + rule.IntervalKm
	status := targetStatus(vehicle.CurrentOdometer, target, rule.Threshold())

	item, err := tx.ScheduleItem(vehicle.VehicleID, rule.ServiceName)
	if err != nil {
		return fmt.Errorf("load schedule item: %w", err)
	}

	if item == nil {
		item = &models.MaintenanceSchedule{
			VehicleID:             vehicle.VehicleID,
			ItemName:              rule.ServiceName,
			Description:           ruleDescription(rule),
			NextDueOdometer:       &target,
			RecommendedIntervalKm: rule.IntervalKm,
			Status:                status,
		}
		if err := tx.CreateScheduleItem(item); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"vehicle_id": vehicle.VehicleID,
			"rule":       rule.ServiceName,
			"target":     target,
			"status":     status,
		}).Info("schedule item created")
		return s.reconcileNotifications(tx, item, vehicle, status)
	}

	// A resolved row stays resolved until the catalog target moves past
	// the odometer the resolution covered; only then does the item start
	// a fresh cycle.
	if !item.IsActive() && target <= performedOdometer(item) {
		return nil
	}

	if changed := applyTarget(item, rule, target, status); changed {
		if err := tx.SaveScheduleItem(item); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"vehicle_id": vehicle.VehicleID,
			"rule":       rule.ServiceName,
			"target":     target,
			"status":     status,
		}).Info("schedule item updated")
	}
	return s.reconcileNotifications(tx, item, vehicle, status)
}

// targetStatus derives the status of a schedule item from the current
// odometer, the due target and the warning threshold.
func targetStatus(currentOdometer, target, threshold int) string {
	switch {
	case currentOdometer >= target:
		return models.StatusOverdue
	case target-currentOdometer <= threshold:
		return models.StatusUpcoming
	default:
		return models.StatusPending
	}
}

// applyTarget writes the recomputed fields onto the row and reports
// whether anything actually changed, so unchanged passes stay writeless.
func applyTarget(item *models.MaintenanceSchedule, rule *models.ServiceRule, target int, status string) bool {
	desc := ruleDescription(rule)
	changed := item.NextDueOdometer == nil || *item.NextDueOdometer != target ||
		item.Status != status ||
		item.Description != desc ||
		item.RecommendedIntervalKm != rule.IntervalKm
	if !changed {
		return false
	}
	t := target
	item.NextDueOdometer = &t
	item.Status = status
	item.Description = desc
	item.RecommendedIntervalKm = rule.IntervalKm
	return true
}

func performedOdometer(item *models.MaintenanceSchedule) int {
	if item.LastPerformedOdometer == nil {
		return 0
	}
	return *item.LastPerformedOdometer
}

func ruleDescription(rule *models.ServiceRule) string {
	if rule.Description != "" {
		return rule.Description
	}
	return fmt.Sprintf("Routine maintenance for %s", rule.ServiceName)
}
