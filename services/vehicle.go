package services

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"motocare/models"
)

// RegisterInput creates a user together with their first vehicle and
// optional pre-registration service history, the way the mobile app
// onboards: one atomic submission.
type RegisterInput struct {
	Name            string
	Email           string
	PasswordHash    string
	Address         string
	Vehicle         VehicleInput
	InitialServices []HistoryInput
}

// VehicleInput is a validated vehicle submission.
type VehicleInput struct {
	PlateNumber     string
	Brand           string
	Model           string
	Year            int
	CurrentOdometer int
	LastServiceDate *time.Time
	PhotoURL        string
}

// Register creates the user, their first vehicle and any initial service
// entries in one transaction, then seeds the schedule via dispatch.
func (f *Flows) Register(in RegisterInput) (*models.User, *models.Vehicle, error) {
	var user *models.User
	var vehicle *models.Vehicle

	err := f.store.InTx(func(tx Tx) error {
		existing, err := tx.UserByEmail(in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailTaken
		}

		user = &models.User{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: in.PasswordHash,
			Address:      in.Address,
		}
		if err := tx.CreateUser(user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		vehicle, err = f.createVehicleTx(tx, user.UserID, in.Vehicle)
		if err != nil {
			return err
		}

		for _, svc := range in.InitialServices {
			if svc.ServiceType == "" {
				continue
			}
			entry := &models.ServiceHistory{
				VehicleID:         vehicle.VehicleID,
				ServiceDate:       svc.ServiceDate,
				OdometerAtService: svc.OdometerAtService,
				ServiceType:       svc.ServiceType,
				Description:       svc.Description,
				WorkshopName:      svc.WorkshopName,
				Cost:              svc.Cost,
			}
			if err := tx.CreateHistory(entry); err != nil {
				return fmt.Errorf("create initial history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"user_id":    user.UserID,
		"vehicle_id": vehicle.VehicleID,
	}).Info("user registered with first vehicle")

	f.dispatch.Enqueue(vehicle.VehicleID)
	return user, vehicle, nil
}

// AddVehicle attaches another vehicle to an existing user and seeds its
// schedule.
func (f *Flows) AddVehicle(userID int, in VehicleInput) (*models.Vehicle, error) {
	var vehicle *models.Vehicle
	err := f.store.InTx(func(tx Tx) error {
		var err error
		vehicle, err = f.createVehicleTx(tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.dispatch.Enqueue(vehicle.VehicleID)
	return vehicle, nil
}

func (f *Flows) createVehicleTx(tx Tx, userID int, in VehicleInput) (*models.Vehicle, error) {
	code, err := tx.VehicleCode(in.Brand, in.Model, in.Year)
	if err != nil {
		// Missing coding data never blocks registration.
		log.WithFields(log.Fields{"brand": in.Brand, "model": in.Model}).Warnf("vehicle code lookup failed: %v", err)
		code = ""
	}

	now := time.Now()
	vehicle := &models.Vehicle{
		UserID:             userID,
		PlateNumber:        in.PlateNumber,
		Brand:              in.Brand,
		Model:              in.Model,
		Year:               in.Year,
		VehicleCode:        code,
		CurrentOdometer:    in.CurrentOdometer,
		LastOdometerUpdate: &now,
		LastServiceDate:    in.LastServiceDate,
		PhotoURL:           in.PhotoURL,
		LogoURL:            LogoURL(in.Brand, in.Model),
	}
	if err := tx.CreateVehicle(vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

// UpdateOdometer applies a manual odometer correction. Values lower than
// the current reading are accepted (data-entry fixes) and the schedule
// is recomputed deterministically against the new value.
func (f *Flows) UpdateOdometer(userID, vehicleID, odometer int) (*models.Vehicle, error) {
	var vehicle *models.Vehicle
	err := f.store.InVehicleTx(vehicleID, func(tx Tx) error {
		var err error
		vehicle, err = ownedVehicle(tx, vehicleID, userID)
		if err != nil {
			return err
		}
		now := time.Now()
		vehicle.CurrentOdometer = odometer
		vehicle.LastOdometerUpdate = &now
		return tx.SaveVehicle(vehicle)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"vehicle_id": vehicleID, "odometer": odometer}).Info("odometer updated")
	f.dispatch.Enqueue(vehicleID)
	return vehicle, nil
}

// ResolveSchedule marks an active schedule item COMPLETED or SKIPPED on
// the user's say-so, without a history entry. The resolution covers the
// current cycle: the item stays dormant until a later service entry
// advances its baseline.
func (f *Flows) ResolveSchedule(userID, vehicleID, scheduleID int, status string) (*models.MaintenanceSchedule, error) {
	if status != models.StatusCompleted && status != models.StatusSkipped {
		return nil, fmt.Errorf("invalid resolution status %q", status)
	}

	var item *models.MaintenanceSchedule
	err := f.store.InVehicleTx(vehicleID, func(tx Tx) error {
		vehicle, err := ownedVehicle(tx, vehicleID, userID)
		if err != nil {
			return err
		}
		item, err = tx.ScheduleByID(vehicleID, scheduleID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrScheduleNotFound
		}
		if !item.IsActive() {
			return ErrScheduleResolved
		}

		// The waived cycle is considered handled up to its due target
		// (or the current odometer, whichever is further along).
		performed := vehicle.CurrentOdometer
		if item.NextDueOdometer != nil && *item.NextDueOdometer > performed {
			performed = *item.NextDueOdometer
		}
		now := time.Now()
		item.Status = status
		item.LastPerformedDate = &now
		item.LastPerformedOdometer = &performed
		item.NextDueOdometer = nil
		item.NextDueDate = nil
		if err := tx.SaveScheduleItem(item); err != nil {
			return fmt.Errorf("resolve schedule item: %w", err)
		}
		return tx.DeleteNotificationsBySchedule(item.ScheduleID)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"vehicle_id":  vehicleID,
		"schedule_id": scheduleID,
		"status":      status,
	}).Info("schedule item resolved")

	f.dispatch.Enqueue(vehicleID)
	return item, nil
}

// LogoURL maps well-known brand/model combinations to a bundled logo
// asset. Unknown combinations get no logo.
func LogoURL(brand, model string) string {
	b := strings.ToLower(brand)
	m := strings.ToLower(model)
	switch b {
	case "honda":
		switch {
		case strings.Contains(m, "beat"):
			return "/logos/honda_beat.png"
		case strings.Contains(m, "vario"):
			return "/logos/honda_vario.png"
		case strings.Contains(m, "pcx"):
			return "/logos/honda_pcx.png"
		case strings.Contains(m, "scoopy"):
			return "/logos/honda_scoopy.png"
		}
	case "yamaha":
		switch {
		case strings.Contains(m, "aerox"):
			return "/logos/yamaha_aerox.png"
		case strings.Contains(m, "nmax"):
			return "/logos/yamaha_nmax.png"
		case strings.Contains(m, "lexi"):
			return "/logos/yamaha_lexi.png"
		}
	case "suzuki":
		if strings.Contains(m, "nex ii") || strings.Contains(m, "nex 2") {
			return "/logos/suzuki_nexii.png"
		}
	}
	return ""
}
