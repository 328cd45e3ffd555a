package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"motocare/models"
	"motocare/services"
)

// GormStore implements services.Store on top of GORM/MySQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InTx(fn func(tx services.Tx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

// InVehicleTx takes a row lock on the vehicle before running fn, so two
// triggers for the same vehicle cannot interleave their find-or-create
// on the schedule table. A missing vehicle acquires no lock; the flow
// inside decides how to handle that.
func (s *GormStore) InVehicleTx(vehicleID int, fn func(tx services.Tx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var locked models.Vehicle
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vehicle_id = ?", vehicleID).
			First(&locked).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return fn(&gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) CreateUser(u *models.User) error {
	return t.db.Create(u).Error
}

func (t *gormTx) UserByEmail(email string) (*models.User, error) {
	var u models.User
	err := t.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (t *gormTx) Vehicle(vehicleID int) (*models.Vehicle, error) {
	var v models.Vehicle
	err := t.db.Where("vehicle_id = ?", vehicleID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (t *gormTx) CreateVehicle(v *models.Vehicle) error {
	return t.db.Create(v).Error
}

func (t *gormTx) SaveVehicle(v *models.Vehicle) error {
	return t.db.Save(v).Error
}

// VehicleCode resolves the internal code for a brand/model/year through
// the curated coding table. No match is not an error.
func (t *gormTx) VehicleCode(brand, model string, year int) (string, error) {
	if brand == "" || model == "" || year == 0 {
		return "", nil
	}
	var coding models.VehicleCoding
	err := t.db.Where("brand LIKE ? AND model LIKE ? AND year_start <= ? AND year_end >= ?",
		"%"+brand+"%", "%"+model+"%", year, year).
		First(&coding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return coding.VehicleCode, nil
}

func (t *gormTx) ServiceRules() ([]models.ServiceRule, error) {
	var rules []models.ServiceRule
	if err := t.db.Order("rule_id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// LatestHistory returns the authoritative entry for a service type: the
// newest service date, ties broken by the higher odometer.
func (t *gormTx) LatestHistory(vehicleID int, serviceType string) (*models.ServiceHistory, error) {
	var entry models.ServiceHistory
	err := t.db.Where("vehicle_id = ? AND service_type = ?", vehicleID, serviceType).
		Order("service_date DESC, odometer_at_service DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (t *gormTx) CreateHistory(entry *models.ServiceHistory) error {
	return t.db.Create(entry).Error
}

func (t *gormTx) ScheduleItem(vehicleID int, itemName string) (*models.MaintenanceSchedule, error) {
	var item models.MaintenanceSchedule
	err := t.db.Where("vehicle_id = ? AND item_name = ?", vehicleID, itemName).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *gormTx) ScheduleByID(vehicleID, scheduleID int) (*models.MaintenanceSchedule, error) {
	var item models.MaintenanceSchedule
	err := t.db.Where("schedule_id = ? AND vehicle_id = ?", scheduleID, vehicleID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *gormTx) CreateScheduleItem(item *models.MaintenanceSchedule) error {
	if err := t.db.Create(item).Error; err != nil {
		// Normalize driver-level duplicate-key errors so the scheduler
		// can recognize the benign upsert race and retry.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return gorm.ErrDuplicatedKey
		}
		return err
	}
	return nil
}

func (t *gormTx) SaveScheduleItem(item *models.MaintenanceSchedule) error {
	return t.db.Save(item).Error
}

func (t *gormTx) UnreadNotification(scheduleID int, notifType string) (*models.Notification, error) {
	var n models.Notification
	err := t.db.Where("schedule_id = ? AND type = ? AND is_read = ?", scheduleID, notifType, false).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (t *gormTx) CreateNotification(n *models.Notification) error {
	return t.db.Create(n).Error
}

func (t *gormTx) MarkNotificationsRead(scheduleID int, types ...string) error {
	return t.db.Model(&models.Notification{}).
		Where("schedule_id = ? AND is_read = ? AND type IN ?", scheduleID, false, types).
		Update("is_read", true).Error
}

func (t *gormTx) DeleteNotificationsBySchedule(scheduleID int) error {
	return t.db.Where("schedule_id = ?", scheduleID).Delete(&models.Notification{}).Error
}

func (t *gormTx) CreateTrip(trip *models.Trip) error {
	return t.db.Create(trip).Error
}
