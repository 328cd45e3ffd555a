package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"motocare/models"
)

// memStore is an in-memory Store double. Reads hand out copies so a
// mutation only lands when the flow calls the matching Save method,
// mirroring how a real transaction behaves.
type memStore struct {
	users     map[int]*models.User
	vehicles  map[int]*models.Vehicle
	rules     []models.ServiceRule
	histories []*models.ServiceHistory
	schedules map[int]*models.MaintenanceSchedule
	notifs    map[int]*models.Notification
	codings   []models.VehicleCoding
	trips     []*models.Trip

	nextUserID     int
	nextVehicleID  int
	nextHistoryID  int
	nextScheduleID int
	nextNotifID    int
	nextTripID     int

	scheduleSaves   int
	scheduleCreates int
	notifCreates    int

	// failScheduleCreate injects one synthetic unique-key conflict.
	failScheduleCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[int]*models.User),
		vehicles:  make(map[int]*models.Vehicle),
		schedules: make(map[int]*models.MaintenanceSchedule),
		notifs:    make(map[int]*models.Notification),
	}
}

func (s *memStore) InTx(fn func(tx Tx) error) error {
	return fn(&memTx{s})
}

func (s *memStore) InVehicleTx(vehicleID int, fn func(tx Tx) error) error {
	return fn(&memTx{s})
}

// Test fixture helpers.

func (s *memStore) addVehicle(userID, odometer int) *models.Vehicle {
	s.nextVehicleID++
	v := &models.Vehicle{
		VehicleID:       s.nextVehicleID,
		UserID:          userID,
		PlateNumber:     "B 1234 TEST",
		Brand:           "Honda",
		Model:           "Beat",
		Year:            2022,
		CurrentOdometer: odometer,
	}
	s.vehicles[v.VehicleID] = v
	return v
}

func (s *memStore) addRule(name string, intervalKm, thresholdKm int) {
	s.rules = append(s.rules, models.ServiceRule{
		RuleID:             len(s.rules) + 1,
		ServiceName:        name,
		IntervalKm:         intervalKm,
		WarningThresholdKm: thresholdKm,
	})
}

func (s *memStore) addHistory(vehicleID int, serviceType string, date time.Time, odometer int) {
	s.nextHistoryID++
	s.histories = append(s.histories, &models.ServiceHistory{
		HistoryID:         s.nextHistoryID,
		VehicleID:         vehicleID,
		ServiceDate:       date,
		OdometerAtService: odometer,
		ServiceType:       serviceType,
	})
}

func (s *memStore) scheduleFor(vehicleID int, itemName string) *models.MaintenanceSchedule {
	for _, item := range s.schedules {
		if item.VehicleID == vehicleID && item.ItemName == itemName {
			return item
		}
	}
	return nil
}

func (s *memStore) unreadCount(scheduleID int, notifType string) int {
	count := 0
	for _, n := range s.notifs {
		if n.ScheduleID != nil && *n.ScheduleID == scheduleID && n.Type == notifType && !n.IsRead {
			count++
		}
	}
	return count
}

func (s *memStore) notifCountBySchedule(scheduleID int) int {
	count := 0
	for _, n := range s.notifs {
		if n.ScheduleID != nil && *n.ScheduleID == scheduleID {
			count++
		}
	}
	return count
}

// memTx implements Tx against the shared maps.
type memTx struct {
	s *memStore
}

func (t *memTx) CreateUser(u *models.User) error {
	t.s.nextUserID++
	u.UserID = t.s.nextUserID
	copied := *u
	t.s.users[u.UserID] = &copied
	return nil
}

func (t *memTx) UserByEmail(email string) (*models.User, error) {
	for _, u := range t.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (t *memTx) Vehicle(vehicleID int) (*models.Vehicle, error) {
	v, ok := t.s.vehicles[vehicleID]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (t *memTx) CreateVehicle(v *models.Vehicle) error {
	t.s.nextVehicleID++
	v.VehicleID = t.s.nextVehicleID
	copied := *v
	t.s.vehicles[v.VehicleID] = &copied
	return nil
}

func (t *memTx) SaveVehicle(v *models.Vehicle) error {
	copied := *v
	t.s.vehicles[v.VehicleID] = &copied
	return nil
}

func (t *memTx) VehicleCode(brand, model string, year int) (string, error) {
	for _, c := range t.s.codings {
		if strings.EqualFold(c.Brand, brand) && strings.EqualFold(c.Model, model) &&
			year >= c.YearStart && year <= c.YearEnd {
			return c.VehicleCode, nil
		}
	}
	return "", nil
}

func (t *memTx) ServiceRules() ([]models.ServiceRule, error) {
	rules := make([]models.ServiceRule, len(t.s.rules))
	copy(rules, t.s.rules)
	return rules, nil
}

func (t *memTx) LatestHistory(vehicleID int, serviceType string) (*models.ServiceHistory, error) {
	var latest *models.ServiceHistory
	for _, h := range t.s.histories {
		if h.VehicleID != vehicleID || h.ServiceType != serviceType {
			continue
		}
		if latest == nil ||
			h.ServiceDate.After(latest.ServiceDate) ||
			(h.ServiceDate.Equal(latest.ServiceDate) && h.OdometerAtService > latest.OdometerAtService) {
			latest = h
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (t *memTx) CreateHistory(entry *models.ServiceHistory) error {
	t.s.nextHistoryID++
	entry.HistoryID = t.s.nextHistoryID
	copied := *entry
	t.s.histories = append(t.s.histories, &copied)
	return nil
}

func (t *memTx) ScheduleItem(vehicleID int, itemName string) (*models.MaintenanceSchedule, error) {
	item := t.s.scheduleFor(vehicleID, itemName)
	if item == nil {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (t *memTx) ScheduleByID(vehicleID, scheduleID int) (*models.MaintenanceSchedule, error) {
	item, ok := t.s.schedules[scheduleID]
	if !ok || item.VehicleID != vehicleID {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (t *memTx) CreateScheduleItem(item *models.MaintenanceSchedule) error {
	if t.s.failScheduleCreate {
		t.s.failScheduleCreate = false
		return gorm.ErrDuplicatedKey
	}
	if t.s.scheduleFor(item.VehicleID, item.ItemName) != nil {
		return gorm.ErrDuplicatedKey
	}
	t.s.nextScheduleID++
	item.ScheduleID = t.s.nextScheduleID
	copied := *item
	t.s.schedules[item.ScheduleID] = &copied
	t.s.scheduleCreates++
	return nil
}

func (t *memTx) SaveScheduleItem(item *models.MaintenanceSchedule) error {
	copied := *item
	t.s.schedules[item.ScheduleID] = &copied
	t.s.scheduleSaves++
	return nil
}

func (t *memTx) UnreadNotification(scheduleID int, notifType string) (*models.Notification, error) {
	for _, n := range t.s.notifs {
		if n.ScheduleID != nil && *n.ScheduleID == scheduleID && n.Type == notifType && !n.IsRead {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateNotification(n *models.Notification) error {
	t.s.nextNotifID++
	n.NotificationID = t.s.nextNotifID
	copied := *n
	t.s.notifs[n.NotificationID] = &copied
	t.s.notifCreates++
	return nil
}

func (t *memTx) MarkNotificationsRead(scheduleID int, types ...string) error {
	for _, n := range t.s.notifs {
		if n.ScheduleID == nil || *n.ScheduleID != scheduleID || n.IsRead {
			continue
		}
		for _, typ := range types {
			if n.Type == typ {
				n.IsRead = true
				break
			}
		}
	}
	return nil
}

func (t *memTx) DeleteNotificationsBySchedule(scheduleID int) error {
	for id, n := range t.s.notifs {
		if n.ScheduleID != nil && *n.ScheduleID == scheduleID {
			delete(t.s.notifs, id)
		}
	}
	return nil
}

func (t *memTx) CreateTrip(trip *models.Trip) error {
	t.s.nextTripID++
	trip.TripID = t.s.nextTripID
	copied := *trip
	t.s.trips = append(t.s.trips, &copied)
	return nil
}
