package models

import "time"

// Schedule item statuses. PENDING, UPCOMING and OVERDUE are active;
// COMPLETED and SKIPPED are terminal until the next cycle supersedes them.
const (
	StatusPending   = "PENDING"
	StatusUpcoming  = "UPCOMING"
	StatusOverdue   = "OVERDUE"
	StatusCompleted = "COMPLETED"
	StatusSkipped   = "SKIPPED"
)

// ActiveStatuses in ascending urgency order.
var ActiveStatuses = []string{StatusPending, StatusUpcoming, StatusOverdue}

// MaintenanceSchedule is the live tracked instance of a service rule for
// one vehicle. The unique index on (vehicle_id, item_name) is what makes
// the scheduler's find-or-create race-free under concurrent triggers.
type MaintenanceSchedule struct {
	ScheduleID            int        `json:"schedule_id" gorm:"primaryKey;autoIncrement;type:INT"`
	VehicleID             int        `json:"vehicle_id" gorm:"not null;type:INT;uniqueIndex:idx_schedule_vehicle_item"`
	ItemName              string     `json:"item_name" gorm:"type:varchar(100);not null;uniqueIndex:idx_schedule_vehicle_item"`
	Description           string     `json:"description,omitempty" gorm:"type:text"`
	NextDueOdometer       *int       `json:"next_due_odometer,omitempty" gorm:"type:INT"`
	NextDueDate           *time.Time `json:"next_due_date,omitempty" gorm:"type:date"`
	RecommendedIntervalKm int        `json:"recommended_interval_km" gorm:"type:INT"`
	Status                string     `json:"status" gorm:"type:enum('PENDING','UPCOMING','OVERDUE','COMPLETED','SKIPPED');default:'PENDING'"`
	LastPerformedDate     *time.Time `json:"last_performed_date,omitempty" gorm:"type:date"`
	LastPerformedOdometer *int       `json:"last_performed_odometer,omitempty" gorm:"type:INT"`
	Vehicle               Vehicle    `json:"-" gorm:"foreignKey:VehicleID;references:VehicleID"`
	CreatedAt             time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt             time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (MaintenanceSchedule) TableName() string {
	return "maintenance_schedules"
}

// IsActive reports whether the item still tracks an unresolved concern.
func (m *MaintenanceSchedule) IsActive() bool {
	switch m.Status {
	case StatusPending, StatusUpcoming, StatusOverdue:
		return true
	}
	return false
}

// StatusRank orders active statuses for the monotonicity property:
// PENDING < UPCOMING < OVERDUE. Terminal states rank -1.
func StatusRank(status string) int {
	switch status {
	case StatusPending:
		return 0
	case StatusUpcoming:
		return 1
	case StatusOverdue:
		return 2
	}
	return -1
}

type MaintenanceScheduleResponse struct {
	ScheduleID            int    `json:"schedule_id"`
	VehicleID             int    `json:"vehicle_id"`
	ItemName              string `json:"item_name"`
	Description           string `json:"description,omitempty"`
	NextDueOdometer       *int   `json:"next_due_odometer"`
	NextDueDate           string `json:"next_due_date,omitempty"`
	RecommendedIntervalKm int    `json:"recommended_interval_km"`
	Status                string `json:"status"`
	LastPerformedDate     string `json:"last_performed_date,omitempty"`
	LastPerformedOdometer *int   `json:"last_performed_odometer,omitempty"`
}

func (m *MaintenanceSchedule) ToResponse() MaintenanceScheduleResponse {
	resp := MaintenanceScheduleResponse{
		ScheduleID:            m.ScheduleID,
		VehicleID:             m.VehicleID,
		ItemName:              m.ItemName,
		Description:           m.Description,
		NextDueOdometer:       m.NextDueOdometer,
		RecommendedIntervalKm: m.RecommendedIntervalKm,
		Status:                m.Status,
		LastPerformedOdometer: m.LastPerformedOdometer,
	}
	if m.NextDueDate != nil {
		resp.NextDueDate = m.NextDueDate.Format("2006-01-02")
	}
	if m.LastPerformedDate != nil {
		resp.LastPerformedDate = m.LastPerformedDate.Format("2006-01-02")
	}
	return resp
}
