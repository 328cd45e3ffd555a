package models

import "time"

// Notification types.
const (
	NotifServiceReminder = "SERVICE_REMINDER"
	NotifOverdueAlert    = "OVERDUE_ALERT"
	NotifPromotion       = "PROMOTION"
	NotifInfo            = "INFO"
)

// Notification weakly references its vehicle and schedule: the back
// references exist for display and filtering, never as schedule state.
type Notification struct {
	NotificationID int       `json:"notification_id" gorm:"primaryKey;autoIncrement;type:INT"`
	UserID         int       `json:"user_id" gorm:"index;not null;type:INT"`
	VehicleID      *int      `json:"vehicle_id,omitempty" gorm:"type:INT"`
	ScheduleID     *int      `json:"schedule_id,omitempty" gorm:"index;type:INT"`
	Title          string    `json:"title" gorm:"type:varchar(255);not null"`
	Message        string    `json:"message" gorm:"type:text;not null"`
	Type           string    `json:"type" gorm:"type:enum('SERVICE_REMINDER','OVERDUE_ALERT','PROMOTION','INFO');default:'INFO'"`
	IsRead         bool      `json:"is_read" gorm:"type:tinyint(1);default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
