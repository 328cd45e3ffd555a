package models

import "time"

// VehicleCoding maps a brand/model/year range to the internal vehicle_code
// used for spare part lookups.
type VehicleCoding struct {
	CodingID    int       `json:"coding_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Brand       string    `json:"brand" gorm:"type:varchar(100);not null"`
	Model       string    `json:"model" gorm:"type:varchar(100);not null"`
	YearStart   int       `json:"year_start" gorm:"type:INT;not null"`
	YearEnd     int       `json:"year_end" gorm:"type:INT;not null"`
	VehicleCode string    `json:"vehicle_code" gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (VehicleCoding) TableName() string {
	return "vehicle_codings"
}
