package models

import "time"

// Trip records one odometer-driven ride. Recording a trip is one of the
// triggers that bumps the vehicle odometer and kicks off a recompute.
type Trip struct {
	TripID         int        `json:"trip_id" gorm:"primaryKey;autoIncrement;type:INT"`
	VehicleID      int        `json:"vehicle_id" gorm:"index;not null;type:INT"`
	DistanceKm     float64    `json:"distance_km" gorm:"type:decimal(10,2);not null" binding:"required,gt=0"`
	StartTime      *time.Time `json:"start_time,omitempty" gorm:"type:datetime"`
	EndTime        time.Time  `json:"end_time" gorm:"type:datetime"`
	StartLatitude  *float64   `json:"start_latitude,omitempty" gorm:"type:decimal(10,8)"`
	StartLongitude *float64   `json:"start_longitude,omitempty" gorm:"type:decimal(11,8)"`
	EndLatitude    *float64   `json:"end_latitude,omitempty" gorm:"type:decimal(10,8)"`
	EndLongitude   *float64   `json:"end_longitude,omitempty" gorm:"type:decimal(11,8)"`
	StartAddress   string     `json:"start_address,omitempty" gorm:"type:text"`
	EndAddress     string     `json:"end_address,omitempty" gorm:"type:text"`
	Vehicle        Vehicle    `json:"-" gorm:"foreignKey:VehicleID;references:VehicleID"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}
