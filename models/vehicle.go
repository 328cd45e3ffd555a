package models

import "time"

// Vehicle current_odometer is the single source of truth the scheduler
// compares rule targets against. It only moves forward under normal
// operation (trips and service entries never lower it).
type Vehicle struct {
	VehicleID          int        `json:"vehicle_id" gorm:"primaryKey;autoIncrement;type:INT"`
	UserID             int        `json:"user_id" gorm:"index;not null;type:INT"`
	PlateNumber        string     `json:"plate_number" gorm:"type:varchar(20);not null;uniqueIndex:idx_vehicles_plate" binding:"required"`
	Brand              string     `json:"brand" gorm:"type:varchar(100);not null" binding:"required"`
	Model              string     `json:"model" gorm:"type:varchar(100);not null" binding:"required"`
	Year               int        `json:"year,omitempty" gorm:"type:INT"`
	VehicleCode        string     `json:"vehicle_code,omitempty" gorm:"type:varchar(50)"`
	CurrentOdometer    int        `json:"current_odometer" gorm:"type:INT;default:0"`
	LastOdometerUpdate *time.Time `json:"last_odometer_update,omitempty" gorm:"type:datetime"`
	LastServiceDate    *time.Time `json:"last_service_date,omitempty" gorm:"type:date"`
	PhotoURL           string     `json:"photo_url,omitempty" gorm:"type:varchar(255)"`
	LogoURL            string     `json:"logo_url,omitempty" gorm:"type:varchar(255)"`
	User               User       `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

type VehicleResponse struct {
	VehicleID          int    `json:"vehicle_id"`
	PlateNumber        string `json:"plate_number"`
	Brand              string `json:"brand"`
	Model              string `json:"model"`
	Year               int    `json:"year,omitempty"`
	VehicleCode        string `json:"vehicle_code,omitempty"`
	CurrentOdometer    int    `json:"current_odometer"`
	LastOdometerUpdate string `json:"last_odometer_update,omitempty"`
	LastServiceDate    string `json:"last_service_date,omitempty"`
	PhotoURL           string `json:"photo_url,omitempty"`
	LogoURL            string `json:"logo_url,omitempty"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	resp := VehicleResponse{
		VehicleID:       v.VehicleID,
		PlateNumber:     v.PlateNumber,
		Brand:           v.Brand,
		Model:           v.Model,
		Year:            v.Year,
		VehicleCode:     v.VehicleCode,
		CurrentOdometer: v.CurrentOdometer,
		PhotoURL:        v.PhotoURL,
		LogoURL:         v.LogoURL,
	}
	if v.LastOdometerUpdate != nil {
		resp.LastOdometerUpdate = v.LastOdometerUpdate.Format("2006-01-02 15:04:05")
	}
	if v.LastServiceDate != nil {
		resp.LastServiceDate = v.LastServiceDate.Format("2006-01-02")
	}
	return resp
}
