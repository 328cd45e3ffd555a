package models

import "time"

// ServiceHistory is append-only: entries are never mutated once written.
// The scheduler treats the entry with the highest (service_date,
// odometer_at_service) pair as authoritative for a service type.
type ServiceHistory struct {
	HistoryID         int       `json:"history_id" gorm:"primaryKey;autoIncrement;type:INT"`
	VehicleID         int       `json:"vehicle_id" gorm:"index;not null;type:INT"`
	ServiceDate       time.Time `json:"service_date" gorm:"type:date;not null"`
	OdometerAtService int       `json:"odometer_at_service" gorm:"type:INT;not null"`
	ServiceType       string    `json:"service_type" gorm:"type:varchar(100);not null;index"`
	Description       string    `json:"description,omitempty" gorm:"type:text"`
	WorkshopName      string    `json:"workshop_name,omitempty" gorm:"type:varchar(100)"`
	Cost              *float64  `json:"cost,omitempty" gorm:"type:decimal(12,2)"`
	Vehicle           Vehicle   `json:"-" gorm:"foreignKey:VehicleID;references:VehicleID"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ServiceHistory) TableName() string {
	return "service_history"
}

type ServiceHistoryResponse struct {
	HistoryID         int      `json:"history_id"`
	VehicleID         int      `json:"vehicle_id"`
	ServiceDate       string   `json:"service_date"`
	OdometerAtService int      `json:"odometer_at_service"`
	ServiceType       string   `json:"service_type"`
	Description       string   `json:"description,omitempty"`
	WorkshopName      string   `json:"workshop_name,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
}

func (h *ServiceHistory) ToResponse() ServiceHistoryResponse {
	return ServiceHistoryResponse{
		HistoryID:         h.HistoryID,
		VehicleID:         h.VehicleID,
		ServiceDate:       h.ServiceDate.Format("2006-01-02"),
		OdometerAtService: h.OdometerAtService,
		ServiceType:       h.ServiceType,
		Description:       h.Description,
		WorkshopName:      h.WorkshopName,
		Cost:              h.Cost,
	}
}
