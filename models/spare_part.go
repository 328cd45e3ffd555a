package models

import "time"

// SparePart maps a vehicle_code and service name to the concrete part a
// user should buy. Curated data, read-only at runtime.
type SparePart struct {
	PartID      int       `json:"part_id" gorm:"primaryKey;autoIncrement;type:INT"`
	VehicleCode string    `json:"vehicle_code" gorm:"type:varchar(50);not null;index"`
	ServiceName string    `json:"service_name" gorm:"type:varchar(100);not null"`
	PartName    string    `json:"part_name" gorm:"type:varchar(100);not null"`
	PartCode    string    `json:"part_code" gorm:"type:varchar(100);not null"`
	PurchaseURL string    `json:"purchase_url,omitempty" gorm:"type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (SparePart) TableName() string {
	return "spare_parts"
}
