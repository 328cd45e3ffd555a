package models

import "time"

// DefaultWarningThresholdKm applies when a rule row carries no threshold.
const DefaultWarningThresholdKm = 100

// ServiceRule is a catalog entry: a named maintenance item with its
// recommended interval. Rows are curated externally and treated as
// read-only by the scheduler.
type ServiceRule struct {
	RuleID             int       `json:"rule_id" gorm:"primaryKey;autoIncrement;type:INT"`
	ServiceName        string    `json:"service_name" gorm:"type:varchar(100);not null;uniqueIndex:idx_service_rules_name" binding:"required"`
	IntervalKm         int       `json:"interval_km" gorm:"type:INT;not null" binding:"required,gt=0"`
	WarningThresholdKm int       `json:"warning_threshold_km" gorm:"type:INT;default:100" binding:"gte=0"`
	Description        string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ServiceRule) TableName() string {
	return "service_rules"
}

// Valid reports whether the rule is usable by the scheduler. Malformed
// rows are skipped, never fatal for the whole pass.
func (r *ServiceRule) Valid() bool {
	return r.ServiceName != "" && r.IntervalKm > 0 && r.WarningThresholdKm >= 0
}

// Threshold returns the effective warning threshold in km.
func (r *ServiceRule) Threshold() int {
	if r.WarningThresholdKm <= 0 {
		return DefaultWarningThresholdKm
	}
	return r.WarningThresholdKm
}
