package model

import "time"

// Well-known setting keys referenced in code. The settings table also holds
// free-form keys edited through the back office (contact info, social links,
// cafeteria hours and message).
const (
	SettingMaintenanceMode      = "maintenance_mode"
	SettingOrdersEnabled        = "orders_enabled"
	SettingRegistrationsEnabled = "registrations_enabled"
	SettingRegistrationOpen     = "registration_open"
	SettingSiteName             = "site_name"
	SettingContactEmail         = "contact_email"
	SettingCafeteriaHours       = "cafeteria_hours"
	SettingCafeteriaMessage     = "cafeteria_message"
)

// Setting maps to the settings table: a flat key/value configuration store.
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"           json:"key"`
	Value     string    `gorm:"type:text;not null;default:''"          json:"value"`
	Label     string    `gorm:"type:varchar(200);not null;default:''"  json:"label"`
	Group     string    `gorm:"column:group;type:varchar(50);not null;default:'general'" json:"group"`
	Type      string    `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"updated_at"`
}

// TableName sets the table name.
func (Setting) TableName() string { return "settings" }
