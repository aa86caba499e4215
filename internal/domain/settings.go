package domain

import "time"

// ComplianceSetting es un parámetro de cumplimiento del tenant almacenado en
// base de datos (código SIRE del hotel, código DIVIPOLA de la ciudad, correo
// de notificación). Sobrescribe el valor por defecto de las variables de entorno.
type ComplianceSetting struct {
	ID          int       `json:"id"`
	ConfigKey   string    `json:"config_key"`
	ConfigValue string    `json:"config_value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Claves de configuración de cumplimiento conocidas.
const (
	SettingHotelSireCode = "hotel_sire_code"
	SettingHotelCityCode = "hotel_city_code"
	SettingNotifyEmail   = "compliance_notify_email"
	SettingTraEnabled    = "tra_enabled"
)

type ComplianceSettingsRepository interface {
	GetByKey(key string) (*ComplianceSetting, error)
	Update(key string, value string) error
	GetAll() ([]*ComplianceSetting, error)
}
