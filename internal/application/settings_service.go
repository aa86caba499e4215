package application

import (
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// SettingsService expone los parámetros de cumplimiento del tenant
// almacenados en base de datos.
type SettingsService struct {
	repo domain.ComplianceSettingsRepository
}

func NewSettingsService(repo domain.ComplianceSettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) GetSetting(key string) (*domain.ComplianceSetting, error) {
	return s.repo.GetByKey(key)
}

func (s *SettingsService) GetAllSettings() ([]*domain.ComplianceSetting, error) {
	return s.repo.GetAll()
}

func (s *SettingsService) UpdateSetting(key string, value string) error {
	return s.repo.Update(key, value)
}

// SettingOrDefault devuelve el valor almacenado para la clave, o el valor por
// defecto si la clave no existe en base de datos. Permite que el entorno
// arranque el servicio y la tabla lo sobrescriba por tenant.
func (s *SettingsService) SettingOrDefault(key, fallback string) string {
	setting, err := s.repo.GetByKey(key)
	if err != nil || setting == nil || setting.ConfigValue == "" {
		return fallback
	}
	return setting.ConfigValue
}

// TenantDefaults son los valores de arranque de los parámetros operativos,
// tomados de las variables de entorno.
type TenantDefaults struct {
	HotelSireCode string
	HotelCityCode string
	NotifyEmail   string
	TraEnabled    bool
}

// TenantParams resuelve los parámetros operativos del tenant en cada uso.
// La tabla compliance_settings sobrescribe al entorno, así que un cambio vía
// PUT sobre /settings surte efecto en la siguiente solicitud sin reiniciar
// el servidor. Un servicio de settings nil deja fijos los valores de arranque.
type TenantParams struct {
	settings *SettingsService
	defaults TenantDefaults
}

func NewTenantParams(settings *SettingsService, defaults TenantDefaults) *TenantParams {
	return &TenantParams{settings: settings, defaults: defaults}
}

func (p *TenantParams) HotelSireCode() string {
	return p.lookup(domain.SettingHotelSireCode, p.defaults.HotelSireCode)
}

func (p *TenantParams) HotelCityCode() string {
	return p.lookup(domain.SettingHotelCityCode, p.defaults.HotelCityCode)
}

func (p *TenantParams) NotifyEmail() string {
	return p.lookup(domain.SettingNotifyEmail, p.defaults.NotifyEmail)
}

func (p *TenantParams) TraEnabled() bool {
	if v := p.lookup(domain.SettingTraEnabled, ""); v != "" {
		return v == "true"
	}
	return p.defaults.TraEnabled
}

func (p *TenantParams) lookup(key, fallback string) string {
	if p.settings == nil {
		return fallback
	}
	return p.settings.SettingOrDefault(key, fallback)
}
