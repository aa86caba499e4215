package repository

import (
	"database/sql"
	"fmt"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository crea una nueva instancia del repositorio de
// parámetros de cumplimiento del tenant
func NewSettingsRepository(db *sql.DB) domain.ComplianceSettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByKey(key string) (*domain.ComplianceSetting, error) {
	query := `SELECT id, config_key, config_value, description, updated_at
			  FROM compliance_settings
			  WHERE config_key = $1`

	var setting domain.ComplianceSetting
	err := r.db.QueryRow(query, key).Scan(
		&setting.ID,
		&setting.ConfigKey,
		&setting.ConfigValue,
		&setting.Description,
		&setting.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("parámetro de cumplimiento no encontrado: %s", key)
		}
		return nil, err
	}

	return &setting, nil
}

func (r *settingsRepository) Update(key string, value string) error {
	query := `UPDATE compliance_settings
			  SET config_value = $1, updated_at = NOW()
			  WHERE config_key = $2`

	result, err := r.db.Exec(query, value, key)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no existe el parámetro de cumplimiento: %s", key)
	}

	return nil
}

func (r *settingsRepository) GetAll() ([]*domain.ComplianceSetting, error) {
	query := `SELECT id, config_key, config_value, description, updated_at
	          FROM compliance_settings
	          ORDER BY id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*domain.ComplianceSetting
	for rows.Next() {
		var s domain.ComplianceSetting
		if err := rows.Scan(&s.ID, &s.ConfigKey, &s.ConfigValue, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}

	return settings, rows.Err()
}
