package service

import (
	"database/sql"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/database"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db          *sql.DB
	settingRepo *repository.SettingRepository
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, settingRepo *repository.SettingRepository) *SystemService {
	return &SystemService{
		db:          db,
		settingRepo: settingRepo,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// GetSetting reads a stored setting, falling back to the default when unset.
func (s *SystemService) GetSetting(key, defaultValue string) (string, error) {
	return s.settingRepo.Get(key, defaultValue)
}

// GetSettings reads every known setting, applying the caller's default for
// each key that has no stored value.
func (s *SystemService) GetSettings(defaults map[string]string) (map[string]string, error) {
	settings := make(map[string]string, len(defaults))
	for key, def := range defaults {
		value, err := s.settingRepo.Get(key, def)
		if err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, nil
}

// UpdateSettings stores the given values. Callers validate keys first; this
// writes each pair as-is.
func (s *SystemService) UpdateSettings(values map[string]string) error {
	for key, value := range values {
		if err := s.settingRepo.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
