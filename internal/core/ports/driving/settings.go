package driving

import "github.com/custodia-labs/recordbook/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by its config key (e.g. "search.limit").
	Set(key, value string) error
}
