package driven

import "github.com/MdHasib01/commserver/internal/core/domain"

// SettingsStore loads and saves application settings.
// Backed by a TOML file in the user's config directory.
type SettingsStore interface {
	// Load reads settings, applying defaults for missing values.
	// A missing file yields defaults, not an error.
	Load() (domain.Settings, error)

	// Save writes settings to durable storage.
	Save(settings domain.Settings) error
}
