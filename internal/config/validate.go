package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Dashboard.RecentNotesLimit <= 0 {
		return fmt.Errorf("dashboard.recent_notes_limit must be > 0 (got %d)", c.Dashboard.RecentNotesLimit)
	}
	if c.Dashboard.MaxCustomMonths <= 0 {
		return fmt.Errorf("dashboard.max_custom_months must be > 0 (got %d)", c.Dashboard.MaxCustomMonths)
	}
	if c.Dashboard.ClientPageSize <= 0 {
		return fmt.Errorf("dashboard.client_page_size must be > 0 (got %d)", c.Dashboard.ClientPageSize)
	}

	if c.Archive.RetentionDays <= 0 {
		return fmt.Errorf("archive.retention_days must be > 0 (got %d)", c.Archive.RetentionDays)
	}

	return nil
}
