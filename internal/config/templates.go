package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Configuration

[journal]
# SQLite database for saved confirmations and reviews
database_path = ""
# Save parsed confirmations automatically
save_parsed = false
# Shares per option contract when the confirmation does not say
default_contract_size = 100

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the console
console = true
# Log to a rotating file under the config directory
file = true
`

// createTemplateConfig writes a commented starter config.toml so a first run
// leaves something editable behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
