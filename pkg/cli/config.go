package cli

import (
	"fmt"
	"strings"

	"dropflow-go/pkg/config"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		fmt.Fprintf(a.out, "Error marshaling config: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, string(data))
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "cli.base_url=http://localhost:8080")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	if err := a.cfg.Set(parts[0], parts[1]); err != nil {
		return err
	}

	return config.Save(a.cfg)
}
