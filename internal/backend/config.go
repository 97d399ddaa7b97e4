package backend

import (
	"fmt"

	"github.com/sandeepbabloo/loan-primer/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.Backend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.Backend)
	}

	return Config{
		Type: backendType,

		InputPath:  appConfig.InputPath,
		OutputPath: appConfig.OutputPath,

		SpreadsheetID:       appConfig.SpreadsheetID,
		OutputSpreadsheetID: appConfig.OutputSpreadsheetID,
	}, nil
}
