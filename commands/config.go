package commands

import (
	"fmt"
	"os"
	"strings"
)

// Config is the runtime configuration, assembled once at startup and passed by
// parameter into the components that need it. The values are opaque inputs - the
// service account key is the JSON key material itself, as provisioned into the
// GCP_SA_KEY secret of a scheduled workflow.
type Config struct {
	Key          []byte
	SourceFolder string
	DestFolder   string
	Password     string
	RelayURL     string
	RelayAPIKey  string
}

// ConfigFromEnv reads the runtime configuration from the environment.
func ConfigFromEnv() Config {
	return Config{
		Key:          []byte(os.Getenv("GCP_SA_KEY")),
		SourceFolder: os.Getenv("INPUT_FOLDER_ID"),
		DestFolder:   os.Getenv("OUTPUT_FOLDER_ID"),
		Password:     os.Getenv("EXCEL_PASSWORD_1"),
		RelayURL:     os.Getenv("RELAY_URL"),
		RelayAPIKey:  os.Getenv("RELAY_API_KEY"),
	}
}

// Validate checks that each of the named configuration values is present and reports
// every missing value in a single aggregated error.
func (c Config) Validate(required ...string) error {
	missing := []string{}

	for _, v := range required {
		switch v {
		case "GCP_SA_KEY":
			if len(c.Key) == 0 {
				missing = append(missing, v)
			}

		case "INPUT_FOLDER_ID":
			if c.SourceFolder == "" {
				missing = append(missing, v)
			}

		case "OUTPUT_FOLDER_ID":
			if c.DestFolder == "" {
				missing = append(missing, v)
			}

		case "EXCEL_PASSWORD_1":
			if c.Password == "" {
				missing = append(missing, v)
			}

		case "RELAY_URL":
			if c.RelayURL == "" {
				missing = append(missing, v)
			}

		case "RELAY_API_KEY":
			if c.RelayAPIKey == "" {
				missing = append(missing, v)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
