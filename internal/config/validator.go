package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredDBEnvVars lists the environment variables that must be set when
// DB_ENABLED=true
var RequiredDBEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks that the schema version matches expectations and that
// the database variables are present when the database store is enabled
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	if os.Getenv("DB_ENABLED") != "true" {
		return nil
	}

	var missing []string
	for _, envVar := range RequiredDBEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_ENABLED") == "true" && os.Getenv("DB_PASSWORD") == "postgres" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the default value - please use a secure password")
	}

	if os.Getenv("GENAI_API_KEY") == "" {
		warnings = append(warnings, "GENAI_API_KEY is not set - persona messages will use the scripted client")
	}

	return warnings, nil
}
