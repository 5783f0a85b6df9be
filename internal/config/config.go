// Package config resolves gate settings from the process environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings of the gate process. Values from the
// environment are defaults; command-line flags override them.
type Config struct {
	// RulesFile is the path of a YAML rule-set layered on top of the
	// builtin catalog. Empty means the builtin catalog alone.
	RulesFile string `envconfig:"RULES_FILE"`

	// AuditLog is the path of the JSON-lines decision log. Empty disables
	// audit logging.
	AuditLog string `envconfig:"AUDIT_LOG"`
}

// FromEnv builds a Config from TOOLFENCE_-prefixed environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("toolfence", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}
