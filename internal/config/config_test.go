package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults to empty paths", func(t *testing.T) {
		t.Setenv("TOOLFENCE_RULES_FILE", "")
		t.Setenv("TOOLFENCE_AUDIT_LOG", "")

		cfg, err := FromEnv()

		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("reads prefixed variables", func(t *testing.T) {
		t.Setenv("TOOLFENCE_RULES_FILE", "/etc/toolfence/rules.yaml")
		t.Setenv("TOOLFENCE_AUDIT_LOG", "/var/lib/toolfence/audit.log")

		cfg, err := FromEnv()

		require.NoError(t, err)
		assert.Equal(t, Config{
			RulesFile: "/etc/toolfence/rules.yaml",
			AuditLog:  "/var/lib/toolfence/audit.log",
		}, cfg)
	})
}
