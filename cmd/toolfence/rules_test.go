package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolfence/toolfence/internal/policy"
)

func TestNewRulesCmd(t *testing.T) {
	cmd := newRulesCmd()

	assert.Equal(t, "rules", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	commandNames := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		commandNames = append(commandNames, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "init", "validate"}, commandNames)
}

func TestRulesListCmd_Execute(t *testing.T) {
	t.Setenv("TOOLFENCE_RULES_FILE", "")

	t.Run("prints the builtin catalog", func(t *testing.T) {
		cmd := newRulesListCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)

		require.NoError(t, cmd.Execute())

		output := buf.String()
		assert.Contains(t, output, "commands/exact:")
		assert.Contains(t, output, "commands/patterns:")
		assert.Contains(t, output, "paths/exact:")
		assert.Contains(t, output, "paths/patterns:")
		assert.Contains(t, output, "  rm -rf /\n")
		assert.Contains(t, output, `  curl.*\|\s*(sh|bash|zsh)`)
		assert.Contains(t, output, "  /etc/shadow\n")
		assert.Contains(t, output, `  .*/\.ssh/.*`)
	})

	t.Run("layers a rule-set file on top of the builtin catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		data := "version: 1\ncommands:\n  exact:\n    - \"shutdown -h now\"\npaths:\n  patterns:\n    - '.*\\.kdbx$'\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cmd := newRulesListCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--rules-file", path})

		require.NoError(t, cmd.Execute())

		output := buf.String()
		assert.Contains(t, output, "  rm -rf /\n")
		assert.Contains(t, output, "  shutdown -h now\n")
		assert.Contains(t, output, `  .*\.kdbx$`)
	})

	t.Run("fails when the rules file cannot be loaded", func(t *testing.T) {
		cmd := newRulesListCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--rules-file", filepath.Join(t.TempDir(), "missing.yaml")})

		err := cmd.Execute()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load rules file")
	})
}

func TestRulesInitCmd_Execute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ruleSetFileName)

	t.Run("writes a starter rule-set file", func(t *testing.T) {
		cmd := newRulesInitCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--output-dir", dir})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "Created "+path)

		ruleSet, err := policy.LoadRuleSet(path)
		require.NoError(t, err)
		assert.Equal(t, 0, ruleSet.Len())
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		cmd := newRulesInitCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--output-dir", dir})

		err := cmd.Execute()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("overwrites an existing file with --force", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("version: 1\ncommands:\n  exact:\n    - reboot\n"), 0o644))

		cmd := newRulesInitCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--output-dir", dir, "--force"})

		require.NoError(t, cmd.Execute())

		ruleSet, err := policy.LoadRuleSet(path)
		require.NoError(t, err)
		assert.Equal(t, 0, ruleSet.Len(), "the starter file should have replaced the old content")
	})

	t.Run("creates the output directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "config", "toolfence")

		cmd := newRulesInitCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--output-dir", nested})

		require.NoError(t, cmd.Execute())
		assert.FileExists(t, filepath.Join(nested, ruleSetFileName))
	})
}

func TestRulesValidateCmd_Execute(t *testing.T) {
	t.Run("accepts a valid rule-set file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		data := "version: 1\ncommands:\n  exact:\n    - reboot\n  patterns:\n    - 'mkfs\\..*'\npaths:\n  exact:\n    - /etc/fstab\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cmd := newRulesValidateCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{path})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), path+" is valid (3 rules)")
	})

	t.Run("reports every invalid rule", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		data := "version: 1\ncommands:\n  patterns:\n    - '['\npaths:\n  exact:\n    - '  '\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cmd := newRulesValidateCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{path})

		err := cmd.Execute()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "commands.patterns[0]")
		assert.Contains(t, err.Error(), "invalid pattern")
		assert.Contains(t, err.Error(), "paths.exact[0]")
		assert.Contains(t, err.Error(), "rule is blank")
	})

	t.Run("fails when the file does not exist", func(t *testing.T) {
		cmd := newRulesValidateCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})

		err := cmd.Execute()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read rule-set")
	})
}
