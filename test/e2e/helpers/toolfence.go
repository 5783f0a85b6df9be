package helpers

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// RequireToolfence skips the test if toolfence is not available in PATH
func RequireToolfence(t *testing.T) {
	t.Helper()

	if !IsCLIAvailable() {
		t.Skip("toolfence not found in PATH")
	}
}

// IsCLIAvailable checks if toolfence is available without skipping
func IsCLIAvailable() bool {
	_, err := exec.LookPath("toolfence")
	return err == nil
}

// GateResult captures one run of `toolfence pre-tool-use`.
type GateResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunPreToolUse feeds one tool invocation to `toolfence pre-tool-use` and
// returns its streams and exit code. The gate's environment variables are
// cleared so the run only sees the given flags.
func RunPreToolUse(t *testing.T, input string, args ...string) GateResult {
	t.Helper()

	cmdArgs := append([]string{"pre-tool-use"}, args...)
	cmd := exec.Command("toolfence", cmdArgs...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Env = append(os.Environ(), "TOOLFENCE_RULES_FILE=", "TOOLFENCE_AUDIT_LOG=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := GateResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("failed to run toolfence: %v", err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result
}
