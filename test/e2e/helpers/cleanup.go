package helpers

import (
	"os"
	"testing"
)

// CleanupDir safely removes a directory
func CleanupDir(t *testing.T, dir string) {
	t.Helper()

	if err := os.RemoveAll(dir); err != nil {
		t.Errorf("failed to cleanup directory %s: %v", dir, err)
	}
}

// KeepOnFailure runs cleanup only when the test passed, so that audit logs
// and rule-set files written by a failing run stay around for debugging.
func KeepOnFailure(t *testing.T, cleanup func()) {
	t.Helper()

	t.Cleanup(func() {
		if !t.Failed() {
			cleanup()
		}
	})
}
