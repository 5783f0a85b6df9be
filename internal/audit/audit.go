// Package audit appends gate decisions to a JSON-lines log file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/oklog/ulid/v2"
)

// Decision is the outcome the gate reached for one invocation.
type Decision string

const (
	// DecisionAllow means the invocation was allowed to proceed.
	DecisionAllow Decision = "allow"

	// DecisionDeny means the invocation was blocked by a rule.
	DecisionDeny Decision = "deny"

	// DecisionError means evaluation failed and the invocation was allowed
	// by the fail-open policy.
	DecisionError Decision = "error"
)

// Entry is one recorded decision.
type Entry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Tool     string    `json:"tool"`
	Decision Decision  `json:"decision"`
	Rule     string    `json:"rule,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// NewEntry creates an entry for a decision. ID and Time are assigned by the
// recorder when the entry is recorded.
func NewEntry(tool string, decision Decision, rule, reason string) Entry {
	return Entry{
		Tool:     tool,
		Decision: decision,
		Rule:     rule,
		Reason:   reason,
	}
}

// Recorder records gate decisions.
type Recorder interface {
	Record(entry Entry) error
}

// TimeProvider provides the current time (allows mocking in tests)
type TimeProvider func() time.Time

// FileRecorder appends entries to a JSON-lines file. Appends are guarded by
// a sibling lock file so concurrent gate processes never interleave lines.
type FileRecorder struct {
	path         string
	timeProvider TimeProvider
}

// NewFileRecorder creates a recorder that appends to the file at path. The
// file and its directory are created on first use.
func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{
		path:         path,
		timeProvider: time.Now,
	}
}

// SetTimeProvider sets a custom time provider for testing
func (r *FileRecorder) SetTimeProvider(tp TimeProvider) {
	r.timeProvider = tp
}

// Record appends one entry to the log. A zero entry time and an empty ID
// are filled in; entry IDs are ULIDs, so entries recorded by one process
// sort in record order.
func (r *FileRecorder) Record(entry Entry) error {
	now := r.timeProvider().UTC()
	if entry.Time.IsZero() {
		entry.Time = now
	}
	if entry.ID == "" {
		entry.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}

	fileLock := flock.New(r.path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire audit log lock: %w", err)
	}
	defer fileLock.Unlock()

	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}

// ReadLog reads every entry from a JSON-lines audit log.
func ReadLog(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse audit entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return entries, nil
}
