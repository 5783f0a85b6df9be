package hooks

import (
	"fmt"

	"github.com/toolfence/toolfence/internal/policy"
)

// dangerousCommandRule blocks shell commands matching the dangerous-command
// catalog.
type dangerousCommandRule struct {
	catalog *policy.Catalog
}

// NewDangerousCommandRule creates a rule that blocks commands matching the
// catalog's dangerous-command rules.
func NewDangerousCommandRule(catalog *policy.Catalog) Rule {
	return &dangerousCommandRule{
		catalog: catalog,
	}
}

// Name returns the unique identifier for this rule.
func (r *dangerousCommandRule) Name() string {
	return "dangerous-command"
}

// Description returns a human-readable description of what this rule does.
func (r *dangerousCommandRule) Description() string {
	return "Blocks shell commands matching known destructive or escalation patterns"
}

// Evaluate checks the command of an execution-type invocation against the
// catalog. Invocations of any other kind are allowed without inspection.
func (r *dangerousCommandRule) Evaluate(input *ToolInput) (*RuleResult, error) {
	if input.Kind() != KindExecute {
		return NewAllowedResult(), nil
	}

	command, err := input.StringParam("command")
	if err != nil {
		return nil, err
	}

	match, ok := r.catalog.CheckCommand(command)
	if !ok {
		return NewAllowedResult(), nil
	}

	return NewBlockedResult(r.Name(), commandMatchMessage(match)), nil
}

func commandMatchMessage(match policy.Match) string {
	if match.Source == policy.SourceRegex {
		return fmt.Sprintf("Dangerous command pattern detected: %s", match.Rule)
	}
	return fmt.Sprintf("Dangerous command detected: %s", match.Rule)
}
