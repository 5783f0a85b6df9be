// Package hooks evaluates tool invocations before execution and decides
// whether they may proceed.
package hooks

// Rule represents one check applied to a tool invocation.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Description returns a human-readable description of what this rule does.
	Description() string

	// Evaluate checks whether the tool invocation should be allowed.
	// Returns a RuleResult indicating whether to allow or block it. An
	// error means the rule could not be applied and is not a verdict.
	Evaluate(input *ToolInput) (*RuleResult, error)
}
