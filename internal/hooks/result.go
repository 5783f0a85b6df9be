package hooks

// RuleResult represents the outcome of evaluating a rule.
type RuleResult struct {
	// Allowed indicates whether the tool invocation may proceed.
	Allowed bool

	// Message explains the decision. For blocked results it states what
	// matched and is shown to the caller verbatim.
	Message string

	// RuleName identifies which rule produced this result.
	RuleName string
}

// NewAllowedResult creates a result that allows the tool invocation.
func NewAllowedResult() *RuleResult {
	return &RuleResult{
		Allowed:  true,
		Message:  "",
		RuleName: "",
	}
}

// NewBlockedResult creates a result that blocks the tool invocation.
func NewBlockedResult(ruleName, message string) *RuleResult {
	return &RuleResult{
		Allowed:  false,
		Message:  message,
		RuleName: ruleName,
	}
}
