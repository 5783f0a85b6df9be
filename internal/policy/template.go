package policy

import _ "embed"

//go:embed starter.yaml
var starterRuleSet []byte

// StarterRuleSet returns the commented starter rule-set file, suitable for
// writing as a new configuration. It parses as a valid, empty rule set.
func StarterRuleSet() []byte {
	return append([]byte(nil), starterRuleSet...)
}
