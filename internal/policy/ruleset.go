package policy

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ruleSetVersion is the only schema version this build understands.
const ruleSetVersion = 1

// RuleSet is a user-supplied set of rules layered on top of the builtin
// catalog. Rules added here never shadow builtin rules: the builtin tiers
// are always checked first.
type RuleSet struct {
	Version  int       `yaml:"version"`
	Commands RuleGroup `yaml:"commands"`
	Paths    RuleGroup `yaml:"paths"`
}

// RuleGroup holds the two tiers of one rule family.
type RuleGroup struct {
	Exact    []string `yaml:"exact"`
	Patterns []string `yaml:"patterns"`
}

// Len returns the number of rules in the group.
func (g RuleGroup) Len() int {
	return len(g.Exact) + len(g.Patterns)
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return rs.Commands.Len() + rs.Paths.Len()
}

// LoadRuleSet reads and validates a rule-set file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule-set: %w", err)
	}

	ruleSet, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ruleSet, nil
}

// ParseRuleSet decodes and validates rule-set YAML.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var ruleSet RuleSet
	if err := yaml.Unmarshal(data, &ruleSet); err != nil {
		return nil, fmt.Errorf("failed to parse rule-set YAML: %w", err)
	}

	if err := ruleSet.Validate(); err != nil {
		return nil, err
	}
	return &ruleSet, nil
}

// Validate checks the schema version and every rule in the set. All invalid
// rules are reported, not just the first.
func (rs *RuleSet) Validate() error {
	var errs []error

	if rs.Version != ruleSetVersion {
		errs = append(errs, fmt.Errorf("unsupported rule-set version %d (want %d)", rs.Version, ruleSetVersion))
	}

	errs = append(errs, validateGroup("commands", rs.Commands)...)
	errs = append(errs, validateGroup("paths", rs.Paths)...)

	return errors.Join(errs...)
}

func validateGroup(family string, group RuleGroup) []error {
	var errs []error

	for i, rule := range group.Exact {
		if err := validateRuleText(rule); err != nil {
			errs = append(errs, fmt.Errorf("%s.exact[%d]: %w", family, i, err))
		}
	}

	for i, pattern := range group.Patterns {
		if err := validateRuleText(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%s.patterns[%d]: %w", family, i, err))
			continue
		}
		if _, err := compilePatterns([]string{pattern}); err != nil {
			errs = append(errs, fmt.Errorf("%s.patterns[%d]: %w", family, i, err))
		}
	}

	return errs
}

// validateRuleText rejects rules that could never match meaningfully or that
// would corrupt reporting. A blank exact rule would match every subject.
func validateRuleText(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return fmt.Errorf("rule is blank")
	}
	for _, r := range rule {
		if unicode.IsControl(r) {
			return fmt.Errorf("rule %q contains a control character", rule)
		}
	}
	return nil
}

// Extend returns a new catalog containing the receiver's rules followed by
// the rule set's. The receiver is not modified.
func (c *Catalog) Extend(ruleSet *RuleSet) (*Catalog, error) {
	if ruleSet == nil {
		return c, nil
	}

	extended, err := newCatalog(
		concatRules(c.commandExact, ruleSet.Commands.Exact),
		concatRules(patternSources(c.commandPatterns), ruleSet.Commands.Patterns),
		concatRules(c.pathExact, ruleSet.Paths.Exact),
		concatRules(patternSources(c.pathPatterns), ruleSet.Paths.Patterns),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extend catalog: %w", err)
	}
	return extended, nil
}

func concatRules(base, extra []string) []string {
	combined := append([]string(nil), base...)
	return append(combined, extra...)
}
