// Package policy holds the pattern catalog that classifies commands and
// filesystem paths as dangerous or sensitive.
package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// Source identifies which tier of the catalog produced a match.
type Source int

const (
	// SourceExact means the subject contained a rule's text as a substring.
	SourceExact Source = iota

	// SourceRegex means the subject matched a rule's regular expression.
	SourceRegex
)

// String returns the source as a short label.
func (s Source) String() string {
	if s == SourceRegex {
		return "regex"
	}
	return "exact"
}

// Match identifies the rule that classified a subject.
type Match struct {
	// Rule is the text of the matching rule, exactly as it appears in the
	// catalog. For regex rules this is the pattern source, not the match.
	Rule string

	// Source tells whether Rule is an exact entry or a pattern.
	Source Source
}

// patternRule pairs a pattern's source text with its compiled form so a
// match can report the text it was configured with.
type patternRule struct {
	expr     string
	compiled *regexp.Regexp
}

// Catalog is an immutable set of command and path rules. Within each rule
// family, exact rules are checked before patterns, in catalog order, and the
// first match wins.
type Catalog struct {
	commandExact    []string
	commandPatterns []patternRule
	pathExact       []string
	pathPatterns    []patternRule
}

var defaultCatalog = mustCatalog(builtinCommandExact, builtinCommandPatterns, builtinPathExact, builtinPathPatterns)

// Default returns the builtin catalog. The returned catalog is shared and
// must not be modified.
func Default() *Catalog {
	return defaultCatalog
}

// mustCatalog builds a catalog from rule tables, panicking if a pattern does
// not compile. Builtin patterns failing to compile is a programming error.
func mustCatalog(commandExact, commandPatterns, pathExact, pathPatterns []string) *Catalog {
	catalog, err := newCatalog(commandExact, commandPatterns, pathExact, pathPatterns)
	if err != nil {
		panic(fmt.Sprintf("invalid builtin pattern: %v", err))
	}
	return catalog
}

func newCatalog(commandExact, commandPatterns, pathExact, pathPatterns []string) (*Catalog, error) {
	compiledCommands, err := compilePatterns(commandPatterns)
	if err != nil {
		return nil, err
	}
	compiledPaths, err := compilePatterns(pathPatterns)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		commandExact:    commandExact,
		commandPatterns: compiledCommands,
		pathExact:       pathExact,
		pathPatterns:    compiledPaths,
	}, nil
}

// compilePatterns compiles each pattern case-insensitively.
func compilePatterns(patterns []string) ([]patternRule, error) {
	compiled := make([]patternRule, 0, len(patterns))
	for _, expr := range patterns {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		compiled = append(compiled, patternRule{expr: expr, compiled: re})
	}
	return compiled, nil
}

// CheckCommand reports whether a command matches a dangerous-command rule.
// Exact rules are tested case-insensitively against the space-trimmed
// command; patterns are tested against the command as given. An empty
// command never matches.
func (c *Catalog) CheckCommand(command string) (Match, bool) {
	folded := strings.ToLower(strings.TrimSpace(command))
	if folded == "" {
		return Match{}, false
	}

	for _, rule := range c.commandExact {
		if strings.Contains(folded, strings.ToLower(rule)) {
			return Match{Rule: rule, Source: SourceExact}, true
		}
	}

	for _, rule := range c.commandPatterns {
		if rule.compiled.MatchString(command) {
			return Match{Rule: rule.expr, Source: SourceRegex}, true
		}
	}

	return Match{}, false
}

// CheckPath reports whether a path matches a sensitive-path rule. The path
// is case-folded before testing. An empty path never matches.
func (c *Catalog) CheckPath(path string) (Match, bool) {
	folded := strings.ToLower(path)
	if strings.TrimSpace(folded) == "" {
		return Match{}, false
	}

	for _, rule := range c.pathExact {
		if matchPathRule(folded, rule) {
			return Match{Rule: rule, Source: SourceExact}, true
		}
	}

	for _, rule := range c.pathPatterns {
		if rule.compiled.MatchString(folded) {
			return Match{Rule: rule.expr, Source: SourceRegex}, true
		}
	}

	return Match{}, false
}

// matchPathRule tests one exact path rule. A rule without wildcards matches
// as a plain substring. A rule with a "*" matches when the path contains the
// rule with the "*" removed, or starts with the rule with "/*" removed, so
// "/home/*/.ssh" also covers "/home/.ssh". The "~" in a rule like "~/.ssh"
// is not expanded; it matches the literal text.
func matchPathRule(folded, rule string) bool {
	rule = strings.ToLower(rule)
	if strings.Contains(folded, strings.ReplaceAll(rule, "*", "")) {
		return true
	}
	return strings.HasPrefix(folded, strings.ReplaceAll(rule, "/*", ""))
}

// CommandExact returns a copy of the exact command rules in catalog order.
func (c *Catalog) CommandExact() []string {
	return append([]string(nil), c.commandExact...)
}

// CommandPatterns returns a copy of the command pattern sources in catalog order.
func (c *Catalog) CommandPatterns() []string {
	return patternSources(c.commandPatterns)
}

// PathExact returns a copy of the exact path rules in catalog order.
func (c *Catalog) PathExact() []string {
	return append([]string(nil), c.pathExact...)
}

// PathPatterns returns a copy of the path pattern sources in catalog order.
func (c *Catalog) PathPatterns() []string {
	return patternSources(c.pathPatterns)
}

func patternSources(rules []patternRule) []string {
	sources := make([]string, 0, len(rules))
	for _, rule := range rules {
		sources = append(sources, rule.expr)
	}
	return sources
}
