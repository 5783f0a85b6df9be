package hooks

import (
	"fmt"

	"github.com/toolfence/toolfence/internal/policy"
)

// sensitivePathRule blocks filesystem tools from touching catalog-listed
// sensitive paths.
type sensitivePathRule struct {
	catalog *policy.Catalog
}

// NewSensitivePathRule creates a rule that blocks file operations, glob
// expansion, content search, and directory listing on the catalog's
// sensitive paths.
func NewSensitivePathRule(catalog *policy.Catalog) Rule {
	return &sensitivePathRule{
		catalog: catalog,
	}
}

// Name returns the unique identifier for this rule.
func (r *sensitivePathRule) Name() string {
	return "sensitive-path"
}

// Description returns a human-readable description of what this rule does.
func (r *sensitivePathRule) Description() string {
	return "Blocks filesystem tools from touching credentials and system configuration"
}

// Evaluate checks every path-carrying parameter of the invocation against
// the catalog. Which parameters carry paths depends on the tool kind: file
// operations name one file, glob expansion carries a pattern and an
// optional base path, search and listing carry a root path. Empty
// parameters are skipped.
func (r *sensitivePathRule) Evaluate(input *ToolInput) (*RuleResult, error) {
	var params []string
	switch input.Kind() {
	case KindFileOp:
		params = []string{"file_path"}
	case KindGlob:
		params = []string{"pattern", "path"}
	case KindGrep, KindList:
		params = []string{"path"}
	default:
		return NewAllowedResult(), nil
	}

	for _, name := range params {
		value, err := input.StringParam(name)
		if err != nil {
			return nil, err
		}
		if value == "" {
			continue
		}

		match, ok := r.catalog.CheckPath(value)
		if !ok {
			continue
		}

		return NewBlockedResult(r.Name(), pathMatchMessage(input.Kind(), match)), nil
	}

	return NewAllowedResult(), nil
}

func pathMatchMessage(kind ToolKind, match policy.Match) string {
	detail := fmt.Sprintf("sensitive path: %s", match.Rule)
	if match.Source == policy.SourceRegex {
		detail = fmt.Sprintf("sensitive path pattern: %s", match.Rule)
	}

	switch kind {
	case KindGlob:
		return fmt.Sprintf("Glob access to %s", detail)
	case KindGrep:
		return fmt.Sprintf("Grep access to %s", detail)
	case KindList:
		return fmt.Sprintf("Directory listing of %s", detail)
	default:
		return fmt.Sprintf("File access to %s", detail)
	}
}
