package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToolInput represents one tool invocation submitted for evaluation.
type ToolInput struct {
	Tool       string          `json:"tool"`
	Parameters json.RawMessage `json:"parameters"`
	parsed     map[string]interface{}
}

// ParseToolInput reads and parses one invocation record from a reader.
// A record whose parameters field is present but not a JSON object is
// rejected. A missing or empty tool name is accepted; such invocations
// classify as KindUnknown and no rule applies to them.
func ParseToolInput(reader io.Reader) (*ToolInput, error) {
	var input ToolInput
	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if len(input.Parameters) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(input.Parameters, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse parameters: %w", err)
		}
		input.parsed = parsed
	}

	return &input, nil
}

// Kind returns the dispatch category of the invocation's tool.
func (t *ToolInput) Kind() ToolKind {
	return KindOf(t.Tool)
}

// StringParam returns the named parameter when it is a string. An absent
// parameter yields an empty string and no error; a parameter of any other
// type is an error.
func (t *ToolInput) StringParam(name string) (string, error) {
	if t.parsed == nil {
		return "", nil
	}

	value, ok := t.parsed[name]
	if !ok {
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q is not a string (got %T)", name, value)
	}

	return strValue, nil
}
