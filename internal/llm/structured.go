package llm

import (
	"encoding/json"
	"fmt"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output into T.
// Surrounding prose and markdown fences are ignored. Comments, trailing
// commas and bare leading decimals (".5") are repaired before decoding.
// If validator is non-nil, the decoded value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	obj, ok := scanObject(raw)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal(obj, &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// scanObject copies the first balanced {...} block out of s, repairing it
// along the way. Quoting state is tracked once so that every repair applies
// only outside string literals.
func scanObject(s string) ([]byte, bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}

	out := make([]byte, 0, len(s)-start+8)
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
			continue
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(lastNonSpace(out)):
			out = append(out, '0')
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			out = dropTrailingComma(out)
			depth--
			if depth == 0 {
				return append(out, c), true
			}
		}
		out = append(out, c)
	}
	return nil, false
}

// dropTrailingComma removes a comma left dangling before a closing bracket.
func dropTrailingComma(b []byte) []byte {
	i := len(b) - 1
	for i >= 0 && isSpace(b[i]) {
		i--
	}
	if i >= 0 && b[i] == ',' {
		return append(b[:i], b[i+1:]...)
	}
	return b
}

func lastNonSpace(b []byte) byte {
	for i := len(b) - 1; i >= 0; i-- {
		if !isSpace(b[i]) {
			return b[i]
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
