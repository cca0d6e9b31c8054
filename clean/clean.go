// Package clean recovers structured JSON from the free-form text a language
// model returns. Model output is expected to be occasionally malformed, so
// recovery failure is a value, not an error.
package clean

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

const (
	failedMessage = "Failed to parse JSON"
	failedDetails = "All parsing attempts failed"
)

var (
	escapedNewline = regexp.MustCompile(`\\n\s*`)
	escapedChar    = regexp.MustCompile(`\\["'ntr]`)
)

// strategies are tried in order, strict first, increasingly lenient after.
// The first one that parses wins.
var strategies = []func(string) (any, error){
	parseStrict,
	func(s string) (any, error) {
		return parseStrict(escapedNewline.ReplaceAllString(s, ""))
	},
	func(s string) (any, error) {
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\n`, " ")
		return parseStrict(s)
	},
	func(s string) (any, error) {
		return parseStrict(escapedChar.ReplaceAllString(s, " "))
	},
	parseLenient,
}

// JSON parses raw into a value with every mapping key rewritten to
// snake_case. Markdown code fences are stripped first. If no strategy can
// parse the input, JSON returns a failure record carrying the untouched
// input so callers can inspect what the model actually produced.
func JSON(raw string) any {
	working := stripFence(raw)

	for _, parse := range strategies {
		if v, err := parse(working); err == nil {
			return snakeKeys(v)
		}
	}

	return map[string]any{
		"error":           failedMessage,
		"original_string": raw,
		"error_details":   failedDetails,
	}
}

// stripFence removes a surrounding markdown code fence (``` or ```json).
// Inputs without a leading and trailing fence come back trimmed but
// otherwise unchanged.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, "```")
}

func parseStrict(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// parseLenient is the last resort. YAML is a superset of JSON that accepts
// relaxed quoting (single-quoted strings, unquoted keys), so it catches
// near-JSON the strict passes reject. Only mappings and sequences count as
// success: a line of prose is valid YAML too, and accepting it would
// swallow genuinely unparseable input.
func parseLenient(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	}
	return nil, errors.New("not a structured value")
}

// snakeKeys rewrites every mapping key at every depth to snake_case.
// Sequences are walked element-wise, scalars pass through unchanged.
func snakeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[snakeCase(k)] = snakeKeys(val)
		}
		return out
	case map[any]any:
		// yaml.v3 falls back to this shape for non-string keys.
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[snakeCase(fmt.Sprint(k))] = snakeKeys(val)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = snakeKeys(item)
		}
		return t
	default:
		return v
	}
}

// snakeCase inserts an underscore before every uppercase letter that is not
// the first character, then lowercases the whole key. Keys already in
// snake_case come back unchanged, so the transform is idempotent.
func snakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
