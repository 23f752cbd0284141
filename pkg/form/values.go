package form

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// toString converts a value to a string.
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toStrings converts a scalar or list value to a list of strings.
func toStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if _, nested := item.(map[string]any); nested {
				return nil, false
			}
			out = append(out, toString(item))
		}
		return out, true
	case map[string]any:
		return nil, false
	default:
		return []string{toString(v)}, true
	}
}

// isEmpty checks if a value is considered empty.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// truthy interprets attribute and request values as booleans.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if v == "on" || v == "required" {
			return true
		}
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return !isEmpty(v)
	}
}

// NestValues turns flat request values with bracketed names into a nested
// map: "a[b][c]" becomes {"a": {"b": {"c": v}}} and "tags[]" collects all
// values as a list.
func NestValues(values url.Values) map[string]any {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, key := range keys {
		vals := values[key]
		path, list := splitKey(key)

		var value any
		switch {
		case list:
			value = append([]string(nil), vals...)
		case len(vals) == 1:
			value = vals[0]
		default:
			value = append([]string(nil), vals...)
		}

		m := out
		for _, part := range path[:len(path)-1] {
			next, ok := m[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				m[part] = next
			}
			m = next
		}
		m[path[len(path)-1]] = value
	}
	return out
}

// splitKey splits "a[b][c][]" into [a b c] and reports the trailing [].
// Malformed keys are returned whole.
func splitKey(key string) ([]string, bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}, false
	}
	path := []string{key[:open]}
	rest := key[open:]
	list := false
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}, false
		}
		part := rest[1:end]
		rest = rest[end+1:]
		if part == "" {
			if rest != "" {
				return []string{key}, false
			}
			list = true
			break
		}
		path = append(path, part)
	}
	return path, list
}
