package html

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

var attributeNamePattern = regexp.MustCompile(`^[A-Za-z_:][A-Za-z0-9_:.\-]*$`)

// IsValidAttributeName reports whether name may be used as an attribute name.
func IsValidAttributeName(name string) bool {
	return attributeNamePattern.MatchString(name)
}

// Attribute is a single HTML attribute. Its value is nil, a string, a bool
// or a list of strings joined by the separator when rendered.
type Attribute struct {
	name      string
	value     any
	separator string
	immutable bool
}

// NewAttribute creates an attribute after validating its name.
func NewAttribute(name string, value any) (*Attribute, error) {
	if !IsValidAttributeName(name) {
		return nil, herrors.New("H001").WithDetailf("%q", name)
	}
	a := &Attribute{name: name, separator: " "}
	a.value = normalizeValue(value)
	return a, nil
}

// MustAttribute is like NewAttribute but panics on an invalid name.
func MustAttribute(name string, value any) *Attribute {
	a, err := NewAttribute(name, value)
	if err != nil {
		panic(err)
	}
	return a
}

// normalizeValue maps v onto nil, string, bool or []string.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool:
		return val
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, valueString(item))
		}
		return out
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// valueString converts a scalar to its string form.
func valueString(v any) string {
	switch val := normalizeValue(v).(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, " ")
	default:
		return fmt.Sprint(val)
	}
}

// valueList returns v as a list of strings; nil and false are empty.
func valueList(v any) []string {
	switch val := normalizeValue(v).(type) {
	case nil:
		return nil
	case bool:
		if !val {
			return nil
		}
		return []string{"true"}
	case string:
		return []string{val}
	case []string:
		return val
	default:
		return []string{fmt.Sprint(val)}
	}
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Value returns the attribute value.
func (a *Attribute) Value() any { return a.value }

// String returns the value as a string, joining lists with the separator.
func (a *Attribute) String() string {
	if list, ok := a.value.([]string); ok {
		return strings.Join(list, a.separator)
	}
	return valueString(a.value)
}

// Separator returns the string that joins list values.
func (a *Attribute) Separator() string { return a.separator }

// SetSeparator sets the string that joins list values.
func (a *Attribute) SetSeparator(sep string) *Attribute {
	a.separator = sep
	return a
}

// IsImmutable reports whether writes to the attribute are ignored.
func (a *Attribute) IsImmutable() bool { return a.immutable }

// SetImmutable freezes or unfreezes the attribute value.
func (a *Attribute) SetImmutable(immutable bool) *Attribute {
	a.immutable = immutable
	return a
}

// SetValue replaces the value.
func (a *Attribute) SetValue(v any) *Attribute {
	if a.immutable {
		return a
	}
	a.value = normalizeValue(v)
	return a
}

// AddValue appends v. A scalar value turns into a list.
func (a *Attribute) AddValue(v any) *Attribute {
	if a.immutable {
		return a
	}
	add := normalizeValue(v)
	if a.value == nil {
		a.value = add
		return a
	}
	if _, ok := a.value.(bool); ok {
		a.value = add
		return a
	}
	current := valueList(a.value)
	merged := make([]string, 0, len(current)+1)
	merged = append(merged, current...)
	merged = append(merged, valueList(add)...)
	a.value = merged
	return a
}

// RemoveValue removes matching values. A list keeps its remaining entries;
// a scalar is cleared when it equals one of the given values.
func (a *Attribute) RemoveValue(v any) *Attribute {
	if a.immutable || a.value == nil {
		return a
	}
	remove := make(map[string]bool)
	for _, s := range valueList(v) {
		remove[s] = true
	}

	switch current := a.value.(type) {
	case []string:
		kept := make([]string, 0, len(current))
		for _, s := range current {
			if !remove[s] {
				kept = append(kept, s)
			}
		}
		a.value = kept
	default:
		if remove[valueString(current)] {
			a.value = nil
		}
	}
	return a
}

// IsEmpty reports whether the attribute renders nothing.
func (a *Attribute) IsEmpty() bool {
	switch val := a.value.(type) {
	case nil:
		return true
	case bool:
		return !val
	case []string:
		return len(val) == 0
	default:
		return false
	}
}

// RenderValue returns the escaped value.
func (a *Attribute) RenderValue() string {
	return EscapeAttributeValue(a.String())
}

// Render returns name="value", the bare name for true, or "" for an empty
// attribute.
func (a *Attribute) Render() string {
	if a.IsEmpty() {
		return ""
	}
	if b, ok := a.value.(bool); ok && b {
		return a.name
	}
	return a.name + `="` + a.RenderValue() + `"`
}

// clone copies the attribute.
func (a *Attribute) clone() *Attribute {
	c := *a
	c.value = normalizeValue(a.value)
	return &c
}
