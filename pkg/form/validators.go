package form

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Validator checks an element value.
type Validator interface {
	// Validate returns nil if value is valid, or an error whose message is
	// shown to the user.
	Validate(value any) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value any) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(value any) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

const requiredMessage = "This field is required"

// ----------------------------------------------------------------------------
// String Validators
// ----------------------------------------------------------------------------

// Required validates that the value is non-empty.
func Required(msg string) Validator {
	if msg == "" {
		msg = requiredMessage
	}
	return ValidatorFunc(func(value any) error {
		if isEmpty(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength validates that a string has at least n characters.
func MinLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil // Let Required handle empty values
		}
		if len([]rune(s)) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MaxLength validates that a string has at most n characters.
func MaxLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return ValidatorFunc(func(value any) error {
		if len([]rune(toString(value))) > n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern validates that a string matches the given regular expression.
// It panics if pattern does not compile; use PatternE for untrusted input.
func Pattern(pattern string, msg string) Validator {
	v, err := PatternE(pattern, msg)
	if err != nil {
		panic(err)
	}
	return v
}

// PatternE is like Pattern but returns the compile error.
func PatternE(pattern string, msg string) (Validator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, herrors.New("F005").WithDetailf("pattern %q", pattern).Wrap(err)
	}
	if msg == "" {
		msg = "Invalid format"
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return ValidationError{Message: msg}
		}
		return nil
	}), nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email validates that the value is a valid email address.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Invalid email address"
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil
		}
		if !emailPattern.MatchString(s) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// URL validates that the value is an absolute URL.
func URL(msg string) Validator {
	if msg == "" {
		msg = "Invalid URL"
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// UUID validates that the value is a valid UUID.
func UUID(msg string) Validator {
	if msg == "" {
		msg = "Invalid UUID"
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil
		}
		if !uuidPattern.MatchString(s) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Alpha validates that the value contains only letters.
func Alpha(msg string) Validator {
	if msg == "" {
		msg = "Must contain only letters"
	}
	return runeValidator(msg, unicode.IsLetter)
}

// AlphaNumeric validates that the value contains only letters and digits.
func AlphaNumeric(msg string) Validator {
	if msg == "" {
		msg = "Must contain only letters and numbers"
	}
	return runeValidator(msg, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
}

// Numeric validates that the value contains only digits.
func Numeric(msg string) Validator {
	if msg == "" {
		msg = "Must contain only numbers"
	}
	return runeValidator(msg, unicode.IsDigit)
}

func runeValidator(msg string, ok func(rune) bool) Validator {
	return ValidatorFunc(func(value any) error {
		for _, r := range toString(value) {
			if !ok(r) {
				return ValidationError{Message: msg}
			}
		}
		return nil
	})
}

// ----------------------------------------------------------------------------
// Numeric Validators
// ----------------------------------------------------------------------------

// Min validates that a numeric value is >= n.
func Min(n float64, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %v", n)
	}
	return numberValidator(msg, func(v float64) bool { return v >= n })
}

// Max validates that a numeric value is <= n.
func Max(n float64, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %v", n)
	}
	return numberValidator(msg, func(v float64) bool { return v <= n })
}

// Between validates that a numeric value is between min and max (inclusive).
func Between(min, max float64, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be between %v and %v", min, max)
	}
	return numberValidator(msg, func(v float64) bool { return v >= min && v <= max })
}

func numberValidator(msg string, ok func(float64) bool) Validator {
	return ValidatorFunc(func(value any) error {
		if isEmpty(value) {
			return nil
		}
		v, err := toFloat64(value)
		if err != nil {
			return ValidationError{Message: "Must be a number"}
		}
		if !ok(v) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// toFloat64 converts a value to float64.
func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return strconv.ParseFloat(strings.TrimSpace(toString(v)), 64)
	}
}

// ----------------------------------------------------------------------------
// Set and Custom Validators
// ----------------------------------------------------------------------------

// InSet validates that every value is one of allowed.
func InSet(allowed []string, msg string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return ValidatorFunc(func(value any) error {
		values, _ := toStrings(value)
		for _, v := range values {
			if v == "" {
				continue
			}
			if !set[v] {
				if msg != "" {
					return ValidationError{Message: msg}
				}
				return ValidationError{Message: fmt.Sprintf("%q is not a valid choice", v)}
			}
		}
		return nil
	})
}

// Custom creates a validator from a custom function.
func Custom(fn func(value any) error) Validator {
	return ValidatorFunc(fn)
}

// ParseValidator creates a validator from a short specification such as
// "email", "minlength=3" or "pattern=^[a-z]+$".
func ParseValidator(spec string) (Validator, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(spec), "=")
	name = strings.ToLower(strings.TrimSpace(name))

	intArg := func() (int, error) {
		n, err := strconv.Atoi(arg)
		if !hasArg || err != nil {
			return 0, herrors.New("F005").WithDetailf("%s needs an integer argument, got %q", name, arg)
		}
		return n, nil
	}
	floatArg := func() (float64, error) {
		f, err := strconv.ParseFloat(arg, 64)
		if !hasArg || err != nil {
			return 0, herrors.New("F005").WithDetailf("%s needs a numeric argument, got %q", name, arg)
		}
		return f, nil
	}

	switch name {
	case "required":
		return Required(""), nil
	case "minlen", "minlength":
		n, err := intArg()
		if err != nil {
			return nil, err
		}
		return MinLength(n, ""), nil
	case "maxlen", "maxlength":
		n, err := intArg()
		if err != nil {
			return nil, err
		}
		return MaxLength(n, ""), nil
	case "min":
		f, err := floatArg()
		if err != nil {
			return nil, err
		}
		return Min(f, ""), nil
	case "max":
		f, err := floatArg()
		if err != nil {
			return nil, err
		}
		return Max(f, ""), nil
	case "email":
		return Email(""), nil
	case "url":
		return URL(""), nil
	case "uuid":
		return UUID(""), nil
	case "alpha":
		return Alpha(""), nil
	case "alphanum", "alphanumeric":
		return AlphaNumeric(""), nil
	case "numeric":
		return Numeric(""), nil
	case "pattern", "regex":
		if !hasArg {
			return nil, herrors.New("F005").WithDetail("pattern needs an expression")
		}
		return PatternE(arg, "")
	case "in", "oneof":
		if !hasArg {
			return nil, herrors.New("F005").WithDetailf("%s needs a list of values", name)
		}
		return InSet(strings.Split(arg, "|"), ""), nil
	}
	return nil, herrors.New("F005").
		WithDetailf("unknown validator %q", name).
		WithSuggestion("Use one of: required, minlength, maxlength, min, max, email, url, uuid, alpha, alphanum, numeric, pattern, in")
}
