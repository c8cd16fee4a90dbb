package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	alphanumericRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex         = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)

	uuidType = reflect.TypeFor[uuid.UUID]()
)

// RuleCheck reports whether v satisfies a rule with the given tag parameter.
// An error means the rule cannot be applied to v at all.
type RuleCheck func(v reflect.Value, param string) (bool, error)

// rule is a tag rule: a check plus the error reported when it fails.
type rule struct {
	// runOnNil rules also run when the value is a nil pointer or interface.
	runOnNil bool
	check    RuleCheck
	fail     func(field, param string, v reflect.Value) ValidationError
}

func builtinRules() map[string]rule {
	return map[string]rule{
		"required": {runOnNil: true, check: checkRequired, fail: simpleError("field is required", "validation.required")},
		"min":      {check: compareSize(func(size, n float64) bool { return size >= n }), fail: sizeError("at least", "min")},
		"max":      {check: compareSize(func(size, n float64) bool { return size <= n }), fail: sizeError("at most", "max")},
		"len":      {check: compareSize(func(size, n float64) bool { return size == n }), fail: sizeError("exactly", "exact")},
		"email":    {check: stringCheck(isEmail), fail: simpleError("must be a valid email address", "validation.email")},
		"url":      {check: stringCheck(isURL), fail: simpleError("must be a valid URL", "validation.url")},
		"uuid":     {check: checkUUID, fail: simpleError("must be a valid UUID", "validation.uuid")},
		"alpha":    {check: stringCheck(alphaRegex.MatchString), fail: simpleError("must contain only letters", "validation.alpha")},
		"alphanum": {check: stringCheck(alphanumericRegex.MatchString), fail: simpleError("must contain only letters and numbers", "validation.alphanumeric")},
		"numeric":  {check: stringCheck(numericStringRegex.MatchString), fail: simpleError("must contain only digits", "validation.numeric_string")},
		"oneof":    {check: checkOneOf, fail: oneOfError},
	}
}

func checkRequired(v reflect.Value, _ string) (bool, error) {
	if !v.IsValid() {
		return false, nil
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) != "", nil
	case reflect.Slice, reflect.Map:
		return v.Len() > 0, nil
	default:
		return !v.IsZero(), nil
	}
}

func compareSize(cmp func(size, n float64) bool) RuleCheck {
	return func(v reflect.Value, param string) (bool, error) {
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return false, fmt.Errorf("%w: invalid parameter %q", ErrRuleNotApplicable, param)
		}
		size, ok := sizeOf(v)
		if !ok {
			return false, fmt.Errorf("%w: cannot measure %s", ErrRuleNotApplicable, v.Type())
		}
		return cmp(size, n), nil
	}
}

// sizeOf returns the rune count of strings, the length of collections and the value of numbers.
func sizeOf(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.String:
		return float64(utf8.RuneCountInString(v.String())), true
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(v.Len()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func stringCheck(fn func(string) bool) RuleCheck {
	return func(v reflect.Value, _ string) (bool, error) {
		if v.Kind() != reflect.String {
			return false, fmt.Errorf("%w: expected string, got %s", ErrRuleNotApplicable, v.Type())
		}
		s := v.String()
		if strings.TrimSpace(s) == "" {
			return false, nil
		}
		return fn(s), nil
	}
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func checkUUID(v reflect.Value, param string) (bool, error) {
	if v.Type() == uuidType {
		return v.Interface().(uuid.UUID) != uuid.Nil, nil
	}
	return stringCheck(func(s string) bool {
		if len(s) != 36 {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})(v, param)
}

func checkOneOf(v reflect.Value, param string) (bool, error) {
	switch v.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Map, reflect.Array, reflect.Func, reflect.Chan:
		return false, fmt.Errorf("%w: oneof on %s", ErrRuleNotApplicable, v.Type())
	}
	return slices.Contains(strings.Fields(param), fmt.Sprint(v.Interface())), nil
}

func simpleError(message, key string) func(field, param string, v reflect.Value) ValidationError {
	return func(field, _ string, _ reflect.Value) ValidationError {
		return ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: key,
			TranslationValues: map[string]any{
				"field": field,
			},
		}
	}
}

// sizeError words the message after the kind of value: characters, items or a plain number.
func sizeError(bound, key string) func(field, param string, v reflect.Value) ValidationError {
	return func(field, param string, v reflect.Value) ValidationError {
		message := fmt.Sprintf("must be %s %s", bound, param)
		translationKey := "validation." + key
		switch v.Kind() {
		case reflect.String:
			message = fmt.Sprintf("must be %s %s characters long", bound, param)
			translationKey = "validation." + key + "_length"
		case reflect.Slice, reflect.Map, reflect.Array:
			message = fmt.Sprintf("must have %s %s items", bound, param)
			translationKey = "validation." + key + "_items"
		}
		return ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: translationKey,
			TranslationValues: map[string]any{
				"field": field,
				key:     param,
			},
		}
	}
}

func oneOfError(field, param string, _ reflect.Value) ValidationError {
	allowed := strings.Fields(param)
	return ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		TranslationKey: "validation.in_list",
		TranslationValues: map[string]any{
			"field":          field,
			"allowed_values": allowed,
		},
	}
}
