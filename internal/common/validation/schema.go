// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// JSONSchema is the subset of JSON Schema used to check request bodies
// before they are decoded into typed inputs.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	Format      string              `json:"format,omitempty"` // "email" or "uri"; empty strings are not checked
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeRequired    = "REQUIRED_FIELD_MISSING"
	CodeExtraField  = "EXTRA_FIELD"
	CodeInvalidType = "INVALID_TYPE"
	CodeMinLength   = "MIN_LENGTH_VIOLATION"
	CodeMaxLength   = "MAX_LENGTH_VIOLATION"
	CodePattern     = "PATTERN_MISMATCH"
	CodeEnum        = "INVALID_ENUM_VALUE"
	CodeFormat      = "INVALID_FORMAT"
	CodeMinimum     = "MINIMUM_VIOLATION"
	CodeMaximum     = "MAXIMUM_VIOLATION"
)

type collector struct {
	errs []ValidationError
}

func (c *collector) add(field, code, format string, args ...interface{}) {
	c.errs = append(c.errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Code: code})
}

// ValidateInput checks a decoded JSON object against schema. Errors are
// ordered by field name.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	c := &collector{}
	c.object("", input, schema.Properties, schema.Required, schema.AdditionalProperties)

	sort.SliceStable(c.errs, func(i, j int) bool { return c.errs[i].Field < c.errs[j].Field })
	return &ValidationResult{Valid: len(c.errs) == 0, Errors: c.errs}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (c *collector) object(prefix string, obj map[string]interface{}, props map[string]Property, required []string, additional bool) {
	for _, name := range required {
		if _, ok := obj[name]; !ok {
			c.add(join(prefix, name), CodeRequired, "required field missing")
		}
	}

	for name, value := range obj {
		prop, ok := props[name]
		if !ok {
			if !additional {
				c.add(join(prefix, name), CodeExtraField, "field not allowed in schema")
			}
			continue
		}
		c.value(join(prefix, name), value, prop)
	}
}

func (c *collector) value(field string, value interface{}, prop Property) {
	if err := checkType(value, prop.Type); err != nil {
		c.add(field, CodeInvalidType, "%s", err.Error())
		return
	}

	switch v := value.(type) {
	case string:
		c.str(field, v, prop)
	case float64:
		if prop.Minimum != nil && v < *prop.Minimum {
			c.add(field, CodeMinimum, "value must be >= %v", *prop.Minimum)
		}
		if prop.Maximum != nil && v > *prop.Maximum {
			c.add(field, CodeMaximum, "value must be <= %v", *prop.Maximum)
		}
	case []interface{}:
		if prop.Items != nil {
			for i, item := range v {
				c.value(fmt.Sprintf("%s[%d]", field, i), item, *prop.Items)
			}
		}
	case map[string]interface{}:
		if prop.Properties != nil {
			c.object(field, v, prop.Properties, prop.Required, true)
		}
	}
}

func (c *collector) str(field, s string, prop Property) {
	n := len([]rune(s))
	if prop.MinLength != nil && n < *prop.MinLength {
		c.add(field, CodeMinLength, "value must be at least %d characters", *prop.MinLength)
	}
	if prop.MaxLength != nil && n > *prop.MaxLength {
		c.add(field, CodeMaxLength, "value must be at most %d characters", *prop.MaxLength)
	}

	if prop.Pattern != nil {
		re, err := compiled(*prop.Pattern)
		if err != nil || !re.MatchString(s) {
			c.add(field, CodePattern, "value must match pattern %s", *prop.Pattern)
		}
	}

	if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
		c.add(field, CodeEnum, "value must be one of %s", strings.Join(prop.Enum, ", "))
	}

	if s != "" && prop.Format != "" && !matchesFormat(prop.Format, s) {
		c.add(field, CodeFormat, "value is not a valid %s", prop.Format)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func matchesFormat(format, s string) bool {
	switch format {
	case "email":
		return ValidateEmail(s)
	case "uri":
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	default:
		return true
	}
}

func checkType(value interface{}, expected string) error {
	ok := true
	switch expected {
	case "string":
		_, ok = value.(string)
	case "number":
		switch value.(type) {
		case float64, int, int32, int64:
		default:
			ok = false
		}
	case "integer":
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) {
				return fmt.Errorf("expected integer, got %v", v)
			}
		case int, int32, int64:
		default:
			ok = false
		}
	case "boolean":
		_, ok = value.(bool)
	case "object":
		_, ok = value.(map[string]interface{})
	case "array":
		_, ok = value.([]interface{})
	case "null":
		ok = value == nil
	}
	if !ok {
		return fmt.Errorf("expected %s, got %T", expected, value)
	}
	return nil
}

var patterns sync.Map

func compiled(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

// GetErrorMessages returns "field: message" for every error.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
