package validator

import (
	"regexp"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// ParseIntInRange parses an optional query value. An empty value yields nil;
// anything else must be an integer within [min, max].
func ParseIntInRange(field, raw string, min, max int64) (*int64, *ValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !IsNumeric(raw) {
		return nil, &ValidationError{Field: field, Message: "must be an integer"}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < min || v > max {
		return nil, &ValidationError{Field: field, Message: "must be between " + strconv.FormatInt(min, 10) + " and " + strconv.FormatInt(max, 10)}
	}
	return &v, nil
}
