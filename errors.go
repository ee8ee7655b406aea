package smntc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. The typed errors below match these via errors.Is.
var (
	ErrUnknownToken          = errors.New("smntc: unknown token")
	ErrConfigurationRejected = errors.New("smntc: configuration rejected")
	ErrInvalidNumericInput   = errors.New("smntc: invalid numeric input")
	ErrUnknownPreset         = errors.New("smntc: unknown preset")
	ErrDisposed              = errors.New("smntc: kernel disposed")
)

// UnknownTokenError reports a configuration value that names no registered
// token. Valid holds every name registered for the category at the time of
// the failed lookup, in insertion order.
type UnknownTokenError struct {
	Category Category
	Value    string
	Valid    []string
}

func (e *UnknownTokenError) Error() string {
	msg := fmt.Sprintf("smntc: unknown %s token %q (valid: %s)",
		e.Category, e.Value, strings.Join(e.Valid, ", "))
	if s := e.Suggestion(); s != "" {
		msg += fmt.Sprintf("; did you mean %q?", s)
	}
	return msg
}

// Is matches ErrUnknownToken.
func (e *UnknownTokenError) Is(target error) bool { return target == ErrUnknownToken }

// Suggestion returns the valid name closest to Value by edit distance, or ""
// when nothing is within half the length of the offending value.
func (e *UnknownTokenError) Suggestion() string {
	best := ""
	bestDist := len(e.Value)/2 + 1
	for _, name := range e.Valid {
		if d := editDistance(strings.ToLower(e.Value), name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// ConfigurationRejectedError reports a token selection excluded by a preset's
// allow-list.
type ConfigurationRejectedError struct {
	Preset  string
	Field   Category
	Value   string
	Allowed []string
}

func (e *ConfigurationRejectedError) Error() string {
	return fmt.Sprintf("smntc: preset %q does not allow %s %q (allowed: %s)",
		e.Preset, e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Is matches ErrConfigurationRejected.
func (e *ConfigurationRejectedError) Is(target error) bool { return target == ErrConfigurationRejected }

// InvalidNumericInputError reports a non-finite continuous knob.
type InvalidNumericInputError struct {
	Field string
	Value float64
}

func (e *InvalidNumericInputError) Error() string {
	return fmt.Sprintf("smntc: %s must be finite, got %v", e.Field, e.Value)
}

// Is matches ErrInvalidNumericInput.
func (e *InvalidNumericInputError) Is(target error) bool { return target == ErrInvalidNumericInput }

// editDistance is the Levenshtein distance between a and b over bytes.
// Token names are ASCII.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
