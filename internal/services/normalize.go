package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// PlaceholderEmailDomain is the domain used for synthesized contact emails.
const PlaceholderEmailDomain = "example.com"

// SanitizePhone strips every character that is not '+', '-', or a digit.
// Inputs left without a single digit are treated as "no phone" and return
// nil rather than an empty string.
func SanitizePhone(raw string) *string {
	if raw == "" {
		return nil
	}

	var b strings.Builder
	hasDigit := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
			b.WriteRune(r)
		case r == '+' || r == '-':
			b.WriteRune(r)
		}
	}

	if !hasDigit {
		return nil
	}
	sanitized := b.String()
	return &sanitized
}

// ResolveContactName applies the name-fallback rules: a missing last name is
// filled from the first name; when both are missing, the combined display
// name becomes the first name. Records with all three fields empty are
// rejected with ErrMissingName.
func ResolveContactName(first, last, combined string) (string, string, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	combined = strings.TrimSpace(combined)

	if last == "" {
		last = first
		if first == "" {
			first = combined
			last = ""
		}
	}

	if first == "" && last == "" && combined == "" {
		return "", "", ErrMissingName
	}
	return first, last, nil
}

// SynthesizeEmail builds a deterministic placeholder address for contacts
// with no email: lower-cased first+last with whitespace removed, the Atera
// customer id appended, under the placeholder domain. Re-runs produce the
// same address for the same inputs, so contact sync stays idempotent.
func SynthesizeEmail(first, last string, customerID int) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, first+last)
	return fmt.Sprintf("%s%d@%s", strings.ToLower(name), customerID, PlaceholderEmailDomain)
}

var naiveTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseFlexibleTime parses timestamps as both platforms emit them: naive,
// 'Z'-suffixed, or carrying a timezone offset. Offsets and the 'Z' marker
// are stripped so every value compares on the same naive UTC axis, matching
// the cutoff computed from time.Now().UTC().
func ParseFlexibleTime(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if i := strings.Index(s, "+"); i > 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "Z")
	if t := strings.Index(s, "T"); t >= 0 {
		if i := strings.LastIndex(s, "-"); i > t {
			s = s[:i]
		}
	}

	var lastErr error
	for _, layout := range naiveTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", value, lastErr)
}
