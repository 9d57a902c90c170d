package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	modelFamilyPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,63}$`)
	regionPattern      = regexp.MustCompile(`^[a-z][a-z0-9]{1,39}$`)
)

// ValidateModelFamily checks a model name such as gpt-4 or gpt-35-turbo
func ValidateModelFamily(family string) error {
	if family == "" {
		return fmt.Errorf("model family cannot be empty")
	}
	if !modelFamilyPattern.MatchString(family) {
		return fmt.Errorf("invalid model family: %q", family)
	}
	return nil
}

// ValidateRegion checks an Azure location name such as swedencentral
func ValidateRegion(region string) error {
	if !regionPattern.MatchString(region) {
		return fmt.Errorf("invalid region: %q (lowercase location name, e.g. eastus)", region)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SplitList splits repeated and comma separated values, sanitizing each
// and dropping empties.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := SanitizeString(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
