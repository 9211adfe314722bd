package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// NormalizeName lowercases and trims a taxonomy value (city, genre,
// language) before it hits a unique column.
func NormalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeNames applies NormalizeName to a list, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		normalized := NormalizeName(v)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
