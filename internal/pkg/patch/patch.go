package patch

import "strings"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// NonBlank returns the trimmed string behind ptr, or fallback when it is nil or only whitespace.
func NonBlank(ptr *string, fallback string) string {
	if s := strings.TrimSpace(Coalesce(ptr, "")); s != "" {
		return s
	}
	return fallback
}
