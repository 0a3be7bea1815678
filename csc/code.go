package csc

import (
	"fmt"
	"strings"
)

// Normalize trims and upper-cases code and checks that it is a three letter
// sales code such as "XEO".
func Normalize(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
	}
	return normalized, nil
}
