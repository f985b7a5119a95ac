package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseBoolFlag parses one of the check's "?" toggle arguments: "0" or "1".
func parseBoolFlag(name, s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%s must be \"0\" or \"1\", got %q", name, s)
	}
}

// parseUint31 parses a numeric parameter constrained to an unsigned
// 31-bit integer, per the input surface's arity table.
func parseUint31(name, s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, s)
	}
	return int(n), nil
}

// requireNonEmpty rejects an empty required positional argument.
func requireNonEmpty(name, s string) error {
	if s == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
