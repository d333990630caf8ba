// Package sanitizer guards the engine against hostile input arriving over
// remote transports and file names derived from user supplied identifiers.
package sanitizer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 1MB
	DefaultMaxInputSize = 1 << 20
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "AUTOMATA_MAX_INPUT_SIZE"
	// MaxNameLength bounds machine names and run IDs.
	MaxNameLength = 128
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidName   = errors.New("invalid name")
)

// CheckSize rejects descriptions and batches larger than the configured limit.
// Input is never truncated: a partial batch would silently change the report.
func CheckSize(input string) error {
	limit := MaxInputSize()
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	return nil
}

// ValidateName checks a machine name or run ID. Names end up in file paths,
// redis keys, URLs and summary-log records, so separators, commas, a leading
// '#', control characters and dot segments are refused.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, MaxNameLength)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: invalid UTF-8", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.Contains(name, ","):
		return fmt.Errorf("%w: %q contains a comma", ErrInvalidName, name)
	case strings.HasPrefix(name, "#"):
		return fmt.Errorf("%w: %q starts with '#'", ErrInvalidName, name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
		}
	}
	return nil
}

// MaxInputSize returns the active input limit.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
