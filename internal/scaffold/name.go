package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forgeapi/forgeapi/internal/defs"
)

// ErrInvalidName is returned for folder names that cannot be used as a
// single path segment.
var ErrInvalidName = errors.New("invalid project name")

// ResolveProjectName trims the operator-supplied folder name, substitutes
// the default for blank input, and rejects names that would escape the
// working directory or collide with special path segments.
func ResolveProjectName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return defs.DefaultProjectName, nil
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: control character in %q", ErrInvalidName, name)
	}
	return name, nil
}
