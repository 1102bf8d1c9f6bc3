package template

import "errors"

// Error definitions for the template package.
var (
	// ErrTemplateNotFound is returned when an embedded payload is missing.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrProfileNotFound is returned when an unknown profile is requested.
	ErrProfileNotFound = errors.New("unknown profile")

	// ErrPathTraversal is returned when a destination path would escape
	// the project root.
	ErrPathTraversal = errors.New("template path escapes project root")
)
