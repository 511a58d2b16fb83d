package project

import "errors"

var (
	// ErrProjectNotFound indicates no project exists under the given name.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateName indicates a project with the same name already exists.
	ErrDuplicateName = errors.New("duplicate project name")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
