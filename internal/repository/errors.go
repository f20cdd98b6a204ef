package repository

import "errors"

// Common repository errors
var (
	// ErrWorkspaceNotFound is returned when a workspace is not found
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrIdentifierTaken is returned when a workspace identifier is already in use
	ErrIdentifierTaken = errors.New("workspace identifier already in use")
)
