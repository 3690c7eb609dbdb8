// Package store holds the document-store repositories. Each entity gets
// a small interface so lifecycle services can be exercised with in-memory
// doubles, plus the GORM implementation used in production.
package store

import "errors"

var (
	// ErrNotFound is returned on any entity lookup miss.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a create.
	ErrDuplicate = errors.New("record already exists")
)
