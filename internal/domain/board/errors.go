package board

import "errors"

var (
	// ErrColumnNotFound indicates the column doesn't exist. A move
	// targeting a column of another project reports the same error:
	// a dangling column reference must never be written.
	ErrColumnNotFound = errors.New("column not found")
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid board input.
	ErrInvalidInput = errors.New("invalid board input")
	// ErrCardArchived indicates a move on an archived card. Archived
	// cards sit outside the ordering sequence until restored.
	ErrCardArchived = errors.New("card is archived")
)
