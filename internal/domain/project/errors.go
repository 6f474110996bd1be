package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrUserNotFound indicates no user exists for the given email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyMember indicates the user already holds a membership edge.
	ErrAlreadyMember = errors.New("user is already a member")
	// ErrNotMember indicates the user holds no membership edge.
	ErrNotMember = errors.New("user is not a member")
	// ErrSelfRemoval indicates the organizer attempted to remove themself.
	ErrSelfRemoval = errors.New("organizer cannot remove themself")
)
