package task

import "errors"

var (
	// ErrTaskNotFound indicates the card doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid card input.
	ErrInvalidInput = errors.New("invalid task input")
	// ErrAssigneeNotEligible indicates the assignee is neither the
	// organizer nor a member of the card's project.
	ErrAssigneeNotEligible = errors.New("assignee is not a member of the project")
	// ErrLabelProjectMismatch indicates a label from another project.
	ErrLabelProjectMismatch = errors.New("label belongs to a different project")
)
