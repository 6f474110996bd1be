package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/identity"
	"github.com/ganot/taskboard/internal/insights"
	"github.com/ganot/taskboard/internal/repository"
)

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: msg})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses:
// missing entities 404, denied 403, bad input 400, duplicates 409.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, board.ErrColumnNotFound),
		errors.Is(err, board.ErrProjectNotFound),
		errors.Is(err, project.ErrNotMember),
		errors.Is(err, identity.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, project.ErrAlreadyMember),
		errors.Is(err, identity.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, project.ErrUserNotFound),
		errors.Is(err, project.ErrSelfRemoval),
		errors.Is(err, board.ErrInvalidInput),
		errors.Is(err, board.ErrCardArchived),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, task.ErrAssigneeNotEligible),
		errors.Is(err, identity.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, insights.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
