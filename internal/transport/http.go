package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/identity"
	"github.com/ganot/taskboard/internal/insights"
)

// Services bundles the domain services the HTTP layer dispatches to.
type Services struct {
	Identity *identity.Service
	Projects *project.Service
	Board    *board.Service
	Tasks    *task.Service
	Activity *activity.Service
	Insights *insights.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc Services
}

// NewServer creates the router. Everything under /projects and /board
// sits behind bearer authentication.
func NewServer(svc Services) *chi.Mux {
	srv := &Server{svc: svc}

	r := chi.NewRouter()

	r.Get("/health", srv.handleHealth)
	r.Post("/auth/register", srv.handleRegister)
	r.Post("/auth/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(svc.Identity))

		r.Delete("/users/{userID}", srv.handleDeleteUser)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.handleListProjects)
			r.Post("/", srv.handleCreateProject)
			r.Get("/{projectID}", srv.handleGetProject)
			r.Put("/{projectID}", srv.handleUpdateProject)
			r.Delete("/{projectID}", srv.handleDeleteProject)
			r.Post("/{projectID}/members", srv.handleAddMember)
			r.Delete("/{projectID}/members/{userID}", srv.handleRemoveMember)
			r.Get("/{projectID}/activity", srv.handleActivity)
			r.Get("/{projectID}/insights", srv.handleInsights)
		})

		r.Route("/board", func(r chi.Router) {
			r.Get("/{projectID}", srv.handleBoard)
			r.Post("/addColumn", srv.handleAddColumn)
			r.Post("/addCard", srv.handleAddCard)
			r.Post("/moveCard", srv.handleMoveCard)
			r.Post("/toggleCard", srv.handleToggleCard)
			r.Post("/archiveTask", srv.handleArchiveTask)
			r.Post("/restoreTask", srv.handleRestoreTask)
			r.Post("/assignTask", srv.handleAssignTask)
			r.Post("/addLabel", srv.handleAddLabel)
			r.Post("/addImage", srv.handleAddImage)
			r.Get("/card/{taskID}", srv.handleCardDetail)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	user, token, err := s.svc.Identity.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, UserID: user.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	user, token, err := s.svc.Identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token, UserID: user.ID})
}

// handleDeleteUser removes an account. Admin-only; the store nulls any
// task assignments pointing at the deleted user.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	if !p.Admin {
		writeDomainError(w, access.ErrDenied)
		return
	}
	if err := s.svc.Identity.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	summaries, err := s.svc.Projects.List(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if summaries == nil {
		summaries = []project.Summary{}
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}

	proj, err := s.svc.Projects.Create(r.Context(), p, project.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	proj, members, err := s.svc.Projects.Get(r.Context(), p, chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if members == nil {
		members = []project.Member{}
	}

	writeJSON(w, http.StatusOK, struct {
		*project.Project
		Members []project.Member `json:"members"`
	}{proj, members})
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}

	proj, err := s.svc.Projects.Update(r.Context(), p, chi.URLParam(r, "projectID"), project.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	if err := s.svc.Projects.Delete(r.Context(), p, chi.URLParam(r, "projectID")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	member, err := s.svc.Projects.AddMember(r.Context(), p, chi.URLParam(r, "projectID"), req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	err := s.svc.Projects.RemoveMember(r.Context(), p,
		chi.URLParam(r, "projectID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)
	projectID := chi.URLParam(r, "projectID")

	// Viewing activity takes the same access as viewing the board.
	if _, _, err := s.svc.Projects.Get(r.Context(), p, projectID); err != nil {
		writeDomainError(w, err)
		return
	}

	entries, err := s.svc.Activity.Recent(r.Context(), activity.ListOptions{
		ProjectID: projectID,
		Limit:     100,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	result, err := s.svc.Insights.Generate(r.Context(), p, chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	view, err := s.svc.Board.Snapshot(r.Context(), p, chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAddColumn(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		ProjectID string `json:"project_id"`
		Title     string `json:"title"`
	}
	if !decode(w, r, &req) {
		return
	}

	col, err := s.svc.Board.AddColumn(r.Context(), p, board.AddColumnRequest{
		ProjectID: req.ProjectID,
		Title:     req.Title,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, col)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		ProjectID   string   `json:"project_id"`
		ColumnID    string   `json:"column_id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Labels      []string `json:"labels"`
	}
	if !decode(w, r, &req) {
		return
	}

	t, err := s.svc.Board.AddCard(r.Context(), p, board.AddCardRequest{
		ProjectID:   req.ProjectID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Labels:      req.Labels,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		TaskID         string `json:"task_id"`
		TargetColumnID string `json:"target_column_id"`
		Index          int    `json:"index"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := s.svc.Board.MoveCard(r.Context(), p, board.MoveCardRequest{
		TaskID:         req.TaskID,
		TargetColumnID: req.TargetColumnID,
		Index:          req.Index,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleToggleCard(w http.ResponseWriter, r *http.Request) {
	s.taskMutation(w, r, s.svc.Tasks.Toggle)
}

func (s *Server) handleArchiveTask(w http.ResponseWriter, r *http.Request) {
	s.taskMutation(w, r, s.svc.Tasks.Archive)
}

func (s *Server) handleRestoreTask(w http.ResponseWriter, r *http.Request) {
	s.taskMutation(w, r, s.svc.Tasks.Restore)
}

func (s *Server) taskMutation(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, access.Principal, string) (*task.Task, error),
) {
	p := mustPrincipal(r)

	var req struct {
		TaskID string `json:"task_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	t, err := op(r.Context(), p, req.TaskID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		TaskID string `json:"task_id"`
		UserID string `json:"user_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	t, err := s.svc.Tasks.Assign(r.Context(), p, req.TaskID, req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddLabel(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		TaskID string `json:"task_id"`
		Name   string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	label, err := s.svc.Tasks.AttachLabel(r.Context(), p, req.TaskID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, label)
}

func (s *Server) handleAddImage(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	var req struct {
		TaskID   string `json:"task_id"`
		FileName string `json:"file_name"`
		Data     string `json:"data"`
	}
	if !decode(w, r, &req) {
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base64 data")
		return
	}

	img, err := s.svc.Tasks.AttachImage(r.Context(), p, req.TaskID, req.FileName, data)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, img)
}

func (s *Server) handleCardDetail(w http.ResponseWriter, r *http.Request) {
	p := mustPrincipal(r)

	detail, err := s.svc.Tasks.Detail(r.Context(), p, chi.URLParam(r, "taskID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func mustPrincipal(r *http.Request) access.Principal {
	p, _ := PrincipalFromContext(r.Context())
	return p
}
