// Package insights generates a natural-language summary of a project
// board through an external completion API. The interesting state lives
// elsewhere; this is prompt formatting plus one HTTP call, with the
// result cached on the project.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

// ErrNotConfigured indicates no API key or endpoint is set.
var ErrNotConfigured = errors.New("insights API not configured")

// Result is a generated summary with its timestamp.
type Result struct {
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Repository is the slice of project persistence insights needs.
type Repository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	SetInsights(ctx context.Context, projectID, summary string, at time.Time) error
}

// Service aggregates board data and calls the completion API.
type Service struct {
	projects Repository
	columns  board.ColumnRepository
	tasks    task.Repository
	labels   task.LabelRepository
	guard    *access.Guard
	client   *http.Client
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

// NewService creates a new insights service. A nil client falls back to a
// default with a request timeout.
func NewService(
	projects Repository,
	columns board.ColumnRepository,
	tasks task.Repository,
	labels task.LabelRepository,
	guard *access.Guard,
	client *http.Client,
	endpoint, apiKey string,
	logger *slog.Logger,
) *Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		projects: projects,
		columns:  columns,
		tasks:    tasks,
		labels:   labels,
		guard:    guard,
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   logger,
	}
}

// Generate produces a fresh summary for the project and caches it.
func (s *Service) Generate(ctx context.Context, p access.Principal, projectID string) (*Result, error) {
	role, err := s.guard.Authorize(ctx, p, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, err
	}
	if !role.CanMutateBoard() {
		return nil, access.ErrDenied
	}

	if s.endpoint == "" || s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	boardData, err := s.aggregateBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary, err := s.complete(ctx, craftPrompt(proj.Title, boardData))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.projects.SetInsights(ctx, projectID, summary, now); err != nil {
		return nil, fmt.Errorf("caching summary: %w", err)
	}

	return &Result{Summary: summary, GeneratedAt: now}, nil
}

// aggregateBoard renders the board as a text outline: each column with
// its active tasks in order, then its archived tasks newest first.
func (s *Service) aggregateBoard(ctx context.Context, projectID string) (string, error) {
	cols, err := s.columns.ListByProject(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("listing columns: %w", err)
	}
	all, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("listing tasks: %w", err)
	}

	byColumn := make(map[string][]task.Task)
	for _, t := range all {
		if t.ColumnID == nil {
			continue
		}
		byColumn[*t.ColumnID] = append(byColumn[*t.ColumnID], t)
	}

	var sb strings.Builder
	for _, col := range cols {
		fmt.Fprintf(&sb, "## Column: %s\n", col.Title)

		var active, archived []task.Task
		for _, t := range byColumn[col.ID] {
			if t.Archived {
				archived = append(archived, t)
			} else {
				active = append(active, t)
			}
		}
		sort.SliceStable(active, func(i, j int) bool { return active[i].Order < active[j].Order })
		sort.SliceStable(archived, func(i, j int) bool {
			ti, tj := archived[i].ArchivedAt, archived[j].ArchivedAt
			if ti == nil || tj == nil {
				return tj == nil && ti != nil
			}
			return ti.After(*tj)
		})

		fmt.Fprintf(&sb, "Active Tasks (%d):\n", len(active))
		for _, t := range active {
			fmt.Fprintf(&sb, "  - %s\n", t.Title)
			if t.Description != "" {
				fmt.Fprintf(&sb, "    Description: %s\n", t.Description)
			}
			labels, err := s.labels.ListByTask(ctx, t.ID)
			if err != nil {
				return "", fmt.Errorf("listing labels: %w", err)
			}
			if len(labels) > 0 {
				names := make([]string, len(labels))
				for i, l := range labels {
					names[i] = l.Name
				}
				fmt.Fprintf(&sb, "    Labels: %s\n", strings.Join(names, ", "))
			}
			fmt.Fprintf(&sb, "    Status: %s\n", t.Status)
		}

		if len(archived) > 0 {
			fmt.Fprintf(&sb, "Archived Tasks (%d):\n", len(archived))
			for _, t := range archived {
				when := ""
				if t.ArchivedAt != nil {
					when = t.ArchivedAt.Format("Jan 02")
				}
				fmt.Fprintf(&sb, "  - %s (archived %s)\n", t.Title, when)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func craftPrompt(projectTitle, boardData string) string {
	return fmt.Sprintf(`You are a project strategist analyzing a Kanban board for %q.

Based on the following board data, provide a concise executive summary that includes:
1. Project overview: 2-3 sentences on the current state.
2. Progress: what has been accomplished (completed and archived items).
3. Current focus: what the team is actively working on.
4. Bottlenecks: columns with too many cards or cards that look stalled.
5. Recommendations: 2-3 actionable next steps.

Keep the response concise and actionable. Use markdown formatting.

---

## Board Data:

%s

---

Provide your analysis:`, projectTitle, boardData)
}

type completionRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type completionResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling insights API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insights API returned status %d", resp.StatusCode)
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("insights API returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
