package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, title, description, organizer_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Title,
		proj.Description,
		proj.OrganizerID,
		proj.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, title, description, organizer_id, ai_summary, ai_summary_at, created_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	var description, summary sql.NullString
	var summaryAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Title,
		&description,
		&proj.OrganizerID,
		&summary,
		&summaryAt,
		&proj.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	proj.Description = description.String
	if summary.Valid {
		proj.AISummary = &summary.String
	}
	if summaryAt.Valid {
		proj.AISummaryAt = &summaryAt.Time
	}

	return &proj, nil
}

// Update writes a project's title and description
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET title = ?, description = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, proj.Title, proj.Description, proj.ID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a project. Columns, tasks, memberships, labels, and
// images go with it through the schema's cascade rules.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListVisible returns summaries for projects the user organizes or joined.
// Admins see everything.
func (r *ProjectRepository) ListVisible(ctx context.Context, userID string, admin bool) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.title,
			p.description,
			p.organizer_id,
			p.created_at,
			COUNT(DISTINCT pm.user_id) AS member_count,
			COUNT(DISTINCT t.id) AS task_count
		FROM projects p
		LEFT JOIN project_members pm ON pm.project_id = p.id
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE ?
			OR p.organizer_id = ?
			OR EXISTS (
				SELECT 1 FROM project_members m
				WHERE m.project_id = p.id AND m.user_id = ?
			)
		GROUP BY p.id, p.title, p.description, p.organizer_id, p.created_at
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, admin, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var summary project.Summary
		var description sql.NullString
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&description,
			&summary.OrganizerID,
			&summary.CreatedAt,
			&summary.MemberCount,
			&summary.TaskCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summary.Description = description.String
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// OrganizerID returns a project's organizer user id
func (r *ProjectRepository) OrganizerID(ctx context.Context, projectID string) (string, error) {
	var organizerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT organizer_id FROM projects WHERE id = ?`, projectID,
	).Scan(&organizerID)

	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get organizer: %w", err)
	}

	return organizerID, nil
}

// Title returns a project's title
func (r *ProjectRepository) Title(ctx context.Context, projectID string) (string, error) {
	var title string
	err := r.db.QueryRowContext(ctx,
		`SELECT title FROM projects WHERE id = ?`, projectID,
	).Scan(&title)

	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get project title: %w", err)
	}

	return title, nil
}

// AddMember inserts a membership edge
func (r *ProjectRepository) AddMember(ctx context.Context, m *project.Member) error {
	query := `
		INSERT INTO project_members (project_id, user_id, joined_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, m.ProjectID, m.UserID, m.JoinedAt)
	if err != nil {
		if violatesConstraint(err, "UNIQUE") {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember deletes a membership edge
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListMembers returns a project's membership edges with user emails
func (r *ProjectRepository) ListMembers(ctx context.Context, projectID string) ([]project.Member, error) {
	query := `
		SELECT pm.project_id, pm.user_id, u.email, pm.joined_at
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = ?
		ORDER BY pm.joined_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []project.Member
	for rows.Next() {
		var m project.Member
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Email, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// IsMember reports whether the user holds a membership edge
func (r *ProjectRepository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	).Scan(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return count > 0, nil
}

// SetInsights caches generated summary text on the project
func (r *ProjectRepository) SetInsights(ctx context.Context, projectID, summary string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET ai_summary = ?, ai_summary_at = ? WHERE id = ?`,
		summary, at, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to set insights: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
