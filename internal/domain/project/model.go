package project

import "time"

// Project is a board container owned by exactly one organizer.
type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OrganizerID string     `json:"organizer_id"`
	AISummary   *string    `json:"ai_summary,omitempty"`
	AISummaryAt *time.Time `json:"ai_summary_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Member is a membership edge granting board access to a user.
type Member struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OrganizerID string    `json:"organizer_id"`
	MemberCount int       `json:"member_count"`
	TaskCount   int       `json:"task_count"`
	CreatedAt   time.Time `json:"created_at"`
}
