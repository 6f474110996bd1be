package activity

import "time"

// Type represents the kind of board event recorded.
type Type string

const (
	TypeProjectCreated Type = "project_created"
	TypeProjectEdited  Type = "project_edited"
	TypeProjectDeleted Type = "project_deleted"
	TypeMemberAdded    Type = "member_added"
	TypeMemberRemoved  Type = "member_removed"
	TypeColumnAdded    Type = "column_added"
	TypeCardAdded      Type = "card_added"
	TypeCardMoved      Type = "card_moved"
	TypeCardToggled    Type = "card_toggled"
	TypeCardArchived   Type = "card_archived"
	TypeCardRestored   Type = "card_restored"
	TypeCardAssigned   Type = "card_assigned"
	TypeLabelAttached  Type = "label_attached"
	TypeImageAttached  Type = "image_attached"
)

// Entry is one event in a project's activity log.
type Entry struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id"`
	TaskID    *string   `json:"task_id,omitempty"`
	ActorID   string    `json:"actor_id"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
