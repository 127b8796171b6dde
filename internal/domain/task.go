package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MsgTitleRequired is reported when a new task has no title.
const MsgTitleRequired = "Title is required"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask creates an incomplete task for owner.
func NewTask(ownerID uuid.UUID, title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError(MsgTitleRequired)
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("Task ID cannot be empty")
	}
	if t.UserID == uuid.Nil {
		return NewValidationError("Task owner cannot be empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("Title cannot be empty")
	}
	return nil
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool

	// ClearDescription sets the description to null. Description wins when
	// both are set.
	ClearDescription bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil && !p.ClearDescription
}

// Validate rejects a supplied but blank title.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("Title cannot be empty")
	}
	return nil
}

// Apply copies the supplied fields onto t and bumps UpdatedAt when anything
// was supplied. It reports whether t changed.
func (t *Task) Apply(p TaskPatch, now time.Time) bool {
	if p.IsEmpty() {
		return false
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	switch {
	case p.Description != nil:
		desc := *p.Description
		t.Description = &desc
	case p.ClearDescription:
		t.Description = nil
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = now.UTC()
	return true
}
