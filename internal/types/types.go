package types

import (
	"fmt"
	"time"
)

// User represents an account that can sign in, report issues, and comment.
// PasswordHash is never serialized; read paths additionally zero it so a
// hydrated record can be handed to clients as-is.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar,omitempty"`
}

// Project groups issues under a short uppercase key that becomes the
// human-readable issue-number prefix.
type Project struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeadID      string    `json:"leadId"`
	CreatedAt   time.Time `json:"createdAt"`

	// Hydrated at read time, not stored.
	Lead *User `json:"lead,omitempty"`
}

// Issue represents a trackable work item on the board
type Issue struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Type        IssueType `json:"type"`
	AssigneeID  string    `json:"assigneeId,omitempty"`
	ReporterID  string    `json:"reporterId"`
	ProjectID   string    `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Labels      []string  `json:"labels"`

	// Hydrated at read time, not stored.
	Assignee *User      `json:"assignee,omitempty"`
	Reporter *User      `json:"reporter,omitempty"`
	Comments []*Comment `json:"comments,omitempty"`
}

// Validate checks if the issue has valid field values
func (i *Issue) Validate() error {
	if len(i.Title) == 0 {
		return fmt.Errorf("title is required")
	}
	if i.ProjectID == "" {
		return fmt.Errorf("projectId is required")
	}
	if i.ReporterID == "" {
		return fmt.Errorf("reporterId is required")
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", i.Status)
	}
	if !i.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", i.Priority)
	}
	if !i.Type.IsValid() {
		return fmt.Errorf("invalid issue type: %s", i.Type)
	}
	return nil
}

// Comment is free text attached to an issue by a user
type Comment struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issueId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	// Hydrated at read time, not stored.
	User *User `json:"user,omitempty"`
}

// Status represents the board column an issue sits in
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority represents the urgency of an issue
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority value is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IssueType categorizes the kind of work
type IssueType string

const (
	TypeBug     IssueType = "bug"
	TypeFeature IssueType = "feature"
	TypeTask    IssueType = "task"
	TypeEpic    IssueType = "epic"
)

// IsValid checks if the issue type value is valid
func (t IssueType) IsValid() bool {
	switch t {
	case TypeBug, TypeFeature, TypeTask, TypeEpic:
		return true
	}
	return false
}

// Statistics provides aggregate metrics over the store
type Statistics struct {
	TotalUsers       int `json:"total_users"`
	TotalProjects    int `json:"total_projects"`
	TotalIssues      int `json:"total_issues"`
	TotalComments    int `json:"total_comments"`
	TodoIssues       int `json:"todo_issues"`
	InProgressIssues int `json:"in_progress_issues"`
	DoneIssues       int `json:"done_issues"`
}
