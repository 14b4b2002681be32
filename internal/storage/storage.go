// Package storage defines the interface for record storage backends.
package storage

import (
	"context"
	"errors"

	"github.com/tracklite/tracklite/internal/types"
)

// Sentinel errors returned by Store implementations. Wrapped errors carry
// detail; callers classify with errors.Is.
var (
	// ErrProjectNotFound is returned when an issue references a project
	// that does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrIssueNotFound is returned when a comment references an issue
	// that does not exist.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrEmailTaken is returned when a signup reuses a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrValidation is returned when a create or update carries invalid
	// field values.
	ErrValidation = errors.New("validation failed")
)

// Store defines the interface for record storage backends.
//
// Lookups by id return (nil, nil) when no record exists; only internal
// failures surface as errors. Returned records are copies hydrated with
// their cross-references resolved at read time, and never carry password
// hashes except FindUserByEmail, which is reserved for authentication.
type Store interface {
	// Users
	ListUsers(ctx context.Context) ([]*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	FindUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, name, email, password string) (*types.User, error)
	Authenticate(ctx context.Context, email, password string) (*types.User, error)

	// Projects
	ListProjects(ctx context.Context) ([]*types.Project, error)
	GetProject(ctx context.Context, id string) (*types.Project, error)
	CreateProject(ctx context.Context, name, key, description, leadID string) (*types.Project, error)
	DeleteProject(ctx context.Context, id string) (bool, error)

	// Issues
	ListIssues(ctx context.Context, projectID string) ([]*types.Issue, error)
	GetIssue(ctx context.Context, id string) (*types.Issue, error)
	CreateIssue(ctx context.Context, issue *types.Issue) error
	UpdateIssue(ctx context.Context, id string, updates map[string]interface{}) (*types.Issue, error)
	DeleteIssue(ctx context.Context, id string) (bool, error)

	// Comments
	ListComments(ctx context.Context, issueID string) ([]*types.Comment, error)
	CreateComment(ctx context.Context, issueID, userID, content string) (*types.Comment, error)

	// Statistics
	Stats(ctx context.Context) (*types.Statistics, error)

	// Lifecycle
	Close() error
}
