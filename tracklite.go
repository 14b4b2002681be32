// Package tracklite provides a minimal public API for embedding the issue
// tracker's store in other programs.
//
// The store is volatile and single-process: it is loaded from the built-in
// demo dataset at startup and owns all records until process exit. This
// package exports only the essential types and constructors; the full
// storage surface lives on the storage.Store interface.
package tracklite

import (
	"github.com/tracklite/tracklite/internal/storage"
	"github.com/tracklite/tracklite/internal/storage/memory"
	"github.com/tracklite/tracklite/internal/types"
)

// Core types for working with records
type (
	User      = types.User
	Project   = types.Project
	Issue     = types.Issue
	Comment   = types.Comment
	Status    = types.Status
	Priority  = types.Priority
	IssueType = types.IssueType
)

// Store is the storage surface backing all operations
type Store = storage.Store

// Status constants
const (
	StatusTodo       = types.StatusTodo
	StatusInProgress = types.StatusInProgress
	StatusDone       = types.StatusDone
)

// Priority constants
const (
	PriorityLow    = types.PriorityLow
	PriorityMedium = types.PriorityMedium
	PriorityHigh   = types.PriorityHigh
	PriorityUrgent = types.PriorityUrgent
)

// Issue type constants
const (
	TypeBug     = types.TypeBug
	TypeFeature = types.TypeFeature
	TypeTask    = types.TypeTask
	TypeEpic    = types.TypeEpic
)

// NewStore creates an empty in-memory store.
func NewStore() Store {
	return memory.New()
}

// NewSeededStore creates an in-memory store populated with the built-in
// demo dataset: three users, one project with key PROJ, issues
// PROJ-1..PROJ-4 and two comments on PROJ-1.
func NewSeededStore() (Store, error) {
	seed, err := storage.DefaultSeed()
	if err != nil {
		return nil, err
	}

	store := memory.New()
	if err := store.Load(seed); err != nil {
		return nil, err
	}

	return store, nil
}
