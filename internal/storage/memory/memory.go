// Package memory implements the storage interface using in-memory data
// structures. State is volatile: it is loaded from the built-in seed at
// startup and discarded at process exit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tracklite/tracklite/internal/storage"
	"github.com/tracklite/tracklite/internal/types"
)

// Store implements the storage.Store interface using in-memory maps
type Store struct {
	mu sync.RWMutex // Protects all maps and counters

	users    map[string]*types.User
	projects map[string]*types.Project
	issues   map[string]*types.Issue
	comments map[string][]*types.Comment // IssueID -> comments in insertion order

	// Monotonic id counters holding the last number handed out. They are
	// independent of collection size so delete-then-create cannot collide
	// with a surviving record's id.
	userSeq    int
	projectSeq int
	commentSeq int
	issueSeq   int // store-wide, shared by all projects

	closed bool
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		users:    make(map[string]*types.User),
		projects: make(map[string]*types.Project),
		issues:   make(map[string]*types.Issue),
		comments: make(map[string][]*types.Comment),
	}
}

// Load populates the store from a seed dataset and advances every id
// counter past the highest number seen, so the first issue created on the
// default seed is PROJ-5.
func (s *Store) Load(seed *storage.SeedData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range seed.Users {
		if user == nil {
			continue
		}
		s.users[user.ID] = user
		if n := numericSuffix(user.ID, "u"); n > s.userSeq {
			s.userSeq = n
		}
	}

	for _, project := range seed.Projects {
		if project == nil {
			continue
		}
		s.projects[project.ID] = project
		if n := numericSuffix(project.ID, "p"); n > s.projectSeq {
			s.projectSeq = n
		}
	}

	for _, issue := range seed.Issues {
		if issue == nil {
			continue
		}
		if _, ok := s.projects[issue.ProjectID]; !ok {
			return fmt.Errorf("seed issue %s references unknown project %s", issue.ID, issue.ProjectID)
		}
		s.issues[issue.ID] = issue
		if n := issueNumber(issue.ID); n > s.issueSeq {
			s.issueSeq = n
		}
	}

	for _, comment := range seed.Comments {
		if comment == nil {
			continue
		}
		if _, ok := s.issues[comment.IssueID]; !ok {
			return fmt.Errorf("seed comment %s references unknown issue %s", comment.ID, comment.IssueID)
		}
		s.comments[comment.IssueID] = append(s.comments[comment.IssueID], comment)
		if n := numericSuffix(comment.ID, "c"); n > s.commentSeq {
			s.commentSeq = n
		}
	}

	return nil
}

// numericSuffix extracts the number from an id like "u3" -> 3.
// Returns 0 when the id does not match the prefix.
func numericSuffix(id, prefix string) int {
	if !strings.HasPrefix(id, prefix) {
		return 0
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil {
		return 0
	}
	return n
}

// issueNumber extracts the sequence from an issue id like "PROJ-123" -> 123
func issueNumber(id string) int {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// sanitizeUser returns a copy with the password hash stripped
func sanitizeUser(u *types.User) *types.User {
	userCopy := *u
	userCopy.PasswordHash = ""
	return &userCopy
}

// normalizeLabels trims whitespace, removes empty strings, and deduplicates labels
func normalizeLabels(ss []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ListUsers returns all users with credentials stripped
func (s *Store) ListUsers(ctx context.Context) ([]*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*types.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, sanitizeUser(user))
	}

	sort.Slice(users, func(i, j int) bool {
		return numericSuffix(users[i].ID, "u") < numericSuffix(users[j].ID, "u")
	})

	return users, nil
}

// GetUser retrieves a user by id with the credential stripped
func (s *Store) GetUser(ctx context.Context, id string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, nil
	}

	return sanitizeUser(user), nil
}

// FindUserByEmail retrieves a user by email INCLUDING the password hash.
// For authentication only; never serve the result to clients.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.findByEmailLocked(email)
	if user == nil {
		return nil, nil
	}

	userCopy := *user
	return &userCopy, nil
}

func (s *Store) findByEmailLocked(email string) *types.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

// CreateUser registers a new user with a hashed credential and a
// deterministic avatar derived from the name
func (s *Store) CreateUser(ctx context.Context, name, email, password string) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", storage.ErrValidation)
	}
	if s.findByEmailLocked(email) != nil {
		return nil, storage.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	s.userSeq++
	user := &types.User{
		ID:           fmt.Sprintf("u%d", s.userSeq),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       storage.AvatarURL(name),
	}
	s.users[user.ID] = user

	return sanitizeUser(user), nil
}

// Authenticate checks an email/password pair. A wrong password or unknown
// email is a rejection, not an error: the result is (nil, nil).
func (s *Store) Authenticate(ctx context.Context, email, password string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.findByEmailLocked(email)
	if user == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	return sanitizeUser(user), nil
}

// ListProjects returns all projects with their lead hydrated
func (s *Store) ListProjects(ctx context.Context) ([]*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*types.Project, 0, len(s.projects))
	for _, project := range s.projects {
		projects = append(projects, s.hydrateProjectLocked(project))
	}

	sort.Slice(projects, func(i, j int) bool {
		return numericSuffix(projects[i].ID, "p") < numericSuffix(projects[j].ID, "p")
	})

	return projects, nil
}

// GetProject retrieves a project by id with its lead hydrated
func (s *Store) GetProject(ctx context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[id]
	if !exists {
		return nil, nil
	}

	return s.hydrateProjectLocked(project), nil
}

// hydrateProjectLocked copies a project and resolves its lead. A missing
// lead user leaves the field absent rather than erroring.
func (s *Store) hydrateProjectLocked(project *types.Project) *types.Project {
	projectCopy := *project
	if lead, ok := s.users[project.LeadID]; ok {
		projectCopy.Lead = sanitizeUser(lead)
	}
	return &projectCopy
}

// CreateProject creates a project. The key is stored as given; the lead
// reference is not validated (resolution happens at read time).
func (s *Store) CreateProject(ctx context.Context, name, key, description, leadID string) (*types.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || key == "" {
		return nil, fmt.Errorf("%w: name and key are required", storage.ErrValidation)
	}

	s.projectSeq++
	project := &types.Project{
		ID:          fmt.Sprintf("p%d", s.projectSeq),
		Key:         key,
		Name:        name,
		Description: description,
		LeadID:      leadID,
		CreatedAt:   time.Now(),
	}
	s.projects[project.ID] = project

	return s.hydrateProjectLocked(project), nil
}

// DeleteProject deletes a project and cascades to every issue referencing
// it, and transitively to those issues' comments. Returns whether the
// project existed.
func (s *Store) DeleteProject(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.projects[id]

	for issueID, issue := range s.issues {
		if issue.ProjectID == id {
			delete(s.comments, issueID)
			delete(s.issues, issueID)
		}
	}
	delete(s.projects, id)

	return exists, nil
}

// ListIssues returns issues hydrated with assignee, reporter and comments,
// optionally filtered by exact project id. Order follows the store-wide
// sequence number, which is creation order.
func (s *Store) ListIssues(ctx context.Context, projectID string) ([]*types.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var issues []*types.Issue
	for _, issue := range s.issues {
		if projectID != "" && issue.ProjectID != projectID {
			continue
		}
		issues = append(issues, s.hydrateIssueLocked(issue))
	}

	sort.Slice(issues, func(i, j int) bool {
		return issueNumber(issues[i].ID) < issueNumber(issues[j].ID)
	})

	return issues, nil
}

// GetIssue retrieves a single issue with the same hydration as ListIssues
func (s *Store) GetIssue(ctx context.Context, id string) (*types.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issue, exists := s.issues[id]
	if !exists {
		return nil, nil
	}

	return s.hydrateIssueLocked(issue), nil
}

// hydrateIssueLocked copies an issue and resolves its cross-references.
// Unresolvable references are omitted from the copy, never an error.
func (s *Store) hydrateIssueLocked(issue *types.Issue) *types.Issue {
	issueCopy := *issue
	// Labels marshal as [] rather than null even when empty
	labels := make([]string, len(issue.Labels))
	copy(labels, issue.Labels)
	issueCopy.Labels = labels

	if issue.AssigneeID != "" {
		if assignee, ok := s.users[issue.AssigneeID]; ok {
			issueCopy.Assignee = sanitizeUser(assignee)
		}
	}
	if reporter, ok := s.users[issue.ReporterID]; ok {
		issueCopy.Reporter = sanitizeUser(reporter)
	}
	issueCopy.Comments = s.commentsLocked(issue.ID)

	return &issueCopy
}

// CreateIssue creates a new issue, allocating its id from the project key
// and the store-wide sequence counter. The issue is mutated in place with
// id and timestamps set.
func (s *Store) CreateIssue(ctx context.Context, issue *types.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[issue.ProjectID]
	if !exists {
		return fmt.Errorf("%w: %s", storage.ErrProjectNotFound, issue.ProjectID)
	}

	if err := issue.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	now := time.Now()
	s.issueSeq++
	issue.ID = fmt.Sprintf("%s-%d", project.Key, s.issueSeq)
	issue.CreatedAt = now
	issue.UpdatedAt = now
	issue.Labels = normalizeLabels(issue.Labels)

	// Stored records never carry hydrated fields; those are resolved on read.
	issue.Assignee = nil
	issue.Reporter = nil
	issue.Comments = nil

	// The map owns a private copy; the caller keeps the passed-in record.
	stored := *issue
	stored.Labels = make([]string, len(issue.Labels))
	copy(stored.Labels, issue.Labels)
	s.issues[stored.ID] = &stored

	return nil
}

// UpdateIssue merges a partial field map into an existing issue. The id and
// createdAt fields are immutable; updatedAt is refreshed on every call.
// Returns (nil, nil) when the id is unknown.
func (s *Store) UpdateIssue(ctx context.Context, id string, updates map[string]interface{}) (*types.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, exists := s.issues[id]
	if !exists {
		return nil, nil
	}

	// Validate before applying anything: the merge is all-or-nothing.
	if err := s.validateUpdatesLocked(updates); err != nil {
		return nil, err
	}

	for key, value := range updates {
		switch key {
		case "title":
			if v, ok := value.(string); ok {
				issue.Title = v
			}
		case "description":
			if v, ok := value.(string); ok {
				issue.Description = v
			}
		case "status":
			if v, ok := value.(string); ok {
				issue.Status = types.Status(v)
			}
		case "priority":
			if v, ok := value.(string); ok {
				issue.Priority = types.Priority(v)
			}
		case "type":
			if v, ok := value.(string); ok {
				issue.Type = types.IssueType(v)
			}
		case "assigneeId":
			if v, ok := value.(string); ok {
				issue.AssigneeID = v
			} else if value == nil {
				issue.AssigneeID = ""
			}
		case "reporterId":
			if v, ok := value.(string); ok && v != "" {
				issue.ReporterID = v
			}
		case "projectId":
			if v, ok := value.(string); ok {
				issue.ProjectID = v
			}
		case "labels":
			issue.Labels = normalizeLabels(toStringSlice(value))
		}
	}

	issue.UpdatedAt = time.Now()

	return s.hydrateIssueLocked(issue), nil
}

func (s *Store) validateUpdatesLocked(updates map[string]interface{}) error {
	for key, value := range updates {
		switch key {
		case "title":
			if v, ok := value.(string); ok && v == "" {
				return fmt.Errorf("%w: title is required", storage.ErrValidation)
			}
		case "status":
			if v, ok := value.(string); ok && !types.Status(v).IsValid() {
				return fmt.Errorf("%w: invalid status: %s", storage.ErrValidation, v)
			}
		case "priority":
			if v, ok := value.(string); ok && !types.Priority(v).IsValid() {
				return fmt.Errorf("%w: invalid priority: %s", storage.ErrValidation, v)
			}
		case "type":
			if v, ok := value.(string); ok && !types.IssueType(v).IsValid() {
				return fmt.Errorf("%w: invalid issue type: %s", storage.ErrValidation, v)
			}
		case "projectId":
			if v, ok := value.(string); ok {
				if _, exists := s.projects[v]; !exists {
					return fmt.Errorf("%w: %s", storage.ErrProjectNotFound, v)
				}
			}
		}
	}
	return nil
}

// toStringSlice converts a decoded JSON array into labels
func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// DeleteIssue deletes an issue and all of its comments. Returns whether
// the issue existed.
func (s *Store) DeleteIssue(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.issues[id]

	delete(s.comments, id)
	delete(s.issues, id)

	return exists, nil
}

// ListComments returns an issue's comments hydrated with their authors,
// ascending by creation time. Ties keep insertion order.
func (s *Store) ListComments(ctx context.Context, issueID string) ([]*types.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.commentsLocked(issueID), nil
}

func (s *Store) commentsLocked(issueID string) []*types.Comment {
	stored := s.comments[issueID]
	if len(stored) == 0 {
		return nil
	}

	comments := make([]*types.Comment, 0, len(stored))
	for _, comment := range stored {
		commentCopy := *comment
		if user, ok := s.users[comment.UserID]; ok {
			commentCopy.User = sanitizeUser(user)
		}
		comments = append(comments, &commentCopy)
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments
}

// CreateComment attaches a comment to an issue and bumps the issue's
// updatedAt. The authoring user is not validated; hydration simply omits
// an unresolvable author.
func (s *Store) CreateComment(ctx context.Context, issueID, userID, content string) (*types.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, exists := s.issues[issueID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrIssueNotFound, issueID)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", storage.ErrValidation)
	}

	now := time.Now()
	s.commentSeq++
	comment := &types.Comment{
		ID:        fmt.Sprintf("c%d", s.commentSeq),
		IssueID:   issueID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
	}
	s.comments[issueID] = append(s.comments[issueID], comment)
	issue.UpdatedAt = now

	commentCopy := *comment
	if user, ok := s.users[userID]; ok {
		commentCopy.User = sanitizeUser(user)
	}

	return &commentCopy, nil
}

// Stats returns aggregate counts over the store
func (s *Store) Stats(ctx context.Context) (*types.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &types.Statistics{
		TotalUsers:    len(s.users),
		TotalProjects: len(s.projects),
		TotalIssues:   len(s.issues),
	}

	for _, comments := range s.comments {
		stats.TotalComments += len(comments)
	}

	for _, issue := range s.issues {
		switch issue.Status {
		case types.StatusTodo:
			stats.TodoIssues++
		case types.StatusInProgress:
			stats.InProgressIssues++
		case types.StatusDone:
			stats.DoneIssues++
		}
	}

	return stats, nil
}

// Close marks the store closed. There is nothing to flush; state is
// intentionally volatile.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
