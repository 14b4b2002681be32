package storage

import (
	"fmt"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tracklite/tracklite/internal/types"
)

// SeedPassword is the credential shared by all demo users.
const SeedPassword = "password123"

// SeedData is a fixed dataset loaded into a fresh store at process start.
// There is no durable persistence; every process begins from this state.
type SeedData struct {
	Users    []*types.User
	Projects []*types.Project
	Issues   []*types.Issue
	Comments []*types.Comment
}

// AvatarURL derives a deterministic avatar reference from a display name.
func AvatarURL(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}

// DefaultSeed builds the demo dataset: three users, one project with key
// PROJ, four issues PROJ-1..PROJ-4, and two comments on PROJ-1.
func DefaultSeed() (*SeedData, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	date := func(day int) time.Time {
		return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
	}

	return &SeedData{
		Users: []*types.User{
			{ID: "u1", Name: "John Doe", Email: "john@example.com", PasswordHash: string(hash), Avatar: AvatarURL("John")},
			{ID: "u2", Name: "Jane Smith", Email: "jane@example.com", PasswordHash: string(hash), Avatar: AvatarURL("Jane")},
			{ID: "u3", Name: "Bob Johnson", Email: "bob@example.com", PasswordHash: string(hash), Avatar: AvatarURL("Bob")},
		},
		Projects: []*types.Project{
			{
				ID:          "p1",
				Key:         "PROJ",
				Name:        "Main Project",
				Description: "Our primary product development",
				LeadID:      "u1",
				CreatedAt:   date(1),
			},
		},
		Issues: []*types.Issue{
			{
				ID:          "PROJ-1",
				Title:       "Setup authentication system",
				Description: "Implement JWT-based authentication for the application",
				Status:      types.StatusInProgress,
				Priority:    types.PriorityHigh,
				Type:        types.TypeFeature,
				AssigneeID:  "u1",
				ReporterID:  "u2",
				ProjectID:   "p1",
				CreatedAt:   date(15),
				UpdatedAt:   date(20),
				Labels:      []string{"backend", "security"},
			},
			{
				ID:          "PROJ-2",
				Title:       "Fix navigation menu on mobile",
				Description: "The navigation menu is not responsive on mobile devices",
				Status:      types.StatusTodo,
				Priority:    types.PriorityMedium,
				Type:        types.TypeBug,
				AssigneeID:  "u2",
				ReporterID:  "u3",
				ProjectID:   "p1",
				CreatedAt:   date(18),
				UpdatedAt:   date(18),
				Labels:      []string{"frontend", "mobile"},
			},
			{
				ID:          "PROJ-3",
				Title:       "Database optimization",
				Description: "Optimize database queries for better performance",
				Status:      types.StatusDone,
				Priority:    types.PriorityLow,
				Type:        types.TypeTask,
				AssigneeID:  "u3",
				ReporterID:  "u1",
				ProjectID:   "p1",
				CreatedAt:   date(10),
				UpdatedAt:   date(25),
				Labels:      []string{"backend", "performance"},
			},
			{
				ID:          "PROJ-4",
				Title:       "User Dashboard Redesign",
				Description: "Complete redesign of the user dashboard with new metrics and visualizations",
				Status:      types.StatusTodo,
				Priority:    types.PriorityHigh,
				Type:        types.TypeEpic,
				AssigneeID:  "u1",
				ReporterID:  "u2",
				ProjectID:   "p1",
				CreatedAt:   date(22),
				UpdatedAt:   date(22),
				Labels:      []string{"frontend", "ux"},
			},
		},
		Comments: []*types.Comment{
			{
				ID:        "c1",
				IssueID:   "PROJ-1",
				UserID:    "u2",
				Content:   "I have started working on the JWT implementation.",
				CreatedAt: date(16),
			},
			{
				ID:        "c2",
				IssueID:   "PROJ-1",
				UserID:    "u1",
				Content:   "Great! Let me know if you need any help.",
				CreatedAt: date(17),
			},
		},
	}, nil
}
