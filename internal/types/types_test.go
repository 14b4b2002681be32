package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIssueValidation(t *testing.T) {
	valid := Issue{
		Title:      "Valid issue",
		Status:     StatusTodo,
		Priority:   PriorityMedium,
		Type:       TypeFeature,
		ReporterID: "u1",
		ProjectID:  "p1",
	}

	tests := []struct {
		name    string
		mutate  func(i *Issue)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid issue",
			mutate:  func(i *Issue) {},
			wantErr: false,
		},
		{
			name:    "missing title",
			mutate:  func(i *Issue) { i.Title = "" },
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "missing project",
			mutate:  func(i *Issue) { i.ProjectID = "" },
			wantErr: true,
			errMsg:  "projectId is required",
		},
		{
			name:    "missing reporter",
			mutate:  func(i *Issue) { i.ReporterID = "" },
			wantErr: true,
			errMsg:  "reporterId is required",
		},
		{
			name:    "invalid status",
			mutate:  func(i *Issue) { i.Status = "archived" },
			wantErr: true,
			errMsg:  "invalid status",
		},
		{
			name:    "invalid priority",
			mutate:  func(i *Issue) { i.Priority = "critical" },
			wantErr: true,
			errMsg:  "invalid priority",
		},
		{
			name:    "invalid type",
			mutate:  func(i *Issue) { i.Type = "story" },
			wantErr: true,
			errMsg:  "invalid issue type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := valid
			tt.mutate(&issue)

			err := issue.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusTodo, StatusInProgress, StatusDone} {
		if !s.IsValid() {
			t.Errorf("status %s should be valid", s)
		}
	}
	for _, s := range []Status{"", "open", "closed", "TODO"} {
		if s.IsValid() {
			t.Errorf("status %s should be invalid", s)
		}
	}
}

func TestPriorityIsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.IsValid() {
			t.Errorf("priority %s should be valid", p)
		}
	}
	for _, p := range []Priority{"", "critical", "High"} {
		if p.IsValid() {
			t.Errorf("priority %s should be invalid", p)
		}
	}
}

func TestIssueTypeIsValid(t *testing.T) {
	for _, it := range []IssueType{TypeBug, TypeFeature, TypeTask, TypeEpic} {
		if !it.IsValid() {
			t.Errorf("issue type %s should be valid", it)
		}
	}
	for _, it := range []IssueType{"", "story", "chore"} {
		if it.IsValid() {
			t.Errorf("issue type %s should be invalid", it)
		}
	}
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	user := User{
		ID:           "u1",
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$secret",
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Errorf("serialized user leaks password hash: %s", data)
	}
	if strings.Contains(string(data), "password") {
		t.Errorf("serialized user contains a password field: %s", data)
	}
}
