package config

import (
	"testing"
)

func TestInitialize(t *testing.T) {
	err := Initialize()
	if err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	if v == nil {
		t.Fatal("viper instance is nil after Initialize()")
	}
}

func TestDefaults(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	tests := []struct {
		key      string
		expected interface{}
		getter   func(string) interface{}
	}{
		{"json", false, func(k string) interface{} { return GetBool(k) }},
		{"listen", ":8080", func(k string) interface{} { return GetString(k) }},
		{"log-file", "", func(k string) interface{} { return GetString(k) }},
		{"log-max-size", 10, func(k string) interface{} { return GetInt(k) }},
		{"log-max-backups", 3, func(k string) interface{} { return GetInt(k) }},
		{"log-max-age", 7, func(k string) interface{} { return GetInt(k) }},
		{"log-compress", true, func(k string) interface{} { return GetBool(k) }},
	}

	for _, tt := range tests {
		got := tt.getter(tt.key)
		if got != tt.expected {
			t.Errorf("default for %s: expected %v, got %v", tt.key, tt.expected, got)
		}
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TRACKD_LISTEN", ":9999")
	t.Setenv("TRACKD_LOG_FILE", "/tmp/trackd.log")

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	if got := GetString("listen"); got != ":9999" {
		t.Errorf("expected env override :9999, got %s", got)
	}
	if got := GetString("log-file"); got != "/tmp/trackd.log" {
		t.Errorf("expected env override /tmp/trackd.log, got %s", got)
	}
}

func TestSet(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	Set("listen", ":7070")
	if got := GetString("listen"); got != ":7070" {
		t.Errorf("expected :7070 after Set, got %s", got)
	}
}
