package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestSettings_ApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		s := Settings{Name: "tracker"}
		s.ApplyDefaults()
		if s.Environment != "development" {
			t.Errorf("expected development, got %q", s.Environment)
		}
		if !s.Debug {
			t.Error("expected debug on in development")
		}
	})

	t.Run("production keeps debug off", func(t *testing.T) {
		s := Settings{Name: "tracker", Environment: "production"}
		s.ApplyDefaults()
		if s.Debug {
			t.Error("expected debug off in production")
		}
	})

	t.Run("max iterations defaults to 10", func(t *testing.T) {
		s := Settings{Name: "tracker"}
		s.ApplyDefaults()
		if s.Propagation.MaxIterations != 10 {
			t.Errorf("expected 10, got %d", s.Propagation.MaxIterations)
		}
	})

	t.Run("service name flows into logging", func(t *testing.T) {
		s := Settings{Name: "tracker"}
		s.ApplyDefaults()
		if s.Logging.ServiceName != "tracker" {
			t.Errorf("expected logging service name tracker, got %q", s.Logging.ServiceName)
		}
	})
}

func TestDefaultSettings_ProtectionsOn(t *testing.T) {
	s := DefaultSettings("tracker")
	p := s.Policy()
	if !p.SkipComplete || !p.SkipLocked || !p.SkipOverridden {
		t.Errorf("expected all protections on by default, got %+v", p)
	}
	if p.BusinessDays {
		t.Error("expected calendar-day offsets by default")
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(s *Settings) {}, ""},
		{"missing name", func(s *Settings) { s.Name = "" }, "name: is required"},
		{"bad environment", func(s *Settings) { s.Environment = "qa" }, "environment: must be one of"},
		{"zero iterations", func(s *Settings) { s.Propagation.MaxIterations = 0 }, "must be at least 1"},
		{"duplicate rank labels", func(s *Settings) { s.RankOrder = []string{"A1", "B1", "A1"} }, "duplicate A1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings("tracker")
			s.ApplyDefaults()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestSettings_Ranks(t *testing.T) {
	s := Settings{RankOrder: []string{"A1", "B1"}}
	ranks := s.Ranks()
	if ranks.Index("B1") != 1 {
		t.Errorf("expected configured order to carry over, got index %d", ranks.Index("B1"))
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: tracker
environment: staging
rank_order: [A1, A2, B1]
schedule:
  business_days: true
propagation:
  skip_locked: true
  max_iterations: 5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	var s Settings
	if err := Load("tracker", &s, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Environment != "staging" {
		t.Errorf("expected staging, got %q", s.Environment)
	}
	if len(s.RankOrder) != 3 || s.RankOrder[2] != "B1" {
		t.Errorf("expected rank order from file, got %v", s.RankOrder)
	}
	if !s.Schedule.BusinessDays {
		t.Error("expected business days on")
	}
	if s.Propagation.MaxIterations != 5 {
		t.Errorf("expected 5 iterations, got %d", s.Propagation.MaxIterations)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("environment: staging\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("ENVIRONMENT", "production")

	var s Settings
	if err := Load("tracker", &s, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Environment != "production" {
		t.Errorf("expected env var to win, got %q", s.Environment)
	}
}

func TestLoad_MissingFileSucceeds(t *testing.T) {
	var s Settings
	if err := Load("tracker", &s, WithConfigFile("/nonexistent/config.yml")); err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
}

func TestResolver_ExplicitPathWins(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./config.yml": true}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("tracker", LoaderConfig{ConfigFile: "/etc/tracker/config.yml"})
	if files.ConfigFile != "/etc/tracker/config.yml" {
		t.Errorf("explicit path must win, got %q", files.ConfigFile)
	}
}

func TestResolver_SearchesStandardLocations(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/config.yml": true,
		"./.env.tracker":      true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("tracker", LoaderConfig{})
	if files.ConfigFile != "./config/config.yml" {
		t.Errorf("expected config found in ./config/, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.tracker" {
		t.Errorf("expected app-scoped env file, got %q", files.EnvFile)
	}
}

func TestKeyVariants(t *testing.T) {
	variants := keyVariants("PROPAGATION_MAX_ITERATIONS")

	want := map[string]bool{
		"propagation_max_iterations": false,
		"propagation.max.iterations": false,
		"propagation.max_iterations": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("expected variant %q", k)
		}
	}
}
