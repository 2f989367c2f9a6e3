package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// runWithFlags parses args through the real flag set and returns the
// resulting configuration.
func runWithFlags(t *testing.T, args ...string) *Configuration {
	t.Helper()
	var cfg *Configuration
	cmd := &cli.Command{
		Name:  "toolagent",
		Flags: GetFlags(),
		Action: func(_ context.Context, c *cli.Command) error {
			cfg = NewConfiguration(c)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"toolagent"}, args...)); err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("action did not run")
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := runWithFlags(t)

	if cfg.Model.Model != DefaultModel {
		t.Errorf("expected default model, got %q", cfg.Model.Model)
	}
	if cfg.Model.Temperature != DefaultTemperature {
		t.Errorf("expected default temperature, got %v", cfg.Model.Temperature)
	}
	if cfg.Agent.MaxRounds != DefaultMaxRounds {
		t.Errorf("expected default max rounds, got %d", cfg.Agent.MaxRounds)
	}
	if cfg.Agent.Prompt != DefaultPrompt {
		t.Errorf("expected default prompt, got %q", cfg.Agent.Prompt)
	}
}

func TestFlagOverrides(t *testing.T) {
	cfg := runWithFlags(t, "--model", "test/model", "--maxrounds", "3", "--temperature", "0.2")

	if cfg.Model.Model != "test/model" {
		t.Errorf("expected flag model, got %q", cfg.Model.Model)
	}
	if cfg.Agent.MaxRounds != 3 {
		t.Errorf("expected max rounds 3, got %d", cfg.Agent.MaxRounds)
	}
	if cfg.Model.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", cfg.Model.Temperature)
	}
}

func TestInvalidMaxRoundsFallsBack(t *testing.T) {
	cfg := runWithFlags(t, "--maxrounds", "0")
	if cfg.Agent.MaxRounds != DefaultMaxRounds {
		t.Errorf("expected fallback to default, got %d", cfg.Agent.MaxRounds)
	}
}

func TestPrintConfigMasksKey(t *testing.T) {
	cfg := runWithFlags(t, "--model", "test/model")
	cfg.API.Key = "sk-secret-key-123"

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	cfg.PrintConfig()
	w.Close()
	os.Stdout = old

	out := make([]byte, 4096)
	n, _ := r.Read(out)
	got := string(out[:n])

	if !strings.Contains(got, "model: test/model") {
		t.Errorf("expected model line, got %q", got)
	}
	if strings.Contains(got, "sk-secret-key-123") {
		t.Errorf("API key printed unmasked: %q", got)
	}
	if !strings.Contains(got, "123") || !strings.Contains(got, "*") {
		t.Errorf("expected masked key with trailing characters, got %q", got)
	}
}

func TestFileSourceLookup(t *testing.T) {
	src := &FileSource{data: map[string]any{
		"model":       "file/model",
		"temperature": 0.9,
		"max_rounds":  7,
	}}

	tests := []struct {
		key   string
		want  string
		found bool
	}{
		{"model", "file/model", true},
		{"temperature", "0.9", true},
		{"max_rounds", "7", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		src.key = tt.key
		got, ok := src.Lookup()
		if ok != tt.found || got != tt.want {
			t.Errorf("Lookup(%s) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.found)
		}
	}
}

func TestConfigFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"model": "json/model", "temperature": 0.1, "system_prompt": "be terse", "max_rounds": 2}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TOOLAGENT_CONFIG", path)
	cfg := runWithFlags(t, "--config", path)

	if cfg.Model.Model != "json/model" {
		t.Errorf("expected model from config file, got %q", cfg.Model.Model)
	}
	if cfg.Agent.Prompt != "be terse" {
		t.Errorf("expected prompt from config file, got %q", cfg.Agent.Prompt)
	}
	if cfg.Agent.MaxRounds != 2 {
		t.Errorf("expected max rounds from config file, got %d", cfg.Agent.MaxRounds)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"model": "json/model"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TOOLAGENT_CONFIG", path)
	t.Setenv("TOOLAGENT_MODEL", "env/model")
	cfg := runWithFlags(t, "--config", path)

	if cfg.Model.Model != "env/model" {
		t.Errorf("expected env var to win, got %q", cfg.Model.Model)
	}
}

func TestMalformedConfigFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"model": not valid json`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TOOLAGENT_CONFIG", path)
	cfg := runWithFlags(t, "--config", path)

	if cfg.Model.Model != DefaultModel {
		t.Errorf("expected defaults after malformed config, got %q", cfg.Model.Model)
	}
}
