package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PSH_CONFIG", "PSH_PREFS_PATH", "PSH_LOG_LEVEL", "PSH_LOG_FORMAT",
		"PSH_LOG_OUTPUT", "PSH_HISTORY_LIMIT", "PSH_MATRIX_DURATION", "PSH_WRAP"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "console" {
		t.Errorf("log = %s/%s, want warn/console", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.MatrixDuration != 5*time.Second {
		t.Errorf("MatrixDuration = %s, want 5s", cfg.MatrixDuration)
	}
	if cfg.HistoryLimit != 500 || cfg.Wrap != 80 {
		t.Errorf("HistoryLimit, Wrap = %d, %d", cfg.HistoryLimit, cfg.Wrap)
	}
	if filepath.Base(cfg.PrefsPath) != "prefs.db" {
		t.Errorf("PrefsPath = %q", cfg.PrefsPath)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "psh.yaml")
	doc := "log_level: debug\nlog_format: json\nmatrix_duration: 2s\nwrap: 60\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PSH_CONFIG", path)
	t.Setenv("PSH_WRAP", "100")
	t.Setenv("PSH_HISTORY_LIMIT", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %s/%s, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.MatrixDuration != 2*time.Second {
		t.Errorf("MatrixDuration = %s, want 2s", cfg.MatrixDuration)
	}
	if cfg.Wrap != 100 {
		t.Errorf("Wrap = %d, want env override 100", cfg.Wrap)
	}
	if cfg.HistoryLimit != 500 {
		t.Errorf("HistoryLimit = %d, want default for bad env value", cfg.HistoryLimit)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	write := func(name, doc string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"bad yaml", write("bad.yaml", "log_level: [")},
		{"bad duration", write("dur.yaml", "matrix_duration: soon\n")},
		{"bad format", write("fmt.yaml", "log_format: xml\n")},
		{"zero duration", write("zero.yaml", "matrix_duration: 0s\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}
