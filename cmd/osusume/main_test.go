package main

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/hyperjump/osusume/internal/authorindex"
)

func TestQueryArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"wizard school", "-k", "5"},
			expected: []string{"-k", "5", "wizard school"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-user", "3", "wizard school"},
			expected: []string{"-user", "3", "wizard school"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"wizard school"},
			expected: []string{"wizard school"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-boost", "2.5"},
			expected: []string{"-boost", "2.5", "one", "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("queryArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildQueryText(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"dune"}, "dune"},
		{"multiple words", []string{"wizard", "school"}, "wizard school"},
		{"single quoted phrase", []string{"wizard school"}, "wizard school"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQueryText(tt.args)
			if got != tt.expected {
				t.Errorf("buildQueryText(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestComponentsIndexSwap(t *testing.T) {
	var c Components
	if c.Index() != nil {
		t.Fatal("expected nil index before first swap")
	}

	// Concurrent swaps (the reload callback) and reads (the shutdown path)
	// must be safe under the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.SwapIndex(authorindex.New())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Index()
			}
		}()
	}
	wg.Wait()

	if c.Index() == nil {
		t.Error("expected index after swaps")
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	content := `
debug: true
server:
  port: 9999
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origWd)

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Debug || cfg.Server.Port != 9999 {
		t.Errorf("cwd config not used: debug=%v port=%d", cfg.Debug, cfg.Server.Port)
	}
	if resolved != filepath.Join(dir, "config.yaml") {
		t.Errorf("resolved path = %q, want cwd config", resolved)
	}
}

func TestLoadConfig_explicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 1234\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 1234 {
		t.Errorf("port = %d, want 1234", cfg.Server.Port)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
}
