package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReleaseConfigRepository_Load_Success(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "release.yml")

	testYAML := []byte(`version: 4.5.0
default_signers: [ThomasV]
`)
	if err := os.WriteFile(path, testYAML, 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := NewReleaseConfigRepository().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != "4.5.0" {
		t.Errorf("Load() version = %v, want 4.5.0", cfg.Version)
	}
}

func TestReleaseConfigRepository_Load_NotFound(t *testing.T) {
	_, err := NewReleaseConfigRepository().Load(context.Background(), filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
