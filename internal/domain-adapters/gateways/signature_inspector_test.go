package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestInspectSignature_UndecodableFile(t *testing.T) {
	tmpDir := t.TempDir()
	sigPath := filepath.Join(tmpDir, "Electrum-4.5.0.tar.gz.Alice.asc")
	if err := os.WriteFile(sigPath, []byte("placeholder"), 0600); err != nil {
		t.Fatal(err)
	}

	info, err := NewSignatureInspector().InspectSignature(context.Background(), sigPath)
	if err != nil {
		t.Fatalf("InspectSignature() error = %v", err)
	}
	if info.Filename != "Electrum-4.5.0.tar.gz.Alice.asc" {
		t.Errorf("Filename = %q, want base name", info.Filename)
	}
	if info.ParseError == "" {
		t.Error("ParseError empty for placeholder content")
	}
}

func TestInspectSignature_MissingFile(t *testing.T) {
	if _, err := NewSignatureInspector().InspectSignature(context.Background(), "/nonexistent/x.Alice.asc"); err == nil {
		t.Error("InspectSignature() with missing file should return error")
	}
}

func TestInspectSignature_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSignatureInspector().InspectSignature(ctx, "unused.asc"); err == nil {
		t.Error("InspectSignature() with cancelled context should return error")
	}
}
