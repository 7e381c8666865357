package yaml

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

func TestReleaseConfigParser_Parse_Valid(t *testing.T) {
	parser := NewReleaseConfigParser()
	yamlData := []byte(`version: 4.5.0
platform_versions:
  android: 4.5.0.1
default_signers:
  - ThomasV
  - SomberNight
display_names:
  ThomasV: Thomas Voegtlin
dist_dir: dist
download_base_url: https://download.example.org/
`)

	cfg, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Version != "4.5.0" {
		t.Errorf("Version = %v, want 4.5.0", cfg.Version)
	}
	if cfg.PlatformVersions.Android != "4.5.0.1" {
		t.Errorf("PlatformVersions.Android = %v, want 4.5.0.1", cfg.PlatformVersions.Android)
	}
	if cfg.PlatformVersions.Windows != "" {
		t.Errorf("PlatformVersions.Windows = %v, want empty (defaults to version)", cfg.PlatformVersions.Windows)
	}
	if !reflect.DeepEqual(cfg.DefaultSigners, []string{"ThomasV", "SomberNight"}) {
		t.Errorf("DefaultSigners = %v", cfg.DefaultSigners)
	}
	if cfg.DisplayName("ThomasV") != "Thomas Voegtlin" {
		t.Errorf("DisplayName(ThomasV) = %v", cfg.DisplayName("ThomasV"))
	}
	if cfg.DisplayName("SomberNight") != "SomberNight" {
		t.Errorf("DisplayName(SomberNight) = %v", cfg.DisplayName("SomberNight"))
	}
	if cfg.DownloadBaseURL != "https://download.example.org" {
		t.Errorf("DownloadBaseURL = %v, trailing slash not trimmed", cfg.DownloadBaseURL)
	}
}

func TestReleaseConfigParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"empty", ``, "empty"},
		{"missing version", "default_signers: [ThomasV]\n", "must have a version"},
		{"unknown key", "version: 4.5.0\nsigners: [ThomasV]\n", "failed to parse YAML"},
		{"version with slash", "version: 4.5/0\n", "path separator"},
		{"bad platform version", "version: 4.5.0\nplatform_versions:\n  macos: \"a b\"\n", "macos version"},
		{"signer with dot", "version: 4.5.0\ndefault_signers: [Thomas.V]\n", "invalid default signer"},
		{"not a mapping", "[]\n", "failed to parse YAML"},
	}

	parser := NewReleaseConfigParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse() error = %v, want message containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestReleaseConfigParser_InvalidVersionWraps(t *testing.T) {
	_, err := NewReleaseConfigParser().Parse([]byte("version: \"4.5 0\"\n"))
	if !errors.Is(err, entities.ErrInvalidVersion) {
		t.Errorf("Parse() error = %v, want ErrInvalidVersion", err)
	}
}
