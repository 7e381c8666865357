// Package yaml provides YAML-based release configuration parsing and repository implementations.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/domain/services"
	"gopkg.in/yaml.v3"
)

// yamlReleaseConfig represents the raw YAML structure of release.yml
type yamlReleaseConfig struct {
	Version          string               `yaml:"version"`
	PlatformVersions yamlPlatformVersions `yaml:"platform_versions"`
	DefaultSigners   []string             `yaml:"default_signers"`
	DisplayNames     map[string]string    `yaml:"display_names"`
	DistDir          string               `yaml:"dist_dir"`
	DownloadBaseURL  string               `yaml:"download_base_url"`
}

type yamlPlatformVersions struct {
	Windows string `yaml:"windows"`
	MacOS   string `yaml:"macos"`
	Android string `yaml:"android"`
}

// ReleaseConfigParser parses YAML release files
type ReleaseConfigParser struct{}

// NewReleaseConfigParser creates a new YAML parser
func NewReleaseConfigParser() *ReleaseConfigParser {
	return &ReleaseConfigParser{}
}

// ParseFile parses a YAML release file into a ReleaseConfig entity
func (p *ReleaseConfigParser) ParseFile(filePath string) (*entities.ReleaseConfig, error) {
	//nolint:gosec // G304: filePath is the operator-supplied release description
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a ReleaseConfig entity. Unknown keys are rejected.
func (p *ReleaseConfigParser) Parse(data []byte) (*entities.ReleaseConfig, error) {
	var raw yamlReleaseConfig

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("release config is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if raw.Version == "" {
		return nil, fmt.Errorf("release config must have a version")
	}
	if err := services.ValidateVersion(raw.Version); err != nil {
		return nil, err
	}

	pv := convertPlatformVersions(raw.PlatformVersions)
	if err := services.ValidatePlatformVersions(pv); err != nil {
		return nil, err
	}

	signers, err := convertSigners(raw.DefaultSigners)
	if err != nil {
		return nil, err
	}

	return &entities.ReleaseConfig{
		Version:          raw.Version,
		PlatformVersions: pv,
		DefaultSigners:   signers,
		DisplayNames:     raw.DisplayNames,
		DistDir:          raw.DistDir,
		DownloadBaseURL:  strings.TrimSuffix(raw.DownloadBaseURL, "/"),
	}, nil
}

func convertPlatformVersions(yp yamlPlatformVersions) entities.PlatformVersions {
	return entities.PlatformVersions{
		Windows: yp.Windows,
		MacOS:   yp.MacOS,
		Android: yp.Android,
	}
}

// convertSigners rejects identities that could never appear in a signature filename
func convertSigners(raw []string) ([]string, error) {
	signers := make([]string, 0, len(raw))
	for _, signer := range raw {
		if signer == "" || strings.ContainsAny(signer, "./\\ ") {
			return nil, fmt.Errorf("invalid default signer %q", signer)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}
