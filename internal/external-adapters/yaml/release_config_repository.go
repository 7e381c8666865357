package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

// ReleaseConfigRepository implements repositories.ReleaseConfigRepository using YAML files
type ReleaseConfigRepository struct {
	parser *ReleaseConfigParser
}

// NewReleaseConfigRepository creates a new YAML-based release config repository
func NewReleaseConfigRepository() *ReleaseConfigRepository {
	return &ReleaseConfigRepository{
		parser: NewReleaseConfigParser(),
	}
}

// Load reads and validates the release file at path
func (r *ReleaseConfigRepository) Load(_ context.Context, path string) (*entities.ReleaseConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("release config not found: %s", path)
	}

	cfg, err := r.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}
