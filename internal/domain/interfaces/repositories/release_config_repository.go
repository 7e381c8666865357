// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

// ReleaseConfigRepository defines the interface for loading release descriptions
type ReleaseConfigRepository interface {
	// Load reads a release configuration by path
	Load(ctx context.Context, path string) (*entities.ReleaseConfig, error)
}
