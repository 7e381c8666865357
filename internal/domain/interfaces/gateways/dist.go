// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

// DistDirectory lists the contents of a distribution directory.
// Implementations return base names only; callers never see paths.
type DistDirectory interface {
	ListFilenames(dir string) ([]string, error)
}

// SignatureInspector reads metadata out of detached signature files.
// It must not be used to decide signer promotion.
type SignatureInspector interface {
	InspectSignature(ctx context.Context, sigPath string) (*entities.SignatureInfo, error)
}

// ImageNormalizer rewrites PE files in place
type ImageNormalizer interface {
	NormalizeFile(ctx context.Context, path string) (*entities.NormalizeResult, error)
	NormalizeFiles(ctx context.Context, paths []string) ([]*entities.NormalizeResult, error)
}
