package gateways

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/external-adapters/gpg"
)

// signatureInspector wraps the external GPG adapter to implement the domain gateway interface.
// Inspection is informational: it never changes which signers are promoted.
type signatureInspector struct {
	inspector *gpg.Inspector
}

// NewSignatureInspector creates a new signature inspector gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSignatureInspector() *signatureInspector {
	return &signatureInspector{
		inspector: gpg.NewInspector(),
	}
}

// InspectSignature reads issuer metadata from a detached signature file
func (s *signatureInspector) InspectSignature(ctx context.Context, sigPath string) (*entities.SignatureInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.inspector.InspectFile(sigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", filepath.Base(sigPath), err)
	}
	info.Filename = filepath.Base(sigPath)
	return info, nil
}
