// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/domain/interfaces"
	"github.com/ochairo/wallet-release/internal/domain/interfaces/gateways"
	"github.com/ochairo/wallet-release/internal/domain/services"
)

// SumsWriter writes a SHA256SUMS style file for a set of artifacts
type SumsWriter interface {
	WriteSumsFile(dir string, names []string, outPath string) error
}

// ReleaseOrchestrator checks a distribution directory and computes the release signer list
type ReleaseOrchestrator struct {
	dist           gateways.DistDirectory
	inspector      gateways.SignatureInspector
	sums           SumsWriter
	registry       *services.SignerRegistry
	releaseService *services.ReleaseService
	logger         interfaces.Logger
}

// ReleaseOptions selects the optional steps of a release run
type ReleaseOptions struct {
	// Inspect reads issuer metadata from every well-formed signature
	Inspect bool
	// SumsPath, when set, receives SHA256 sums of the manifest artifacts
	SumsPath string
}

// ReleaseResult is the outcome of a release run
type ReleaseResult struct {
	Manifest   services.Manifest
	Validation *services.ReleaseValidation
	Signers    *entities.SignerResult
	Signatures []*entities.SignatureInfo
}

// NewReleaseOrchestrator creates a new release orchestrator.
// inspector and sums may be nil when the matching options are never used.
func NewReleaseOrchestrator(
	dist gateways.DistDirectory,
	inspector gateways.SignatureInspector,
	sums SumsWriter,
	logger interfaces.Logger,
) *ReleaseOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ReleaseOrchestrator{
		dist:           dist,
		inspector:      inspector,
		sums:           sums,
		registry:       services.NewSignerRegistry(logger),
		releaseService: services.NewReleaseService(),
		logger:         logger,
	}
}

// Run lists cfg.DistDir, enforces the artifact precondition and detects signers.
// A missing artifact aborts the run before any signer list is produced.
func (o *ReleaseOrchestrator) Run(ctx context.Context, cfg *entities.ReleaseConfig, opts ReleaseOptions) (*ReleaseResult, error) {
	if err := services.ValidateVersion(cfg.Version); err != nil {
		return nil, err
	}
	if err := services.ValidatePlatformVersions(cfg.PlatformVersions); err != nil {
		return nil, err
	}

	result := &ReleaseResult{
		Manifest: services.BuildManifest(cfg.Version, cfg.PlatformVersions),
	}

	listing, err := o.dist.ListFilenames(cfg.DistDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list distribution directory: %w", err)
	}

	result.Validation = o.releaseService.ValidateRelease(result.Manifest, cfg.DistDir, listing)
	if err := result.Validation.Err(); err != nil {
		o.logger.Error("release precondition failed",
			interfaces.F("dir", cfg.DistDir),
			interfaces.F("missing", len(result.Validation.Missing)))
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	result.Signers = o.registry.DetectSigners(listing, result.Manifest, cfg.DefaultSigners)
	o.logger.Info("signer scan complete",
		interfaces.F("version", cfg.Version),
		interfaces.F("signers", len(result.Signers.Signers)),
		interfaces.F("promoted", len(result.Signers.Promoted)),
		interfaces.F("rejected", len(result.Signers.Rejected)))

	if opts.Inspect {
		signatures, err := o.inspectSignatures(ctx, cfg.DistDir, listing, result.Signers)
		if err != nil {
			return result, err
		}
		result.Signatures = signatures
	}

	if opts.SumsPath != "" {
		if o.sums == nil {
			return result, fmt.Errorf("no checksum writer configured")
		}
		if err := o.sums.WriteSumsFile(cfg.DistDir, result.Manifest.Filenames(), opts.SumsPath); err != nil {
			return result, err
		}
		o.logger.Info("wrote checksums", interfaces.F("file", opts.SumsPath))
	}

	return result, nil
}

// inspectSignatures reads metadata from every signature that took part in detection.
// Unreadable files are logged and skipped; they never affect the signer list.
func (o *ReleaseOrchestrator) inspectSignatures(ctx context.Context, dir string, listing []string, signers *entities.SignerResult) ([]*entities.SignatureInfo, error) {
	if o.inspector == nil {
		return nil, fmt.Errorf("no signature inspector configured")
	}

	rejected := make(map[string]bool, len(signers.Rejected))
	for _, r := range signers.Rejected {
		rejected[r.Filename] = true
	}

	var infos []*entities.SignatureInfo
	for _, name := range listing {
		if _, err := services.ParseSignatureFilename(name); err != nil || rejected[name] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return infos, err
		}

		info, err := o.inspector.InspectSignature(ctx, filepath.Join(dir, name))
		if err != nil {
			o.logger.Warn("signature inspection failed",
				interfaces.F("file", name),
				interfaces.F("error", err.Error()))
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}
