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

// NormalizeOrchestrator drives PE normalization over release executables
type NormalizeOrchestrator struct {
	dist       gateways.DistDirectory
	normalizer gateways.ImageNormalizer
	logger     interfaces.Logger
}

// NewNormalizeOrchestrator creates a new normalize orchestrator
func NewNormalizeOrchestrator(
	dist gateways.DistDirectory,
	normalizer gateways.ImageNormalizer,
	logger interfaces.Logger,
) *NormalizeOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &NormalizeOrchestrator{
		dist:       dist,
		normalizer: normalizer,
		logger:     logger,
	}
}

// WindowsPaths returns the paths of the Windows executables of a release in dir.
// Every one of them must exist; a missing executable is a precondition failure.
func (o *NormalizeOrchestrator) WindowsPaths(dir, version string, pv entities.PlatformVersions) ([]string, error) {
	if err := services.ValidateVersion(version); err != nil {
		return nil, err
	}
	if err := services.ValidatePlatformVersions(pv); err != nil {
		return nil, err
	}

	manifest := services.BuildManifest(version, pv)
	listing, err := o.dist.ListFilenames(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list distribution directory: %w", err)
	}

	present := make(map[string]bool, len(listing))
	for _, name := range listing {
		present[name] = true
	}

	var paths, missing []string
	for _, kind := range entities.WindowsArtifactKinds() {
		name := manifest.Filename(kind)
		if !present[name] {
			missing = append(missing, name)
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	if len(missing) > 0 {
		return nil, &entities.MissingArtifactsError{Dir: dir, Missing: missing}
	}
	return paths, nil
}

// NormalizeRelease normalizes the Windows executables of a release in dir
func (o *NormalizeOrchestrator) NormalizeRelease(ctx context.Context, dir, version string, pv entities.PlatformVersions) ([]*entities.NormalizeResult, error) {
	paths, err := o.WindowsPaths(dir, version, pv)
	if err != nil {
		return nil, err
	}
	return o.NormalizePaths(ctx, paths)
}

// NormalizePaths normalizes an explicit list of files
func (o *NormalizeOrchestrator) NormalizePaths(ctx context.Context, paths []string) ([]*entities.NormalizeResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to normalize")
	}

	o.logger.Debug("normalizing executables", interfaces.F("count", len(paths)))
	results, err := o.normalizer.NormalizeFiles(ctx, paths)

	failed := 0
	for _, r := range results {
		if r == nil || r.Err != nil {
			failed++
		}
	}
	o.logger.Info("normalization finished",
		interfaces.F("files", len(paths)),
		interfaces.F("failed", failed))

	return results, err
}
