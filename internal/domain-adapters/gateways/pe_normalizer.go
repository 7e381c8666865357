package gateways

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/domain/interfaces"
	"github.com/ochairo/wallet-release/internal/domain/services"
)

// PENormalizer normalizes Windows executables on disk.
// Each file is read fully, normalized in memory and replaced atomically, so
// a failure never leaves a partially written binary behind.
type PENormalizer struct {
	logger   interfaces.Logger
	checksum *checksumVerifier
	workers  int
	progress func(*entities.NormalizeResult)
}

// NewPENormalizer creates a new PE normalizer gateway.
// workers <= 0 selects runtime.NumCPU().
func NewPENormalizer(logger interfaces.Logger, workers int) *PENormalizer {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PENormalizer{
		logger:   logger,
		checksum: NewChecksumVerifier(),
		workers:  workers,
	}
}

// SetProgress registers fn to be called after every file of NormalizeFiles,
// successful or not. fn may be called from several goroutines at once.
func (n *PENormalizer) SetProgress(fn func(*entities.NormalizeResult)) {
	n.progress = fn
}

// NormalizeFile pads and re-checksums a single PE file in place
func (n *PENormalizer) NormalizeFile(ctx context.Context, path string) (*entities.NormalizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	//nolint:gosec // G304: path is a release artifact chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	normalized, err := services.NormalizePE(data)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", filepath.Base(path), err)
	}

	if err := writeFileAtomic(path, normalized.Data, info.Mode().Perm()); err != nil {
		return nil, err
	}

	result := &entities.NormalizeResult{
		Path:         path,
		OriginalSize: int64(normalized.OriginalSize),
		PaddedSize:   int64(len(normalized.Data)),
		Checksum:     normalized.Checksum,
		SHA256:       n.checksum.ChecksumBytes(normalized.Data),
	}

	n.logger.Info("normalized PE image",
		interfaces.F("file", filepath.Base(path)),
		interfaces.F("size", result.PaddedSize),
		interfaces.F("padding", result.PaddedSize-result.OriginalSize),
		interfaces.F("checksum", fmt.Sprintf("0x%08x", result.Checksum)))

	return result, nil
}

// NormalizeFiles normalizes independent files concurrently. A format error in
// one file does not stop the others; every failure is reported in its result
// and joined into the returned error. Results keep the order of paths.
func (n *PENormalizer) NormalizeFiles(ctx context.Context, paths []string) ([]*entities.NormalizeResult, error) {
	results := make([]*entities.NormalizeResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)

	for i, path := range paths {
		g.Go(func() error {
			result, err := n.NormalizeFile(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				n.logger.Error("normalization failed", interfaces.F("file", path), interfaces.F("error", err.Error()))
				result = &entities.NormalizeResult{Path: path, Err: err}
			}
			results[i] = result
			if n.progress != nil {
				n.progress(result)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, result := range results {
		if result != nil && result.Err != nil {
			errs = append(errs, result.Err)
		}
	}

	return results, errors.Join(errs...)
}

// writeFileAtomic replaces path with data via a temp file in the same directory
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
