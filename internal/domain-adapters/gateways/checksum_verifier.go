package gateways

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// checksumVerifier computes and compares SHA-256 digests of release files.
// Two independently built binaries are reproducible when their digests match
// after normalization.
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum verifies a file's SHA256 checksum
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actualSum, expectedSum) {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filepath.Base(filePath), expectedSum, actualSum)
	}

	return nil
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// ChecksumBytes returns the SHA256 checksum of an in-memory buffer
func (v *checksumVerifier) ChecksumBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteSumsFile writes a sha256sum-compatible file ("<hex>  <name>") for the
// given base names in dir, in the order given.
func (v *checksumVerifier) WriteSumsFile(dir string, names []string, outPath string) error {
	var b strings.Builder
	for _, name := range names {
		sum, err := v.CalculateChecksum(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", name, err)
		}
		fmt.Fprintf(&b, "%s  %s\n", sum, name)
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil { //nolint:gosec // G306: checksum lists are public
		return fmt.Errorf("failed to write checksum file: %w", err)
	}
	return nil
}

// ReadSumsFile parses a sha256sum-style file into a name -> checksum map.
// Binary-mode markers ("*name") are accepted; blank lines are skipped.
func (v *checksumVerifier) ReadSumsFile(path string) (map[string]string, error) {
	//nolint:gosec // G304: path is user-provided checksum list
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checksum file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	sums := make(map[string]string)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid checksum file format at line %d", line)
		}
		sums[strings.TrimPrefix(parts[1], "*")] = parts[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checksum file: %w", err)
	}

	return sums, nil
}
