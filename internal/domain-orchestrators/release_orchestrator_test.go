package orchestrators

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/domain/services"
)

// Mock implementations for testing
type mockDist struct {
	listing []string
	err     error
}

func (m *mockDist) ListFilenames(_ string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listing, nil
}

type mockInspector struct {
	inspected []string
	failOn    string
}

func (m *mockInspector) InspectSignature(_ context.Context, sigPath string) (*entities.SignatureInfo, error) {
	m.inspected = append(m.inspected, sigPath)
	if strings.HasSuffix(sigPath, m.failOn) && m.failOn != "" {
		return nil, errors.New("unreadable")
	}
	return &entities.SignatureInfo{Filename: sigPath, IssuerKeyID: "0123456789ABCDEF"}, nil
}

type mockSums struct {
	names   []string
	outPath string
}

func (m *mockSums) WriteSumsFile(_ string, names []string, outPath string) error {
	m.names = names
	m.outPath = outPath
	return nil
}

func releaseConfig() *entities.ReleaseConfig {
	return &entities.ReleaseConfig{
		Version:        "4.5.0",
		DefaultSigners: []string{"ThomasV", "SomberNight"},
		DistDir:        "dist",
	}
}

func signedListing(signers ...string) []string {
	manifest := services.BuildManifest("4.5.0", entities.PlatformVersions{})
	listing := manifest.Filenames()
	for _, name := range manifest.Filenames() {
		for _, signer := range signers {
			listing = append(listing, name+"."+signer+".asc")
		}
	}
	return listing
}

func TestReleaseOrchestrator_Run(t *testing.T) {
	listing := append(signedListing("ThomasV", "Emzy"), "Electrum-4.5.0.tar.gz.Partial.asc", "junk.asc")
	orch := NewReleaseOrchestrator(&mockDist{listing: listing}, nil, nil, nil)

	result, err := orch.Run(context.Background(), releaseConfig(), ReleaseOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"ThomasV", "SomberNight", "Emzy"}
	if !reflect.DeepEqual(result.Signers.Signers, want) {
		t.Errorf("Signers = %v, want %v", result.Signers.Signers, want)
	}
	if !result.Validation.IsReady() {
		t.Errorf("Validation.Status = %v, want ready", result.Validation.Status)
	}
	if len(result.Signers.Rejected) != 1 || result.Signers.Rejected[0].Filename != "junk.asc" {
		t.Errorf("Rejected = %v, want [junk.asc]", result.Signers.Rejected)
	}
	if result.Signatures != nil {
		t.Error("Signatures should be nil when inspection is disabled")
	}
}

func TestReleaseOrchestrator_Run_MissingArtifact(t *testing.T) {
	listing := signedListing("Emzy")
	var trimmed []string
	for _, name := range listing {
		if name != "electrum-4.5.0.dmg" {
			trimmed = append(trimmed, name)
		}
	}

	orch := NewReleaseOrchestrator(&mockDist{listing: trimmed}, nil, nil, nil)
	result, err := orch.Run(context.Background(), releaseConfig(), ReleaseOptions{})

	if !errors.Is(err, entities.ErrPreconditionFailed) {
		t.Fatalf("Run() error = %v, want ErrPreconditionFailed", err)
	}
	var missingErr *entities.MissingArtifactsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("error is not *MissingArtifactsError: %T", err)
	}
	if !reflect.DeepEqual(missingErr.Missing, []string{"electrum-4.5.0.dmg"}) {
		t.Errorf("Missing = %v", missingErr.Missing)
	}
	if result.Signers != nil {
		t.Error("no signer list may be produced when the precondition fails")
	}
}

func TestReleaseOrchestrator_Run_InvalidVersion(t *testing.T) {
	cfg := releaseConfig()
	cfg.Version = "4.5.0/../x"

	orch := NewReleaseOrchestrator(&mockDist{}, nil, nil, nil)
	if _, err := orch.Run(context.Background(), cfg, ReleaseOptions{}); !errors.Is(err, entities.ErrInvalidVersion) {
		t.Errorf("Run() error = %v, want ErrInvalidVersion", err)
	}
}

func TestReleaseOrchestrator_Run_ListError(t *testing.T) {
	orch := NewReleaseOrchestrator(&mockDist{err: errors.New("permission denied")}, nil, nil, nil)
	_, err := orch.Run(context.Background(), releaseConfig(), ReleaseOptions{})
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Run() error = %v, want listing error", err)
	}
}

func TestReleaseOrchestrator_Run_Inspect(t *testing.T) {
	listing := append(signedListing("Emzy"), "junk.asc")
	inspector := &mockInspector{failOn: "electrum-4.5.0.dmg.Emzy.asc"}
	orch := NewReleaseOrchestrator(&mockDist{listing: listing}, inspector, nil, nil)

	result, err := orch.Run(context.Background(), releaseConfig(), ReleaseOptions{Inspect: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(inspector.inspected) != 9 {
		t.Errorf("inspected %d signatures, want 9", len(inspector.inspected))
	}
	if len(result.Signatures) != 8 {
		t.Errorf("len(Signatures) = %d, want 8 (one unreadable)", len(result.Signatures))
	}
	// inspection failures never change the signer list
	want := []string{"ThomasV", "SomberNight", "Emzy"}
	if !reflect.DeepEqual(result.Signers.Signers, want) {
		t.Errorf("Signers = %v, want %v", result.Signers.Signers, want)
	}
}

func TestReleaseOrchestrator_Run_InspectWithoutInspector(t *testing.T) {
	orch := NewReleaseOrchestrator(&mockDist{listing: signedListing()}, nil, nil, nil)
	if _, err := orch.Run(context.Background(), releaseConfig(), ReleaseOptions{Inspect: true}); err == nil {
		t.Error("Run() with Inspect and no inspector should return error")
	}
}

func TestReleaseOrchestrator_Run_Sums(t *testing.T) {
	sums := &mockSums{}
	orch := NewReleaseOrchestrator(&mockDist{listing: signedListing()}, nil, sums, nil)

	if _, err := orch.Run(context.Background(), releaseConfig(), ReleaseOptions{SumsPath: "SHA256SUMS"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sums.outPath != "SHA256SUMS" {
		t.Errorf("outPath = %q", sums.outPath)
	}
	if len(sums.names) != 9 {
		t.Errorf("summed %d files, want 9", len(sums.names))
	}
}

func TestReleaseOrchestrator_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := NewReleaseOrchestrator(&mockDist{listing: signedListing()}, nil, nil, nil)
	if _, err := orch.Run(ctx, releaseConfig(), ReleaseOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
