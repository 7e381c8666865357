package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

// ReleaseStatus represents the readiness status of a distribution directory
type ReleaseStatus string

// Release validation statuses
const (
	StatusReady            ReleaseStatus = "ready"
	StatusNoArtifacts      ReleaseStatus = "no_artifacts"
	StatusMissingArtifacts ReleaseStatus = "missing_artifacts"
)

// ReleaseValidation contains the presence check of a manifest against a directory listing
type ReleaseValidation struct {
	Status    ReleaseStatus
	Dir       string
	Expected  []string
	Available []string
	Missing   []string
}

// IsReady returns true if every expected artifact is present
func (rv *ReleaseValidation) IsReady() bool {
	return rv.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (rv *ReleaseValidation) ErrorMessage() string {
	switch rv.Status {
	case StatusReady:
		return ""
	case StatusNoArtifacts:
		return fmt.Sprintf("No artifacts found in %s (expected: %d files)", rv.Dir, len(rv.Expected))
	case StatusMissingArtifacts:
		return fmt.Sprintf("Missing %d of %d artifacts\n   Missing: %s",
			len(rv.Missing), len(rv.Expected), strings.Join(rv.Missing, ", "))
	default:
		return "Unknown status"
	}
}

// Err returns a *entities.MissingArtifactsError when artifacts are missing, nil otherwise
func (rv *ReleaseValidation) Err() error {
	if rv.IsReady() {
		return nil
	}
	return &entities.MissingArtifactsError{Dir: rv.Dir, Missing: rv.Missing}
}

// ReleaseService handles release precondition logic
type ReleaseService struct{}

// NewReleaseService creates a new release service
func NewReleaseService() *ReleaseService {
	return &ReleaseService{}
}

// ValidateRelease checks that every manifest filename appears in the directory listing.
// Extra files in the listing (signatures, checksums, older releases) are ignored.
func (s *ReleaseService) ValidateRelease(manifest Manifest, dir string, listing []string) *ReleaseValidation {
	validation := &ReleaseValidation{
		Dir:      dir,
		Expected: manifest.Filenames(),
	}

	present := make(map[string]bool, len(listing))
	for _, name := range listing {
		present[name] = true
	}

	for _, name := range validation.Expected {
		if present[name] {
			validation.Available = append(validation.Available, name)
		} else {
			validation.Missing = append(validation.Missing, name)
		}
	}
	sort.Strings(validation.Missing)

	switch {
	case len(validation.Available) == 0:
		validation.Status = StatusNoArtifacts
	case len(validation.Missing) > 0:
		validation.Status = StatusMissingArtifacts
	default:
		validation.Status = StatusReady
	}

	return validation
}
