package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

// Manifest maps every artifact kind of a release to its filename
type Manifest map[entities.ArtifactKind]string

// BuildManifest computes the expected release filenames.
// Pure function: it never touches the filesystem.
func BuildManifest(version string, pv entities.PlatformVersions) Manifest {
	winVersion := orDefault(pv.Windows, version)
	macVersion := orDefault(pv.MacOS, version)
	apkVersion := orDefault(pv.Android, version)

	return Manifest{
		entities.KindTarball:        fmt.Sprintf("Electrum-%s.tar.gz", version),
		entities.KindSourceOnly:     fmt.Sprintf("Electrum-sourceonly-%s.tar.gz", version),
		entities.KindAppImage:       fmt.Sprintf("electrum-%s-x86_64.AppImage", version),
		entities.KindMacOSImage:     fmt.Sprintf("electrum-%s.dmg", macVersion),
		entities.KindWinInstaller:   fmt.Sprintf("electrum-%s.exe", winVersion),
		entities.KindWinSetup:       fmt.Sprintf("electrum-%s-setup.exe", winVersion),
		entities.KindWinPortable:    fmt.Sprintf("electrum-%s-portable.exe", winVersion),
		entities.KindAndroidARM64:   fmt.Sprintf("Electrum-%s-arm64-v8a-release.apk", apkVersion),
		entities.KindAndroidARMEABI: fmt.Sprintf("Electrum-%s-armeabi-v7a-release.apk", apkVersion),
	}
}

// Filename returns the filename for a kind ("" if the kind is unknown)
func (m Manifest) Filename(kind entities.ArtifactKind) string {
	return m[kind]
}

// Filenames returns all expected filenames, sorted
func (m Manifest) Filenames() []string {
	names := make([]string, 0, len(m))
	for _, name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilenameSet returns the expected filenames as a set
func (m Manifest) FilenameSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for _, name := range m {
		set[name] = struct{}{}
	}
	return set
}

// Kinds returns the manifest's kinds in publication order
func (m Manifest) Kinds() []entities.ArtifactKind {
	kinds := make([]entities.ArtifactKind, 0, len(m))
	for _, kind := range entities.AllArtifactKinds() {
		if _, ok := m[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// ValidateVersion rejects version strings that cannot appear in a release filename.
// Callers run this before BuildManifest; the manifest itself accepts anything.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version is empty", entities.ErrInvalidVersion)
	}
	if strings.ContainsAny(version, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", entities.ErrInvalidVersion, version)
	}
	for _, r := range version {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains whitespace or control characters", entities.ErrInvalidVersion, version)
		}
	}
	if strings.HasSuffix(version, signatureSuffix) {
		return fmt.Errorf("%w: %q ends with %s", entities.ErrInvalidVersion, version, signatureSuffix)
	}
	return nil
}

// ValidatePlatformVersions runs ValidateVersion on every override that is set
func ValidatePlatformVersions(pv entities.PlatformVersions) error {
	overrides := []struct {
		platform string
		version  string
	}{
		{"windows", pv.Windows},
		{"macos", pv.MacOS},
		{"android", pv.Android},
	}
	for _, o := range overrides {
		if o.version == "" {
			continue
		}
		if err := ValidateVersion(o.version); err != nil {
			return fmt.Errorf("%s version: %w", o.platform, err)
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
