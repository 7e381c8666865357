// Package entities defines core domain models and data structures.
package entities

// ArtifactKind identifies one distributable build output of a release
type ArtifactKind string

// Artifact kinds published for every release
const (
	KindTarball        ArtifactKind = "tarball"
	KindSourceOnly     ArtifactKind = "sourceonly"
	KindAppImage       ArtifactKind = "appimage"
	KindMacOSImage     ArtifactKind = "dmg"
	KindWinInstaller   ArtifactKind = "win-installer"
	KindWinSetup       ArtifactKind = "win-setup"
	KindWinPortable    ArtifactKind = "win-portable"
	KindAndroidARM64   ArtifactKind = "apk-arm64"
	KindAndroidARMEABI ArtifactKind = "apk-armeabi"
)

// AllArtifactKinds returns every artifact kind in publication order
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{
		KindTarball,
		KindSourceOnly,
		KindAppImage,
		KindMacOSImage,
		KindWinInstaller,
		KindWinSetup,
		KindWinPortable,
		KindAndroidARM64,
		KindAndroidARMEABI,
	}
}

// WindowsArtifactKinds returns the kinds that are PE executables
func WindowsArtifactKinds() []ArtifactKind {
	return []ArtifactKind{KindWinInstaller, KindWinSetup, KindWinPortable}
}

// PlatformVersions holds per-platform version overrides.
// Empty fields fall back to the primary release version.
type PlatformVersions struct {
	Windows string
	MacOS   string
	Android string
}

// Artifact represents a release file on disk
type Artifact struct {
	Kind     ArtifactKind
	Filename string
	Path     string
	SHA256   string
}

// NormalizeResult reports the outcome of normalizing one PE file
type NormalizeResult struct {
	Path         string
	OriginalSize int64
	PaddedSize   int64
	Checksum     uint32
	SHA256       string
	Err          error
}
