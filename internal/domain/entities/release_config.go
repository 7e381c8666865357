package entities

// ReleaseConfig represents a release description loaded from release.yml
type ReleaseConfig struct {
	Version          string
	PlatformVersions PlatformVersions
	DefaultSigners   []string
	DisplayNames     map[string]string // signer identity -> public label
	DistDir          string
	DownloadBaseURL  string
}

// DisplayName returns the public label for a signer identity.
// Presentation only; matching always uses the raw identity.
func (c *ReleaseConfig) DisplayName(identity string) string {
	if c == nil {
		return identity
	}
	if label, ok := c.DisplayNames[identity]; ok && label != "" {
		return label
	}
	return identity
}
