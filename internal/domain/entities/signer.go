package entities

// SignatureRecord is a detached signature filename split into its parts.
// "Electrum-4.5.0.tar.gz.ThomasV.asc" -> {SignedFilename: "Electrum-4.5.0.tar.gz", Signer: "ThomasV"}
type SignatureRecord struct {
	Filename       string
	SignedFilename string
	Signer         string
}

// SignerCoverage maps a signer identity to the set of filenames it signed
type SignerCoverage map[string]map[string]struct{}

// Add attributes a signed filename to a signer
func (c SignerCoverage) Add(signer, signedFilename string) {
	set, ok := c[signer]
	if !ok {
		set = make(map[string]struct{})
		c[signer] = set
	}
	set[signedFilename] = struct{}{}
}

// Files returns the set of filenames attributed to a signer
func (c SignerCoverage) Files(signer string) map[string]struct{} {
	return c[signer]
}

// RejectedSignature records a signature filename excluded from coverage
type RejectedSignature struct {
	Filename string
	Reason   error
}

// SignerReport describes one discovered identity's coverage against the manifest
type SignerReport struct {
	Signer   string
	Signed   int
	Missing  []string // expected but unsigned
	Extra    []string // signed but not expected
	Complete bool
	Default  bool
}

// SignerResult is the outcome of a signer scan
type SignerResult struct {
	Signers  []string // defaults first, then newly qualified identities
	Promoted []string
	Reports  []SignerReport // sorted by identity
	Coverage SignerCoverage
	Rejected []RejectedSignature
}

// SignatureInfo holds metadata read from a detached signature packet.
// It is informational only and says nothing about validity.
type SignatureInfo struct {
	Filename    string
	IssuerKeyID string
	Fingerprint string
	CreatedUnix int64
	Armored     bool
	ParseError  string
}
