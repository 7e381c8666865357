package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ochairo/wallet-release/internal/domain/entities"
	"github.com/ochairo/wallet-release/internal/domain/interfaces"
)

const signatureSuffix = ".asc"

// ParseSignatureFilename applies the detached-signature grammar
//
//	<stem>.<identity>.asc
//
// parsed right to left: the suffix is stripped, the identity is the last
// dot-delimited segment, and the stem is everything before it. Names with a
// path separator, an empty stem or identity, or the suffix token as identity
// ("x.asc.asc") are rejected with entities.ErrMalformedRecord.
func ParseSignatureFilename(name string) (entities.SignatureRecord, error) {
	if strings.ContainsAny(name, `/\`) {
		return entities.SignatureRecord{}, fmt.Errorf("%w: %q contains a path separator", entities.ErrMalformedRecord, name)
	}
	if !strings.HasSuffix(name, signatureSuffix) {
		return entities.SignatureRecord{}, fmt.Errorf("%w: %q does not end in %s", entities.ErrMalformedRecord, name, signatureSuffix)
	}

	rest := strings.TrimSuffix(name, signatureSuffix)
	dot := strings.LastIndex(rest, ".")
	if dot < 0 {
		return entities.SignatureRecord{}, fmt.Errorf("%w: %q has no signer identity", entities.ErrMalformedRecord, name)
	}

	stem, identity := rest[:dot], rest[dot+1:]
	switch {
	case stem == "":
		return entities.SignatureRecord{}, fmt.Errorf("%w: %q has no signed filename", entities.ErrMalformedRecord, name)
	case identity == "":
		return entities.SignatureRecord{}, fmt.Errorf("%w: %q has an empty signer identity", entities.ErrMalformedRecord, name)
	case strings.EqualFold("."+identity, signatureSuffix):
		return entities.SignatureRecord{}, fmt.Errorf("%w: %q has ambiguous identity %q", entities.ErrMalformedRecord, name, identity)
	}

	return entities.SignatureRecord{
		Filename:       name,
		SignedFilename: stem,
		Signer:         identity,
	}, nil
}

// SignerRegistry decides which identities have signed a complete release.
//
// A "signer" is whoever produced a same-named .asc file. No cryptographic
// verification happens here: promotion is filename bookkeeping only, and
// signatures must be checked separately before publishing.
type SignerRegistry struct {
	logger interfaces.Logger
}

// NewSignerRegistry creates a new signer registry
func NewSignerRegistry(logger interfaces.Logger) *SignerRegistry {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &SignerRegistry{logger: logger}
}

// DetectSigners scans signature filenames and promotes every identity whose
// signed-file set is exactly the manifest's filename set. The returned list
// starts with defaults in their given order, followed by promoted identities
// in lexicographic order. Malformed names are excluded and reported in
// Rejected; they never abort the scan.
func (r *SignerRegistry) DetectSigners(filenames []string, manifest Manifest, defaults []string) *entities.SignerResult {
	result := &entities.SignerResult{
		Coverage: make(entities.SignerCoverage),
	}

	for _, name := range filenames {
		if !strings.HasSuffix(name, signatureSuffix) {
			continue
		}
		record, err := ParseSignatureFilename(name)
		if err != nil {
			r.logger.Debug("skipping signature file", interfaces.F("file", name), interfaces.F("reason", err.Error()))
			result.Rejected = append(result.Rejected, entities.RejectedSignature{Filename: name, Reason: err})
			continue
		}
		result.Coverage.Add(record.Signer, record.SignedFilename)
	}

	isDefault := make(map[string]bool, len(defaults))
	for _, signer := range defaults {
		if isDefault[signer] {
			continue
		}
		isDefault[signer] = true
		result.Signers = append(result.Signers, signer)
	}

	expected := manifest.FilenameSet()
	identities := make([]string, 0, len(result.Coverage))
	for identity := range result.Coverage {
		identities = append(identities, identity)
	}
	sort.Strings(identities)

	for _, identity := range identities {
		report := coverageReport(identity, result.Coverage.Files(identity), expected)
		report.Default = isDefault[identity]
		result.Reports = append(result.Reports, report)

		if !report.Complete {
			r.logger.Debug("incomplete signer coverage",
				interfaces.F("signer", identity),
				interfaces.F("missing", len(report.Missing)),
				interfaces.F("extra", len(report.Extra)))
			continue
		}
		if report.Default {
			continue
		}
		r.logger.Info("promoting signer", interfaces.F("signer", identity), interfaces.F("artifacts", report.Signed))
		result.Promoted = append(result.Promoted, identity)
		result.Signers = append(result.Signers, identity)
	}

	return result
}

// coverageReport compares one identity's signed set with the expected set
func coverageReport(identity string, signed, expected map[string]struct{}) entities.SignerReport {
	report := entities.SignerReport{
		Signer: identity,
		Signed: len(signed),
	}
	for name := range expected {
		if _, ok := signed[name]; !ok {
			report.Missing = append(report.Missing, name)
		}
	}
	for name := range signed {
		if _, ok := expected[name]; !ok {
			report.Extra = append(report.Extra, name)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Extra)
	report.Complete = len(report.Missing) == 0 && len(report.Extra) == 0
	return report
}
