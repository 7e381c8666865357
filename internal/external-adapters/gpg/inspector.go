// Package gpg reads metadata out of detached OpenPGP signatures.
//
// Nothing here verifies a signature against a key or the signed file. The
// inspector only decodes the packet so release reports can show which key
// claims to have produced each .asc file.
package gpg

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

const (
	armorHeader   = "-----BEGIN PGP SIGNATURE-----"
	signatureType = "PGP SIGNATURE"
	// Detached signatures are typically < 1KB
	maxSignatureSize = 10 * 1024
)

// ErrNotSignature is returned when the data holds no signature packet
var ErrNotSignature = errors.New("not an OpenPGP signature")

// Inspector decodes detached signature packets using ProtonMail's go-crypto
type Inspector struct{}

// NewInspector creates a new signature inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// InspectFile reads a detached signature file. I/O failures are returned as
// errors; undecodable content is reported through SignatureInfo.ParseError.
func (i *Inspector) InspectFile(sigPath string) (*entities.SignatureInfo, error) {
	//nolint:gosec // G304: sigPath comes from the distribution directory listing
	f, err := os.Open(sigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSignatureSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read signature file: %w", err)
	}

	info, err := i.Inspect(data)
	if info != nil {
		info.Filename = sigPath
	}
	return info, err
}

// Inspect decodes an armored or binary detached signature
func (i *Inspector) Inspect(data []byte) (*entities.SignatureInfo, error) {
	info := &entities.SignatureInfo{}

	if len(data) > maxSignatureSize {
		info.ParseError = fmt.Sprintf("signature larger than %d bytes", maxSignatureSize)
		return info, nil
	}

	var body io.Reader = bytes.NewReader(data)
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(armorHeader)) {
		info.Armored = true
		block, err := armor.Decode(bytes.NewReader(data))
		if err != nil {
			info.ParseError = fmt.Sprintf("invalid armor: %v", err)
			return info, nil
		}
		if block.Type != signatureType {
			info.ParseError = fmt.Sprintf("unexpected armor type %q", block.Type)
			return info, nil
		}
		body = block.Body
	}

	p, err := packet.Read(body)
	if err != nil {
		info.ParseError = fmt.Sprintf("invalid packet: %v", err)
		return info, nil
	}

	sig, ok := p.(*packet.Signature)
	if !ok {
		info.ParseError = fmt.Sprintf("%v: got %T", ErrNotSignature, p)
		return info, nil
	}

	if sig.IssuerKeyId != nil {
		info.IssuerKeyID = fmt.Sprintf("%016X", *sig.IssuerKeyId)
	}
	if len(sig.IssuerFingerprint) > 0 {
		info.Fingerprint = strings.ToUpper(hex.EncodeToString(sig.IssuerFingerprint))
		if info.IssuerKeyID == "" && len(info.Fingerprint) >= 16 {
			info.IssuerKeyID = info.Fingerprint[len(info.Fingerprint)-16:]
		}
	}
	info.CreatedUnix = sig.CreationTime.Unix()

	return info, nil
}
