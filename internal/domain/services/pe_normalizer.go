package services

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ochairo/wallet-release/internal/domain/entities"
)

const (
	// peHeaderPointerOffset is e_lfanew in the DOS header
	peHeaderPointerOffset = 0x3C
	// peChecksumFieldOffset is the CheckSum field relative to the PE signature.
	// Same position for PE32 and PE32+.
	peChecksumFieldOffset = 88
	peAlignment           = 8
	minImageSize          = peHeaderPointerOffset + 4
)

// PE normalization errors, all wrapping entities.ErrFormat
var (
	ErrImageTooShort      = fmt.Errorf("%w: image too short to contain a PE header pointer", entities.ErrFormat)
	ErrChecksumOutOfRange = fmt.Errorf("%w: checksum field outside image", entities.ErrFormat)
	ErrChecksumMisaligned = fmt.Errorf("%w: checksum field not 4-byte aligned", entities.ErrFormat)
	ErrImageTooLarge      = fmt.Errorf("%w: image larger than 4 GiB", entities.ErrFormat)
)

// NormalizedImage is the result of NormalizePE
type NormalizedImage struct {
	Data           []byte
	OriginalSize   int
	ChecksumOffset int
	Checksum       uint32
}

// NormalizePE pads a PE image with zeros to an 8-byte boundary and rewrites
// its header checksum over the padded bytes. The input slice is not modified.
// Normalizing an already normalized image returns identical bytes.
func NormalizePE(image []byte) (*NormalizedImage, error) {
	if len(image) < minImageSize {
		return nil, fmt.Errorf("%w (%d bytes, need at least %d)", ErrImageTooShort, len(image), minImageSize)
	}

	peOffset := binary.LittleEndian.Uint32(image[peHeaderPointerOffset:minImageSize])
	checksumOffset := uint64(peOffset) + peChecksumFieldOffset

	padded := padImage(image)
	if uint64(len(padded)) > math.MaxUint32 {
		return nil, ErrImageTooLarge
	}
	if checksumOffset+4 > uint64(len(padded)) {
		return nil, fmt.Errorf("%w (offset %d, image %d bytes)", ErrChecksumOutOfRange, checksumOffset, len(padded))
	}
	if checksumOffset%4 != 0 {
		return nil, fmt.Errorf("%w (offset %d)", ErrChecksumMisaligned, checksumOffset)
	}

	offset := int(checksumOffset)
	checksum := PEChecksum(padded, offset)
	binary.LittleEndian.PutUint32(padded[offset:offset+4], checksum)

	return &NormalizedImage{
		Data:           padded,
		OriginalSize:   len(image),
		ChecksumOffset: offset,
		Checksum:       checksum,
	}, nil
}

// PEChecksum computes the PE image checksum over data, skipping the 32-bit
// word at checksumOffset. Words are little-endian; trailing bytes that do not
// fill a word are ignored, so callers pass a padded image.
func PEChecksum(data []byte, checksumOffset int) uint32 {
	skip := checksumOffset / 4
	var sum uint64

	for i := 0; i+4 <= len(data); i += 4 {
		if i/4 == skip {
			continue
		}
		sum += uint64(binary.LittleEndian.Uint32(data[i : i+4]))
		sum = (sum & 0xFFFFFFFF) + (sum >> 32)
	}

	sum = (sum & 0xFFFF) + (sum >> 16)
	sum += sum >> 16
	sum &= 0xFFFF

	return uint32(sum) + uint32(len(data))
}

// padImage copies image into a new slice whose length is a multiple of 8
func padImage(image []byte) []byte {
	size := len(image)
	if rem := size % peAlignment; rem != 0 {
		size += peAlignment - rem
	}
	padded := make([]byte, size)
	copy(padded, image)
	return padded
}
