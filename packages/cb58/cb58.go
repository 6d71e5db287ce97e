// Package cb58 implements the canonical checksummed base58 text encoding that
// is used for every human-readable identifier of the protocol: the payload is
// followed by the last 4 bytes of its SHA-256 digest and the result is base58
// encoded with the standard Bitcoin alphabet.
package cb58

import (
	"bytes"
	"crypto/sha256"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/mr-tron/base58"
)

// ChecksumLength contains the number of checksum bytes that are appended to the
// payload before encoding.
const ChecksumLength = 4

// ErrChecksumMismatch is returned when the checksum of a decoded string does
// not match its payload.
var ErrChecksumMismatch = errors.New("invalid checksum")

// Encode returns the canonical text representation of the given payload.
func Encode(data []byte) string {
	checksum := sha256.Sum256(data)

	return base58.Encode(byteutils.ConcatBytes(data, checksum[sha256.Size-ChecksumLength:]))
}

// Decode parses the canonical text representation and returns the verified
// payload. It fails if the string is not valid base58 or if the embedded
// checksum does not match the payload.
func Decode(encoded string) (data []byte, err error) {
	decoded, err := base58.Decode(encoded)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded string (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}
	if len(decoded) < ChecksumLength {
		err = errors.Errorf("decoded payload of length %d is too short to carry a checksum: %w", len(decoded), ErrChecksumMismatch)
		return
	}

	data = decoded[:len(decoded)-ChecksumLength]
	checksum := sha256.Sum256(data)
	if !bytes.Equal(checksum[sha256.Size-ChecksumLength:], decoded[len(decoded)-ChecksumLength:]) {
		data = nil
		err = errors.Errorf("checksum of the decoded payload does not match: %w", ErrChecksumMismatch)
		return
	}

	return
}
