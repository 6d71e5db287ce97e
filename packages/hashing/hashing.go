// Package hashing bundles the digest functions that the identifier types are
// derived with.
package hashing

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // the short address format is defined over ripemd160
)

const (
	// SHA256Length contains the byte length of a SHA-256 digest.
	SHA256Length = sha256.Size

	// AddressLength contains the byte length of a short address.
	AddressLength = ripemd160.Size
)

// Sha256 returns the SHA-256 digest of the given bytes.
func Sha256(data []byte) []byte {
	digest := sha256.Sum256(data)

	return digest[:]
}

// PubkeyBytesToAddress turns the given public key material into its 20 byte
// short address by hashing it with SHA-256 followed by RIPEMD-160.
func PubkeyBytesToAddress(pubKeyBytes []byte) []byte {
	hasher := ripemd160.New()
	hasher.Write(Sha256(pubKeyBytes))

	return hasher.Sum(nil)
}
