package ids

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/aurumledger/aurum/packages/cb58"
)

// region ShortID //////////////////////////////////////////////////////////////////////////////////////////////////////

// ShortIDLength contains the byte length of a ShortID.
const ShortIDLength = 20

// ShortID is the address-like identifier of the protocol, usually derived from
// public key material.
type ShortID [ShortIDLength]byte

// EmptyShortID contains the null-value of the ShortID type.
var EmptyShortID ShortID

// ShortIDFromBytes creates a ShortID from a sequence of at most ShortIDLength
// bytes. Shorter input is right-padded with zeros. Passing more than
// ShortIDLength bytes is a programmer error and panics.
func ShortIDFromBytes(b []byte) (shortID ShortID) {
	if len(b) > ShortIDLength {
		panic(fmt.Sprintf("length of passed byte slice (%d) exceeds the length of a ShortID (%d)", len(b), ShortIDLength))
	}
	copy(shortID[:], b)

	return shortID
}

// ShortIDFromBase58EncodedString creates a ShortID from its canonical text
// representation.
func ShortIDFromBase58EncodedString(base58EncodedString string) (shortID ShortID, err error) {
	decoded, err := cb58.Decode(base58EncodedString)
	if err != nil {
		err = errors.Errorf("failed to decode base58 encoded ShortID: %w", err)
		return
	}
	if len(decoded) > ShortIDLength {
		err = errors.Errorf("decoded payload of length %d exceeds the length of a ShortID (%d): %w", len(decoded), ShortIDLength, cerrors.ErrParseBytesFailed)
		return
	}

	return ShortIDFromBytes(decoded), nil
}

// ShortIDFromMarshalUtil unmarshals a ShortID using a MarshalUtil (for easier
// unmarshalling).
func ShortIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (shortID ShortID, err error) {
	shortIDBytes, err := marshalUtil.ReadBytes(ShortIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse ShortID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(shortID[:], shortIDBytes)

	return
}

// IsEmpty returns true if the ShortID equals the all-zero EmptyShortID.
func (s ShortID) IsEmpty() bool {
	return s == EmptyShortID
}

// Bytes returns the raw bytes of the ShortID.
func (s ShortID) Bytes() []byte {
	return s[:]
}

// Base58 returns the canonical text representation of the ShortID.
func (s ShortID) Base58() string {
	return cb58.Encode(s[:])
}

// Compare compares two ShortIDs byte-wise and returns -1, 0 or 1.
func (s ShortID) Compare(other ShortID) int {
	return bytes.Compare(s[:], other[:])
}

// String returns a human-readable version of the ShortID.
func (s ShortID) String() string {
	return s.Base58()
}

// MarshalJSON serializes the ShortID as its canonical text representation.
func (s ShortID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Base58())
}

// UnmarshalJSON parses a ShortID from its canonical text representation.
func (s *ShortID) UnmarshalJSON(b []byte) (err error) {
	var encoded string
	if err = json.Unmarshal(b, &encoded); err != nil {
		return errors.Errorf("failed to read ShortID as a string: %w", err)
	}

	shortID, err := ShortIDFromBase58EncodedString(encoded)
	if err != nil {
		return errors.Errorf("failed to parse ShortID from string: %w", err)
	}
	*s = shortID

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ShortIDs /////////////////////////////////////////////////////////////////////////////////////////////////////

// ShortIDs represents an ordered collection of ShortIDs.
type ShortIDs []ShortID

// ShortIDsFromBytes unmarshals a collection of ShortIDs from a sequence of
// bytes.
func ShortIDsFromBytes(b []byte) (shortIDs ShortIDs, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(b)
	if shortIDs, err = ShortIDsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse ShortIDs from MarshalUtil: %w", err)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// ShortIDsFromMarshalUtil unmarshals a collection of ShortIDs using a
// MarshalUtil (for easier unmarshalling).
func ShortIDsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (shortIDs ShortIDs, err error) {
	shortIDCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse ShortIDs count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	// the count is attacker-controlled, so the collection grows with the
	// elements that are actually present instead of being pre-allocated
	shortIDs = make(ShortIDs, 0)
	for j := uint32(0); j < shortIDCount; j++ {
		shortID, shortIDErr := ShortIDFromMarshalUtil(marshalUtil)
		if shortIDErr != nil {
			shortIDs = nil
			err = errors.Errorf("failed to parse ShortID: %w", shortIDErr)
			return
		}
		shortIDs = append(shortIDs, shortID)
	}

	return
}

// Compare compares two collections of ShortIDs. The collection lengths are
// compared first because the wire encoding writes the element count before the
// elements; only collections of equal length are compared element-wise.
func (s ShortIDs) Compare(other ShortIDs) int {
	if lenDiff := len(s) - len(other); lenDiff != 0 {
		if lenDiff < 0 {
			return -1
		}

		return 1
	}

	for j, shortID := range s {
		if diff := shortID.Compare(other[j]); diff != 0 {
			return diff
		}
	}

	return 0
}

// Equals returns true if both collections have the same length and contain the
// same elements in the same order.
func (s ShortIDs) Equals(other ShortIDs) bool {
	return s.Compare(other) == 0
}

// Sort sorts the collection in place in ascending element order.
func (s ShortIDs) Sort() {
	sort.Slice(s, func(j, k int) bool {
		return s[j].Compare(s[k]) < 0
	})
}

// Clone returns a copy of the collection.
func (s ShortIDs) Clone() (clonedShortIDs ShortIDs) {
	clonedShortIDs = make(ShortIDs, len(s))
	copy(clonedShortIDs, s)

	return
}

// Bytes returns a marshaled version of the collection that writes the element
// count before the elements.
func (s ShortIDs) Bytes() []byte {
	marshalUtil := marshalutil.New(marshalutil.Uint32Size + len(s)*ShortIDLength)
	marshalUtil.WriteUint32(uint32(len(s)))
	for _, shortID := range s {
		marshalUtil.WriteBytes(shortID.Bytes())
	}

	return marshalUtil.Bytes()
}

// Base58s returns the canonical text representations of the contained
// ShortIDs.
func (s ShortIDs) Base58s() (result []string) {
	result = make([]string, 0, len(s))
	for _, shortID := range s {
		result = append(result, shortID.Base58())
	}

	return
}

// String returns a human-readable version of the collection.
func (s ShortIDs) String() string {
	return fmt.Sprintf("ShortIDs(%v)", s.Base58s())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
