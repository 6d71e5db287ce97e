package ids

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/aurumledger/aurum/packages/cb58"
	"github.com/aurumledger/aurum/packages/hashing"
)

// region ID ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// IDLength contains the byte length of an ID.
const IDLength = 32

// ID is the general purpose identifier of the protocol (transactions, chains,
// blocks). Two IDs are equal iff all of their bytes are equal, which also makes
// them usable as map keys.
type ID [IDLength]byte

// EmptyID contains the null-value of the ID type.
var EmptyID ID

// IDFromBytes creates an ID from a sequence of at most IDLength bytes. Shorter
// input is right-padded with zeros. Passing more than IDLength bytes is a
// programmer error and panics.
func IDFromBytes(b []byte) (id ID) {
	if len(b) > IDLength {
		panic(fmt.Sprintf("length of passed byte slice (%d) exceeds the length of an ID (%d)", len(b), IDLength))
	}
	copy(id[:], b)

	return id
}

// IDFromBase58EncodedString creates an ID from its canonical text
// representation.
func IDFromBase58EncodedString(base58EncodedString string) (id ID, err error) {
	decoded, err := cb58.Decode(base58EncodedString)
	if err != nil {
		err = errors.Errorf("failed to decode base58 encoded ID: %w", err)
		return
	}
	if len(decoded) > IDLength {
		err = errors.Errorf("decoded payload of length %d exceeds the length of an ID (%d): %w", len(decoded), IDLength, cerrors.ErrParseBytesFailed)
		return
	}

	return IDFromBytes(decoded), nil
}

// IDFromMarshalUtil unmarshals an ID using a MarshalUtil (for easier
// unmarshalling).
func IDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (id ID, err error) {
	idBytes, err := marshalUtil.ReadBytes(IDLength)
	if err != nil {
		err = errors.Errorf("failed to parse ID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(id[:], idBytes)

	return
}

// IsEmpty returns true if the ID equals the all-zero EmptyID.
func (i ID) IsEmpty() bool {
	return i == EmptyID
}

// Bytes returns the raw bytes of the ID.
func (i ID) Bytes() []byte {
	return i[:]
}

// Base58 returns the canonical text representation of the ID.
func (i ID) Base58() string {
	return cb58.Encode(i[:])
}

// Compare compares two IDs byte-wise and returns -1, 0 or 1.
func (i ID) Compare(other ID) int {
	return bytes.Compare(i[:], other[:])
}

// Prefix derives a namespaced child ID from the ID and the given sequence of
// tags: every tag is serialized as a big-endian uint64, the raw bytes of the
// ID are appended and the result is hashed with SHA-256.
func (i ID) Prefix(prefixes ...uint64) ID {
	prefixBytes := make([]byte, marshalutil.Uint64Size*len(prefixes))
	for j, prefix := range prefixes {
		binary.BigEndian.PutUint64(prefixBytes[marshalutil.Uint64Size*j:], prefix)
	}

	return IDFromBytes(hashing.Sha256(byteutils.ConcatBytes(prefixBytes, i.Bytes())))
}

// String returns a human-readable version of the ID.
func (i ID) String() string {
	return i.Base58()
}

// MarshalJSON serializes the ID as its canonical text representation.
func (i ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Base58())
}

// UnmarshalJSON parses an ID from its canonical text representation.
func (i *ID) UnmarshalJSON(b []byte) (err error) {
	var encoded string
	if err = json.Unmarshal(b, &encoded); err != nil {
		return errors.Errorf("failed to read ID as a string: %w", err)
	}

	id, err := IDFromBase58EncodedString(encoded)
	if err != nil {
		return errors.Errorf("failed to parse ID from string: %w", err)
	}
	*i = id

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region IDs //////////////////////////////////////////////////////////////////////////////////////////////////////////

// IDs represents an ordered collection of IDs.
type IDs []ID

// IDsFromBytes unmarshals a collection of IDs from a sequence of bytes.
func IDsFromBytes(b []byte) (ids IDs, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(b)
	if ids, err = IDsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse IDs from MarshalUtil: %w", err)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// IDsFromMarshalUtil unmarshals a collection of IDs using a MarshalUtil (for
// easier unmarshalling).
func IDsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (ids IDs, err error) {
	idCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse IDs count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	// the count is attacker-controlled, so the collection grows with the
	// elements that are actually present instead of being pre-allocated
	ids = make(IDs, 0)
	for j := uint32(0); j < idCount; j++ {
		id, idErr := IDFromMarshalUtil(marshalUtil)
		if idErr != nil {
			ids = nil
			err = errors.Errorf("failed to parse ID: %w", idErr)
			return
		}
		ids = append(ids, id)
	}

	return
}

// Compare compares two collections of IDs. The collection lengths are compared
// first because the wire encoding writes the element count before the
// elements; only collections of equal length are compared element-wise.
func (i IDs) Compare(other IDs) int {
	if lenDiff := len(i) - len(other); lenDiff != 0 {
		if lenDiff < 0 {
			return -1
		}

		return 1
	}

	for j, id := range i {
		if diff := id.Compare(other[j]); diff != 0 {
			return diff
		}
	}

	return 0
}

// Equals returns true if both collections have the same length and contain the
// same elements in the same order.
func (i IDs) Equals(other IDs) bool {
	return i.Compare(other) == 0
}

// Sort sorts the collection in place in ascending element order.
func (i IDs) Sort() {
	sort.Slice(i, func(j, k int) bool {
		return i[j].Compare(i[k]) < 0
	})
}

// Clone returns a copy of the collection.
func (i IDs) Clone() (clonedIDs IDs) {
	clonedIDs = make(IDs, len(i))
	copy(clonedIDs, i)

	return
}

// Bytes returns a marshaled version of the collection that writes the element
// count before the elements.
func (i IDs) Bytes() []byte {
	marshalUtil := marshalutil.New(marshalutil.Uint32Size + len(i)*IDLength)
	marshalUtil.WriteUint32(uint32(len(i)))
	for _, id := range i {
		marshalUtil.WriteBytes(id.Bytes())
	}

	return marshalUtil.Bytes()
}

// Base58s returns the canonical text representations of the contained IDs.
func (i IDs) Base58s() (result []string) {
	result = make([]string, 0, len(i))
	for _, id := range i {
		result = append(result, id.Base58())
	}

	return
}

// String returns a human-readable version of the collection.
func (i IDs) String() string {
	return fmt.Sprintf("IDs(%v)", i.Base58s())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
