package ids

import (
	"bytes"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/aurumledger/aurum/packages/cb58"
	"github.com/aurumledger/aurum/packages/hashing"
)

// region NodeID ///////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// NodeIDLength contains the byte length of a NodeID.
	NodeIDLength = ShortIDLength

	// NodeIDPrefix contains the literal prefix of the text representation of a
	// NodeID.
	NodeIDPrefix = "NodeID-"

	pemCertificateBlockType = "CERTIFICATE"
)

// NodeID identifies a participant of the network. It shares the byte layout of
// a ShortID but carries its own text prefix and is never implicitly
// interchangeable with it.
type NodeID [NodeIDLength]byte

// EmptyNodeID contains the null-value of the NodeID type.
var EmptyNodeID NodeID

// NodeIDFromBytes creates a NodeID from a sequence of at most NodeIDLength
// bytes. Shorter input is right-padded with zeros. Passing more than
// NodeIDLength bytes is a programmer error and panics.
func NodeIDFromBytes(b []byte) (nodeID NodeID) {
	if len(b) > NodeIDLength {
		panic(fmt.Sprintf("length of passed byte slice (%d) exceeds the length of a NodeID (%d)", len(b), NodeIDLength))
	}
	copy(nodeID[:], b)

	return nodeID
}

// NodeIDFromBase58EncodedString creates a NodeID from its canonical text
// representation. The "NodeID-" prefix is stripped if present but is not
// required.
func NodeIDFromBase58EncodedString(base58EncodedString string) (nodeID NodeID, err error) {
	decoded, err := cb58.Decode(strings.TrimPrefix(base58EncodedString, NodeIDPrefix))
	if err != nil {
		err = errors.Errorf("failed to decode base58 encoded NodeID: %w", err)
		return
	}
	if len(decoded) > NodeIDLength {
		err = errors.Errorf("decoded payload of length %d exceeds the length of a NodeID (%d): %w", len(decoded), NodeIDLength, cerrors.ErrParseBytesFailed)
		return
	}

	return NodeIDFromBytes(decoded), nil
}

// NodeIDFromMarshalUtil unmarshals a NodeID using a MarshalUtil (for easier
// unmarshalling).
func NodeIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (nodeID NodeID, err error) {
	nodeIDBytes, err := marshalUtil.ReadBytes(NodeIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse NodeID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(nodeID[:], nodeIDBytes)

	return
}

// NodeIDFromCertFile loads a NodeID from the PEM encoded X.509 certificate at
// the given path. The first PEM block of the file must contain the
// certificate.
func NodeIDFromCertFile(certFilePath string) (nodeID NodeID, err error) {
	certFileBytes, err := os.ReadFile(certFilePath)
	if err != nil {
		err = errors.Errorf("failed to read certificate file %s: %w", certFilePath, err)
		return
	}

	block, _ := pem.Decode(certFileBytes)
	if block == nil {
		err = errors.Errorf("certificate file %s does not contain a PEM block", certFilePath)
		return
	}
	if block.Type != pemCertificateBlockType {
		err = errors.Errorf("certificate file %s contains a %s instead of a certificate", certFilePath, block.Type)
		return
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		err = errors.Errorf("failed to parse certificate from file %s: %w", certFilePath, err)
		return
	}

	return NodeIDFromCertBytes(cert.Raw), nil
}

// NodeIDFromCertBytes derives a NodeID from the raw DER bytes of an X.509
// certificate by computing their short address.
func NodeIDFromCertBytes(certRawBytes []byte) NodeID {
	return NodeIDFromBytes(hashing.PubkeyBytesToAddress(certRawBytes))
}

// IsEmpty returns true if the NodeID equals the all-zero EmptyNodeID.
func (n NodeID) IsEmpty() bool {
	return n == EmptyNodeID
}

// Bytes returns the raw bytes of the NodeID.
func (n NodeID) Bytes() []byte {
	return n[:]
}

// Base58 returns the canonical text representation of the NodeID without the
// "NodeID-" prefix.
func (n NodeID) Base58() string {
	return cb58.Encode(n[:])
}

// ShortID reinterprets the bytes of the NodeID as a ShortID without
// re-hashing.
func (n NodeID) ShortID() ShortID {
	return ShortIDFromBytes(n[:])
}

// Compare compares two NodeIDs byte-wise and returns -1, 0 or 1.
func (n NodeID) Compare(other NodeID) int {
	return bytes.Compare(n[:], other[:])
}

// String returns the canonical text representation of the NodeID including the
// "NodeID-" prefix.
func (n NodeID) String() string {
	return NodeIDPrefix + n.Base58()
}

// MarshalJSON serializes the NodeID as its canonical prefixed text
// representation.
func (n NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON parses a NodeID from its canonical text representation, with
// or without the "NodeID-" prefix.
func (n *NodeID) UnmarshalJSON(b []byte) (err error) {
	var encoded string
	if err = json.Unmarshal(b, &encoded); err != nil {
		return errors.Errorf("failed to read NodeID as a string: %w", err)
	}

	nodeID, err := NodeIDFromBase58EncodedString(encoded)
	if err != nil {
		return errors.Errorf("failed to parse NodeID from string: %w", err)
	}
	*n = nodeID

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NodeIDs //////////////////////////////////////////////////////////////////////////////////////////////////////

// NodeIDs represents an ordered collection of NodeIDs.
type NodeIDs []NodeID

// NodeIDsFromBytes unmarshals a collection of NodeIDs from a sequence of
// bytes.
func NodeIDsFromBytes(b []byte) (nodeIDs NodeIDs, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(b)
	if nodeIDs, err = NodeIDsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse NodeIDs from MarshalUtil: %w", err)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// NodeIDsFromMarshalUtil unmarshals a collection of NodeIDs using a
// MarshalUtil (for easier unmarshalling).
func NodeIDsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (nodeIDs NodeIDs, err error) {
	nodeIDCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse NodeIDs count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	// the count is attacker-controlled, so the collection grows with the
	// elements that are actually present instead of being pre-allocated
	nodeIDs = make(NodeIDs, 0)
	for j := uint32(0); j < nodeIDCount; j++ {
		nodeID, nodeIDErr := NodeIDFromMarshalUtil(marshalUtil)
		if nodeIDErr != nil {
			nodeIDs = nil
			err = errors.Errorf("failed to parse NodeID: %w", nodeIDErr)
			return
		}
		nodeIDs = append(nodeIDs, nodeID)
	}

	return
}

// Compare compares two collections of NodeIDs. The collection lengths are
// compared first because the wire encoding writes the element count before the
// elements; only collections of equal length are compared element-wise.
func (n NodeIDs) Compare(other NodeIDs) int {
	if lenDiff := len(n) - len(other); lenDiff != 0 {
		if lenDiff < 0 {
			return -1
		}

		return 1
	}

	for j, nodeID := range n {
		if diff := nodeID.Compare(other[j]); diff != 0 {
			return diff
		}
	}

	return 0
}

// Equals returns true if both collections have the same length and contain the
// same elements in the same order.
func (n NodeIDs) Equals(other NodeIDs) bool {
	return n.Compare(other) == 0
}

// Sort sorts the collection in place in ascending element order.
func (n NodeIDs) Sort() {
	sort.Slice(n, func(j, k int) bool {
		return n[j].Compare(n[k]) < 0
	})
}

// Clone returns a copy of the collection.
func (n NodeIDs) Clone() (clonedNodeIDs NodeIDs) {
	clonedNodeIDs = make(NodeIDs, len(n))
	copy(clonedNodeIDs, n)

	return
}

// Bytes returns a marshaled version of the collection that writes the element
// count before the elements.
func (n NodeIDs) Bytes() []byte {
	marshalUtil := marshalutil.New(marshalutil.Uint32Size + len(n)*NodeIDLength)
	marshalUtil.WriteUint32(uint32(len(n)))
	for _, nodeID := range n {
		marshalUtil.WriteBytes(nodeID.Bytes())
	}

	return marshalUtil.Bytes()
}

// Base58s returns the canonical text representations of the contained
// NodeIDs without the "NodeID-" prefix.
func (n NodeIDs) Base58s() (result []string) {
	result = make([]string, 0, len(n))
	for _, nodeID := range n {
		result = append(result, nodeID.Base58())
	}

	return
}

// String returns a human-readable version of the collection.
func (n NodeIDs) String() string {
	strs := make([]string, 0, len(n))
	for _, nodeID := range n {
		strs = append(strs, nodeID.String())
	}

	return fmt.Sprintf("NodeIDs(%v)", strs)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
