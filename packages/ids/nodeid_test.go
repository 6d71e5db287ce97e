package ids

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumledger/aurum/packages/hashing"
)

func TestNodeIDString(t *testing.T) {
	nodeID := NodeIDFromBytes(shortIDTestBytes)

	assert.Equal(t, "NodeID-6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx", nodeID.String())
	assert.Equal(t, "6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx", nodeID.Base58())
	assert.Equal(t, "6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx", nodeID.ShortID().Base58())
}

func TestNodeIDFromBase58EncodedString(t *testing.T) {
	nodeID := NodeIDFromBytes(shortIDTestBytes)

	// the prefix is stripped if present but never required
	withoutPrefix, err := NodeIDFromBase58EncodedString("6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx")
	require.NoError(t, err)
	withPrefix, err := NodeIDFromBase58EncodedString("NodeID-6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx")
	require.NoError(t, err)

	assert.Equal(t, nodeID, withoutPrefix)
	assert.Equal(t, nodeID, withPrefix)

	_, err = NodeIDFromBase58EncodedString("NodeID-")
	require.Error(t, err)
}

func TestNodeIDFromBytes(t *testing.T) {
	assert.Equal(t, EmptyNodeID, NodeIDFromBytes(nil))
	assert.True(t, EmptyNodeID.IsEmpty())

	require.Panics(t, func() {
		NodeIDFromBytes(make([]byte, NodeIDLength+1))
	})
}

func TestNodeIDShortIDDistinctTypes(t *testing.T) {
	nodeID := NodeIDFromBytes(shortIDTestBytes)
	shortID := nodeID.ShortID()

	// same bytes, different declared type and text form
	assert.Equal(t, nodeID.Bytes(), shortID.Bytes())
	assert.NotEqual(t, nodeID.String(), shortID.String())
}

func TestNodeIDFromCertFile(t *testing.T) {
	certDER := generateTestCertificate(t)
	certFilePath := filepath.Join(t.TempDir(), "node.crt")
	require.NoError(t, os.WriteFile(certFilePath, pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certDER,
	}), 0o600))

	nodeID, err := NodeIDFromCertFile(certFilePath)
	require.NoError(t, err)
	assert.False(t, nodeID.IsEmpty())

	// matches the raw-bytes entry point and the documented hash pipeline
	assert.Equal(t, NodeIDFromCertBytes(certDER), nodeID)
	assert.Equal(t, NodeIDFromBytes(hashing.PubkeyBytesToAddress(certDER)), nodeID)
}

func TestNodeIDFromCertFileNotFound(t *testing.T) {
	_, err := NodeIDFromCertFile(filepath.Join(t.TempDir(), "does-not-exist.crt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.crt")
}

func TestNodeIDFromCertFileWrongBlockType(t *testing.T) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(privateKey)
	require.NoError(t, err)

	keyFilePath := filepath.Join(t.TempDir(), "node.key")
	require.NoError(t, os.WriteFile(keyFilePath, pem.EncodeToMemory(&pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: keyDER,
	}), 0o600))

	_, err = NodeIDFromCertFile(keyFilePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node.key")
}

func TestNodeIDFromCertFileNoPEM(t *testing.T) {
	garbageFilePath := filepath.Join(t.TempDir(), "garbage.crt")
	require.NoError(t, os.WriteFile(garbageFilePath, []byte("not a certificate"), 0o600))

	_, err := NodeIDFromCertFile(garbageFilePath)
	require.Error(t, err)
}

func TestNodeIDJSON(t *testing.T) {
	nodeID := NodeIDFromBytes(shortIDTestBytes)

	marshaled, err := json.Marshal(nodeID)
	require.NoError(t, err)
	assert.Equal(t, `"NodeID-6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx"`, string(marshaled))

	var unmarshaledNodeID NodeID
	require.NoError(t, json.Unmarshal(marshaled, &unmarshaledNodeID))
	assert.Equal(t, nodeID, unmarshaledNodeID)
}

func TestNodeIDsCompare(t *testing.T) {
	nodeIDs1 := NodeIDs{
		NodeIDFromBytes([]byte{0x05}),
		NodeIDFromBytes([]byte{0x06}),
		NodeIDFromBytes([]byte{0x07}),
	}
	nodeIDs2 := NodeIDs{
		NodeIDFromBytes([]byte{0x01}),
		NodeIDFromBytes([]byte{0x02}),
		NodeIDFromBytes([]byte{0x03}),
		NodeIDFromBytes([]byte{0x04}),
	}

	assert.Equal(t, -1, nodeIDs1.Compare(nodeIDs2))
	assert.Equal(t, 1, nodeIDs2.Compare(nodeIDs1))
	assert.True(t, nodeIDs1.Equals(nodeIDs1.Clone()))
}

func TestNodeIDsSort(t *testing.T) {
	nodeIDs := NodeIDs{
		NodeIDFromBytes([]byte{0x03}),
		NodeIDFromBytes([]byte{0x02}),
		NodeIDFromBytes([]byte{0x01}),
	}
	nodeIDs.Sort()

	assert.True(t, nodeIDs.Equals(NodeIDs{
		NodeIDFromBytes([]byte{0x01}),
		NodeIDFromBytes([]byte{0x02}),
		NodeIDFromBytes([]byte{0x03}),
	}))
}

func TestNodeIDsBase58s(t *testing.T) {
	nodeIDs := NodeIDs{
		NodeIDFromBytes(shortIDTestBytes),
		EmptyNodeID,
	}

	// bare bodies, without the "NodeID-" prefix
	base58s := nodeIDs.Base58s()
	require.Len(t, base58s, 2)
	assert.Equal(t, "6ZmBHXTqjknJoZtXbnJ6x7af863rXDTwx", base58s[0])
	assert.Equal(t, EmptyNodeID.ShortID().Base58(), base58s[1])
	for _, encoded := range base58s {
		assert.False(t, strings.HasPrefix(encoded, NodeIDPrefix))
	}
}

func TestNodeIDsFromBytesForgedCount(t *testing.T) {
	// a forged element count far beyond the available bytes must fail without
	// allocating for the claimed count
	marshalUtil := marshalutil.New(marshalutil.Uint32Size + NodeIDLength)
	marshalUtil.WriteUint32(math.MaxUint32)
	marshalUtil.WriteBytes(NodeIDFromBytes([]byte{0x01}).Bytes())

	_, _, err := NodeIDsFromBytes(marshalUtil.Bytes())
	require.Error(t, err)
}

func TestNodeIDsBytes(t *testing.T) {
	nodeIDs := NodeIDs{
		NodeIDFromBytes([]byte{0x01}),
		NodeIDFromBytes(shortIDTestBytes),
	}

	restoredNodeIDs, consumedBytes, err := NodeIDsFromBytes(nodeIDs.Bytes())
	require.NoError(t, err)
	assert.Equal(t, len(nodeIDs.Bytes()), consumedBytes)
	assert.True(t, nodeIDs.Equals(restoredNodeIDs))
}

func generateTestCertificate(t *testing.T) (certDER []byte) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test node"},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(time.Hour),
	}
	certDER, err = x509.CreateCertificate(rand.Reader, template, template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	return certDER
}
