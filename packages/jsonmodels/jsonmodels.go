// Package jsonmodels defines the document models that carry identifiers across
// API boundaries. Identifiers travel as their canonical text representation;
// the Decode helpers implement the required (absent or unparsable is an error)
// and optional (absent maps to nil) binding modes.
package jsonmodels

import (
	"github.com/cockroachdb/errors"

	"github.com/aurumledger/aurum/packages/ids"
)

// region decode helpers ///////////////////////////////////////////////////////////////////////////////////////////////

// DecodeID parses a required ID field. An empty string (absent field) or
// unparsable text is an error.
func DecodeID(encodedID string) (ids.ID, error) {
	if encodedID == "" {
		return ids.EmptyID, errors.New("required ID field is missing")
	}

	id, err := ids.IDFromBase58EncodedString(encodedID)
	if err != nil {
		return ids.EmptyID, errors.Errorf("failed to parse required ID field: %w", err)
	}

	return id, nil
}

// DecodeOptionalID parses an optional ID field. An empty string (absent field)
// maps to nil; unparsable text is still an error.
func DecodeOptionalID(encodedID string) (*ids.ID, error) {
	if encodedID == "" {
		return nil, nil
	}

	id, err := ids.IDFromBase58EncodedString(encodedID)
	if err != nil {
		return nil, errors.Errorf("failed to parse optional ID field: %w", err)
	}

	return &id, nil
}

// DecodeShortID parses a required ShortID field.
func DecodeShortID(encodedShortID string) (ids.ShortID, error) {
	if encodedShortID == "" {
		return ids.EmptyShortID, errors.New("required ShortID field is missing")
	}

	shortID, err := ids.ShortIDFromBase58EncodedString(encodedShortID)
	if err != nil {
		return ids.EmptyShortID, errors.Errorf("failed to parse required ShortID field: %w", err)
	}

	return shortID, nil
}

// DecodeOptionalShortID parses an optional ShortID field.
func DecodeOptionalShortID(encodedShortID string) (*ids.ShortID, error) {
	if encodedShortID == "" {
		return nil, nil
	}

	shortID, err := ids.ShortIDFromBase58EncodedString(encodedShortID)
	if err != nil {
		return nil, errors.Errorf("failed to parse optional ShortID field: %w", err)
	}

	return &shortID, nil
}

// DecodeNodeID parses a required NodeID field, with or without the "NodeID-"
// prefix.
func DecodeNodeID(encodedNodeID string) (ids.NodeID, error) {
	if encodedNodeID == "" {
		return ids.EmptyNodeID, errors.New("required NodeID field is missing")
	}

	nodeID, err := ids.NodeIDFromBase58EncodedString(encodedNodeID)
	if err != nil {
		return ids.EmptyNodeID, errors.Errorf("failed to parse required NodeID field: %w", err)
	}

	return nodeID, nil
}

// DecodeOptionalNodeID parses an optional NodeID field.
func DecodeOptionalNodeID(encodedNodeID string) (*ids.NodeID, error) {
	if encodedNodeID == "" {
		return nil, nil
	}

	nodeID, err := ids.NodeIDFromBase58EncodedString(encodedNodeID)
	if err != nil {
		return nil, errors.Errorf("failed to parse optional NodeID field: %w", err)
	}

	return &nodeID, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Node /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Node holds the identity of a network participant.
type Node struct {
	NodeID  string `json:"nodeID"`
	ShortID string `json:"shortID,omitempty"`
}

// NewNode creates a Node document from the given NodeID.
func NewNode(nodeID ids.NodeID) *Node {
	return &Node{
		NodeID:  nodeID.String(),
		ShortID: nodeID.ShortID().Base58(),
	}
}

// ToNodeID parses the required nodeID field of the document.
func (n *Node) ToNodeID() (ids.NodeID, error) {
	nodeID, err := DecodeNodeID(n.NodeID)
	if err != nil {
		return ids.EmptyNodeID, errors.Errorf("failed to parse Node document: %w", err)
	}

	return nodeID, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Chain ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Chain describes a chain of the ledger. The parent chain is optional because
// the root chain has none.
type Chain struct {
	ChainID       string `json:"chainID"`
	ParentChainID string `json:"parentChainID,omitempty"`
}

// NewChain creates a Chain document from the given chain IDs.
func NewChain(chainID ids.ID, parentChainID *ids.ID) *Chain {
	chain := &Chain{
		ChainID: chainID.Base58(),
	}
	if parentChainID != nil {
		chain.ParentChainID = parentChainID.Base58()
	}

	return chain
}

// ToChainIDs parses the required chainID field and the optional parentChainID
// field of the document.
func (c *Chain) ToChainIDs() (chainID ids.ID, parentChainID *ids.ID, err error) {
	if chainID, err = DecodeID(c.ChainID); err != nil {
		err = errors.Errorf("failed to parse Chain document: %w", err)
		return
	}
	if parentChainID, err = DecodeOptionalID(c.ParentChainID); err != nil {
		err = errors.Errorf("failed to parse Chain document: %w", err)
		return
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
