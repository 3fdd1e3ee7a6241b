package ccip

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LabelHash returns keccak256 of the UTF-8 bytes of label.
func LabelHash(label string) common.Hash {
	return crypto.Keccak256Hash([]byte(label))
}

// NameHash implements the ENS namehash over a dot separated name. The empty name hashes
// to the zero node.
func NameHash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		lh := LabelHash(labels[i])
		node = crypto.Keccak256Hash(node[:], lh[:])
	}
	return node
}

// SubnameNode returns the node of label under parent.
func SubnameNode(parent common.Hash, label string) common.Hash {
	lh := LabelHash(label)
	return crypto.Keccak256Hash(parent[:], lh[:])
}
