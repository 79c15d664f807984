// Package merkle builds binary hash trees over transaction digests and
// generates and verifies inclusion proofs against them. All hashes inside the
// tree are bare lowercase hex; the 0x prefix appears only on the merkle_root
// field of an emitted proof.
package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/powsim/powsim/internal/chain"
)

// PlaceholderHash pads an odd level. It is a reserved value the hasher can
// never produce.
const PlaceholderHash = "0000000000000000000000000000000000000000000000000000000000000000"

var (
	// ErrNoLeaves is returned when a tree is requested over zero leaves.
	ErrNoLeaves = errors.New("no transaction hashes to build a tree from")

	// ErrVerificationFailed is returned when a proof does not reduce to its
	// claimed root. A reportable outcome, never fatal.
	ErrVerificationFailed = errors.New("inclusion proof verification failed")
)

// Node is a Merkle tree node. Each node exclusively owns its children; a leaf
// has none. Trees are built per call and dropped, never persisted.
type Node struct {
	Hash  string
	Left  *Node
	Right *Node
}

// Build folds an ordered sequence of leaf hashes into a tree and returns the
// root. Levels with an odd node count are padded with a placeholder node
// before pairing. Pairs combine left-to-right positionally; the combination
// digest orders the two hashes by numeric value, not position.
func Build(leaves []string) (*Node, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	nodes := make([]*Node, 0, len(leaves))
	for _, leaf := range leaves {
		nodes = append(nodes, &Node{Hash: chain.StripPrefix(leaf)})
	}

	for len(nodes) > 1 {
		if len(nodes)%2 != 0 {
			nodes = append(nodes, &Node{Hash: PlaceholderHash})
		}
		next := make([]*Node, 0, len(nodes)/2)
		for i := 0; i < len(nodes); i += 2 {
			left, right := nodes[i], nodes[i+1]
			next = append(next, &Node{
				Hash:  Combine(left.Hash, right.Hash),
				Left:  left,
				Right: right,
			})
		}
		nodes = next
	}

	return nodes[0], nil
}

// Combine digests the concatenation of two hashes, numerically smaller hash
// first. Both hashes are interpreted as big unsigned hex integers; lexical
// string order is not used, since it diverges from numeric order the moment
// digest lengths differ. Equal values concatenate identically either way.
func Combine(a, b string) string {
	if hexValue(b).Cmp(hexValue(a)) < 0 {
		a, b = b, a
	}
	sum := sha256.Sum256([]byte(a + b))
	return hex.EncodeToString(sum[:])
}

func hexValue(hash string) *big.Int {
	v, ok := new(big.Int).SetString(chain.StripPrefix(hash), 16)
	if !ok {
		return new(big.Int)
	}
	return v
}
