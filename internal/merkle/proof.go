package merkle

import (
	"fmt"

	"github.com/powsim/powsim/internal/chain"
)

// GenerateProof extracts the minimal inclusion proof for a leaf hash from a
// built tree: the sibling hash at every level of the root-to-leaf path, emitted
// in leaf-to-root order. Leaf hashes are assumed unique within the tree. If the
// hash does not appear, a not-found error wrapping chain.ErrNotFound is
// returned and no proof is produced.
func GenerateProof(root *Node, leafHash string) (*chain.InclusionProof, error) {
	target := chain.StripPrefix(leafHash)

	path := findPath(root, target)
	if path == nil {
		return nil, fmt.Errorf("leaf hash %s: %w", target, chain.ErrNotFound)
	}

	siblings := make([]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		parent, next := path[i], path[i+1]
		if parent.Left == next {
			siblings = append(siblings, parent.Right.Hash)
		} else {
			siblings = append(siblings, parent.Left.Hash)
		}
	}

	// Recorded root-to-leaf; the verifier consumes leaf-to-root.
	for i, j := 0, len(siblings)-1; i < j; i, j = i+1, j-1 {
		siblings[i], siblings[j] = siblings[j], siblings[i]
	}

	return &chain.InclusionProof{
		TransactionHash: target,
		MerkleRoot:      chain.HashPrefix + root.Hash,
		Hashes:          siblings,
	}, nil
}

// findPath returns the node path from n to the node carrying the target hash,
// searching depth-first, left subtree before right.
func findPath(n *Node, target string) []*Node {
	if n == nil {
		return nil
	}
	if n.Hash == target {
		return []*Node{n}
	}
	if path := findPath(n.Left, target); path != nil {
		return append([]*Node{n}, path...)
	}
	if path := findPath(n.Right, target); path != nil {
		return append([]*Node{n}, path...)
	}
	return nil
}

// VerifyProof replays a self-contained proof: the transaction hash is combined
// with each sibling in order, using the same numerically-smaller-first rule as
// tree construction, and the result must equal the claimed root. Returns
// ErrVerificationFailed when it does not.
func VerifyProof(proof *chain.InclusionProof) error {
	current := chain.StripPrefix(proof.TransactionHash)
	for _, sibling := range proof.Hashes {
		current = Combine(current, chain.StripPrefix(sibling))
	}
	if current != chain.StripPrefix(proof.MerkleRoot) {
		return fmt.Errorf("computed root %s%s does not match claimed root %s: %w",
			chain.HashPrefix, current, proof.MerkleRoot, ErrVerificationFailed)
	}
	return nil
}
