package merkle_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/internal/chain"
	"github.com/powsim/powsim/internal/merkle"
)

// transactionLeaves returns n realistic leaf hashes.
func transactionLeaves(n int) []string {
	leaves := make([]string, 0, n)
	for i := 0; i < n; i++ {
		leaves = append(leaves, chain.HashTransaction(chain.Transaction{
			Amount:         uint64(i + 1),
			Receiver:       fmt.Sprintf("0xr%d", i),
			Sender:         fmt.Sprintf("0xs%d", i),
			Signature:      fmt.Sprintf("0xsig%d", i),
			TransactionFee: uint64(i),
		}))
	}
	return leaves
}

func TestProofRoundTrip(t *testing.T) {
	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("%dLeaves", n), func(t *testing.T) {
			leaves := transactionLeaves(n)
			root, err := merkle.Build(leaves)
			require.NoError(t, err)

			for _, leaf := range leaves {
				proof, err := merkle.GenerateProof(root, leaf)
				require.NoError(t, err)
				assert.Equal(t, leaf, proof.TransactionHash)
				assert.Equal(t, chain.HashPrefix+root.Hash, proof.MerkleRoot)
				assert.NoError(t, merkle.VerifyProof(proof))
			}
		})
	}
}

func TestProofSingleLeaf(t *testing.T) {
	leaves := transactionLeaves(1)
	root, err := merkle.Build(leaves)
	require.NoError(t, err)

	proof, err := merkle.GenerateProof(root, leaves[0])
	require.NoError(t, err)
	assert.Empty(t, proof.Hashes)
	assert.NoError(t, merkle.VerifyProof(proof))
}

func TestProofAbsentLeaf(t *testing.T) {
	root, err := merkle.Build(transactionLeaves(4))
	require.NoError(t, err)

	_, err = merkle.GenerateProof(root, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	assert.ErrorIs(t, err, chain.ErrNotFound)
}

func TestProofMutatedSiblingFailsVerification(t *testing.T) {
	leaves := transactionLeaves(5)
	root, err := merkle.Build(leaves)
	require.NoError(t, err)

	for _, leaf := range leaves {
		proof, err := merkle.GenerateProof(root, leaf)
		require.NoError(t, err)

		for i := range proof.Hashes {
			mutated := *proof
			mutated.Hashes = append([]string(nil), proof.Hashes...)
			mutated.Hashes[i] = merkle.Combine(mutated.Hashes[i], mutated.Hashes[i])
			assert.ErrorIs(t, merkle.VerifyProof(&mutated), merkle.ErrVerificationFailed,
				"mutating sibling %d must break the proof", i)
		}
	}
}

func TestProofWrongRootFailsVerification(t *testing.T) {
	leaves := transactionLeaves(3)
	root, err := merkle.Build(leaves)
	require.NoError(t, err)

	proof, err := merkle.GenerateProof(root, leaves[1])
	require.NoError(t, err)

	proof.MerkleRoot = chain.HashPrefix + merkle.PlaceholderHash
	assert.ErrorIs(t, merkle.VerifyProof(proof), merkle.ErrVerificationFailed)
}

func TestProofOddLeafIncludesPlaceholderSibling(t *testing.T) {
	leaves := transactionLeaves(3)
	root, err := merkle.Build(leaves)
	require.NoError(t, err)

	proof, err := merkle.GenerateProof(root, leaves[2])
	require.NoError(t, err)
	require.Len(t, proof.Hashes, 2)
	assert.Equal(t, merkle.PlaceholderHash, proof.Hashes[0],
		"the odd leaf's first sibling is the padding node")
	assert.NoError(t, merkle.VerifyProof(proof))
}

// Two transactions, hashes A and B with A numerically smaller: the parent is
// the digest of A||B, the proof for A is exactly [B], and verification
// combines them in that same order.
func TestProofTwoTransactionScenario(t *testing.T) {
	a := hexLeaf("1")
	b := hexLeaf("2")

	root, err := merkle.Build([]string{a, b})
	require.NoError(t, err)
	require.Equal(t, digest(a+b), root.Hash)

	proof, err := merkle.GenerateProof(root, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, proof.Hashes)
	assert.NoError(t, merkle.VerifyProof(proof))
}
