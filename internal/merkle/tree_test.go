package merkle_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/internal/merkle"
)

// hexLeaf builds a 64-digit hex string with the given numeric value suffix.
func hexLeaf(suffix string) string {
	return strings.Repeat("0", 64-len(suffix)) + suffix
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestCombineOrdersNumerically(t *testing.T) {
	// "2" is lexically greater than "10" but numerically smaller (2 < 16);
	// the numerically smaller hash concatenates first.
	assert.Equal(t, digest("210"), merkle.Combine("2", "10"))
	assert.Equal(t, digest("210"), merkle.Combine("10", "2"), "combination is direction independent")
	assert.Equal(t, digest("77"), merkle.Combine("7", "7"), "equal values concatenate identically either way")
}

func TestBuildSingleLeaf(t *testing.T) {
	leaf := hexLeaf("a1")

	root, err := merkle.Build([]string{leaf})
	require.NoError(t, err)
	assert.Equal(t, leaf, root.Hash)
	assert.Nil(t, root.Left)
	assert.Nil(t, root.Right)
}

func TestBuildTwoLeaves(t *testing.T) {
	a, b := hexLeaf("1"), hexLeaf("2")

	root, err := merkle.Build([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, digest(a+b), root.Hash)
	assert.Equal(t, a, root.Left.Hash)
	assert.Equal(t, b, root.Right.Hash)
}

func TestBuildOddLeavesPadsWithPlaceholder(t *testing.T) {
	h1, h2, h3 := hexLeaf("1"), hexLeaf("2"), hexLeaf("3")

	root, err := merkle.Build([]string{h1, h2, h3})
	require.NoError(t, err)

	left := merkle.Combine(h1, h2)
	right := merkle.Combine(h3, merkle.PlaceholderHash)
	assert.Equal(t, left, root.Left.Hash)
	assert.Equal(t, right, root.Right.Hash)
	assert.Equal(t, merkle.Combine(left, right), root.Hash)
	assert.Equal(t, merkle.PlaceholderHash, root.Right.Right.Hash, "the padding node sits beside the odd leaf")
}

func TestBuildIsDeterministic(t *testing.T) {
	leaves := []string{hexLeaf("1"), hexLeaf("2"), hexLeaf("3")}

	first, err := merkle.Build(leaves)
	require.NoError(t, err)
	second, err := merkle.Build(leaves)
	require.NoError(t, err)
	assert.Equal(t, first.Hash, second.Hash)
}

func TestBuildNormalizesPrefixedLeaves(t *testing.T) {
	bare, err := merkle.Build([]string{hexLeaf("a"), hexLeaf("b")})
	require.NoError(t, err)
	prefixed, err := merkle.Build([]string{"0x" + hexLeaf("a"), "0x" + hexLeaf("b")})
	require.NoError(t, err)
	assert.Equal(t, bare.Hash, prefixed.Hash)
}

func TestBuildEmptyLeaves(t *testing.T) {
	_, err := merkle.Build(nil)
	assert.ErrorIs(t, err, merkle.ErrNoLeaves)
}
