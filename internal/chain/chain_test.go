package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/internal/chain"
)

func testChain() chain.Blockchain {
	return chain.Blockchain{
		{Header: chain.Header{Height: 0, Timestamp: 10}},
		{
			Header: chain.Header{Height: 1, Timestamp: 30},
			Transactions: []chain.Transaction{
				{Amount: 1, Receiver: "r1", Sender: "s1", TransactionFee: 5},
				{Amount: 2, Receiver: "r2", Sender: "s2", TransactionFee: 7},
			},
		},
		{Header: chain.Header{Height: 2, Timestamp: 20}},
	}
}

func TestLatestScansForMaxTimestamp(t *testing.T) {
	bc := testChain()

	// The block with the highest timestamp is not the last stored one.
	latest, err := bc.Latest()
	require.NoError(t, err)
	assert.Equal(t, uint32(30), latest.Header.Timestamp)
	assert.Equal(t, uint32(1), latest.Header.Height)
}

func TestLatestEmptyChain(t *testing.T) {
	_, err := chain.Blockchain{}.Latest()
	assert.ErrorIs(t, err, chain.ErrNotFound)
}

func TestBlockLookupIsOneBased(t *testing.T) {
	bc := testChain()

	block, err := bc.Block(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), block.Header.Height)

	_, err = bc.Block(0)
	assert.ErrorIs(t, err, chain.ErrNotFound)

	_, err = bc.Block(4)
	assert.ErrorIs(t, err, chain.ErrNotFound)
}

func TestTransactionHashLookup(t *testing.T) {
	bc := testChain()

	hash, err := bc.TransactionHash(2, 2)
	require.NoError(t, err)
	assert.Equal(t, chain.HashTransaction(bc[1].Transactions[1]), hash)

	_, err = bc.TransactionHash(2, 0)
	assert.ErrorIs(t, err, chain.ErrNotFound)

	_, err = bc.TransactionHash(2, 3)
	assert.ErrorIs(t, err, chain.ErrNotFound)

	_, err = bc.TransactionHash(1, 1)
	assert.ErrorIs(t, err, chain.ErrNotFound, "block without transactions")
}

func linkedChain() chain.Blockchain {
	genesis := chain.Header{Difficulty: 0, Height: 0, Miner: "0xm", Timestamp: 10}
	genesis.Hash = chain.HashHeader(genesis)

	next := chain.Header{
		Difficulty:              0,
		Height:                  1,
		Miner:                   "0xm",
		PreviousBlockHeaderHash: genesis.Hash,
		Timestamp:               20,
	}
	next.Hash = chain.HashHeader(next)

	return chain.Blockchain{{Header: genesis}, {Header: next}}
}

func TestVerifyLinkage(t *testing.T) {
	require.NoError(t, chain.VerifyLinkage(linkedChain()))
}

func TestVerifyLinkageBrokenLink(t *testing.T) {
	bc := linkedChain()
	bc[1].Header.PreviousBlockHeaderHash = "0xdeadbeef"
	bc[1].Header.Hash = chain.HashHeader(bc[1].Header)

	err := chain.VerifyLinkage(bc)
	assert.ErrorIs(t, err, chain.ErrBrokenLink)
}

func TestVerifyLinkageTamperedHeader(t *testing.T) {
	bc := linkedChain()
	bc[1].Header.Timestamp = 99 // stored hash no longer matches

	err := chain.VerifyLinkage(bc)
	assert.ErrorIs(t, err, chain.ErrBrokenLink)
}
