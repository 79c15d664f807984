package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashPrefix is prepended to digests stored in record fields (header hash,
// merkle root). Hashes are bare hex everywhere else.
const HashPrefix = "0x"

// HashTransaction computes the canonical digest of a transaction:
// the field values sorted alphabetically by field name (amount, lock_time,
// receiver, sender, signature, transaction_fee), numbers rendered as decimals
// without leading zeros, strings verbatim, joined with commas and no spaces,
// then SHA-256. The result is bare lowercase hex.
func HashTransaction(tx Transaction) string {
	canonical := fmt.Sprintf("%d,%d,%s,%s,%s,%d",
		tx.Amount,
		tx.LockTime,
		tx.Receiver,
		tx.Sender,
		tx.Signature,
		tx.TransactionFee,
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// HashHeader computes the canonical digest of a header, prefixed with 0x.
// The nine fields are joined alphabetically (difficulty, hash, height, miner,
// nonce, previous_block_header_hash, timestamp, transactions_count,
// transactions_merkle_root) under the same rendering rules as transactions.
// The hash slot is always canonicalized as the empty string, whatever the
// header currently stores, so recomputing the digest of a finalized header
// reproduces the stored value.
func HashHeader(h Header) string {
	canonical := fmt.Sprintf("%d,,%d,%s,%d,%s,%d,%d,%s",
		h.Difficulty,
		h.Height,
		h.Miner,
		h.Nonce,
		h.PreviousBlockHeaderHash,
		h.Timestamp,
		h.TransactionsCount,
		h.TransactionsMerkleRoot,
	)
	sum := sha256.Sum256([]byte(canonical))
	return HashPrefix + hex.EncodeToString(sum[:])
}

// MeetsDifficulty reports whether a header digest has at least difficulty
// leading zero hex digits, not counting the 0x prefix.
func MeetsDifficulty(hash string, difficulty uint32) bool {
	digits := StripPrefix(hash)
	if uint32(len(digits)) < difficulty {
		return false
	}
	for _, c := range digits[:difficulty] {
		if c != '0' {
			return false
		}
	}
	return true
}

// StripPrefix removes the 0x prefix from a hash, if present.
func StripPrefix(hash string) string {
	return strings.TrimPrefix(hash, HashPrefix)
}
