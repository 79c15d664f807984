package chain

// Transaction is a pending or included transfer. Immutable once created;
// the mempool owns it until it is drained into a mined block.
type Transaction struct {
	Amount         uint64 `json:"amount"`
	LockTime       uint32 `json:"lock_time"`
	Receiver       string `json:"receiver"`
	Sender         string `json:"sender"`
	Signature      string `json:"signature"`
	TransactionFee uint64 `json:"transaction_fee"`
}

// Header is a block header. Nonce is mutated only during mining and Hash is
// written once, after a nonce satisfying the difficulty target is found.
type Header struct {
	Difficulty              uint32 `json:"difficulty"`
	Height                  uint32 `json:"height"`
	Miner                   string `json:"miner"`
	Nonce                   uint32 `json:"nonce"`
	Hash                    string `json:"hash"`
	PreviousBlockHeaderHash string `json:"previous_block_header_hash"`
	Timestamp               uint32 `json:"timestamp"`
	TransactionsCount       uint32 `json:"transactions_count"`
	TransactionsMerkleRoot  string `json:"transactions_merkle_root"`
}

// Block is a header plus the ordered transactions it commits to. The order is
// the order used to compute the Merkle leaves and must survive serialization.
type Block struct {
	Header       Header        `json:"header"`
	Transactions []Transaction `json:"transactions"`
}

// InclusionProof proves that a transaction is committed to by a Merkle root.
// Hashes are the sibling digests in leaf-to-root order, one per tree level.
type InclusionProof struct {
	TransactionHash string   `json:"transaction_hash"`
	MerkleRoot      string   `json:"merkle_root"`
	Hashes          []string `json:"hashes"`
}

// Blockchain is an ordered sequence of blocks, append-only during mining.
type Blockchain []Block

// Latest returns the most recent block, defined as the block with the maximum
// timestamp. Storage order and recency order may diverge, so the whole chain
// is scanned.
func (bc Blockchain) Latest() (*Block, error) {
	if len(bc) == 0 {
		return nil, ErrNotFound
	}
	latest := &bc[0]
	for i := range bc {
		if bc[i].Header.Timestamp > latest.Header.Timestamp {
			latest = &bc[i]
		}
	}
	return latest, nil
}

// Block returns the n-th block. Numbering is 1-based.
func (bc Blockchain) Block(number int) (*Block, error) {
	if number < 1 || number > len(bc) {
		return nil, ErrNotFound
	}
	return &bc[number-1], nil
}

// TransactionHash returns the canonical hash of the m-th transaction in the
// n-th block. Both numbers are 1-based.
func (bc Blockchain) TransactionHash(blockNumber, txNumber int) (string, error) {
	block, err := bc.Block(blockNumber)
	if err != nil {
		return "", err
	}
	if txNumber < 1 || txNumber > len(block.Transactions) {
		return "", ErrNotFound
	}
	return HashTransaction(block.Transactions[txNumber-1]), nil
}
