package chain

import "fmt"

// VerifyLinkage walks a loaded chain and checks that every block's recorded
// predecessor hash matches the prior block's actual header hash, and that each
// stored header hash matches its recomputed canonical digest. Loading a chain
// never runs this implicitly; it is an explicit integrity pass.
func VerifyLinkage(bc Blockchain) error {
	for i := range bc {
		header := bc[i].Header
		if recomputed := HashHeader(header); recomputed != header.Hash {
			return fmt.Errorf("block %d: stored hash %s does not match recomputed digest %s: %w",
				i+1, header.Hash, recomputed, ErrBrokenLink)
		}
		if i == 0 {
			continue
		}
		if prev := bc[i-1].Header.Hash; header.PreviousBlockHeaderHash != prev {
			return fmt.Errorf("block %d: previous block header hash %s does not match block %d hash %s: %w",
				i+1, header.PreviousBlockHeaderHash, i, prev, ErrBrokenLink)
		}
	}
	return nil
}
