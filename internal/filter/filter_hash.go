package filter

import "github.com/ethereum/go-ethereum/crypto"

// defaultKeccak256 wraps go-ethereum's Keccak256 so the bloom probe above
// uses the same hash the chain itself used to build the logsBloom field.
func defaultKeccak256(data []byte) []byte {
	return crypto.Keccak256(data)
}
