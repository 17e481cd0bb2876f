package blockchain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash dipakai sebagai sentinel "tanpa alasan" di kolom reasonHash on-chain.
// Nilai all-zero tidak mungkin tabrakan dengan keccak256 input nyata.
var ZeroHash = common.Hash{}

// CommitString menghasilkan commitment keccak-256 atas teks plaintext.
// Harus identik dengan keccak di sisi kontrak supaya kedua sisi bisa dicocokkan.
func CommitString(s string) common.Hash {
	return crypto.Keccak256Hash([]byte(s))
}

// ReasonCommitment memetakan alasan kosong ke ZeroHash, selain itu keccak biasa.
func ReasonCommitment(reason string) common.Hash {
	if reason == "" {
		return ZeroHash
	}
	return CommitString(reason)
}
