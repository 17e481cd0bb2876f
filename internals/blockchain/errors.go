package blockchain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ChainError menandai kegagalan di jalur tulis chain: RPC error, revert,
// signer gagal, atau timeout konfirmasi. Kalau transaksi sudah sempat
// di-broadcast, TxHash terisi supaya bisa direkonsiliasi manual.
type ChainError struct {
	Op     string
	TxHash common.Hash
	Err    error
}

func (e *ChainError) Error() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("chain %s (tx %s): %v", e.Op, e.TxHash.Hex(), e.Err)
	}
	return fmt.Sprintf("chain %s: %v", e.Op, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// ReadError menandai kegagalan query read-only; tidak ada state yang berubah.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("chain read %s: %v", e.Op, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }
