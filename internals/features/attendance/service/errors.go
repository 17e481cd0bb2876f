package service

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ValidationError: input melanggar invariant hadir/alasan. Belum ada efek
// samping apa pun — salah dari sisi pemanggil, bukan sistem.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IdentityConflictError: student_id sudah terdaftar dengan nama lain.
// Ditolak SEBELUM menyentuh chain — jangan buang gas untuk identitas palsu.
type IdentityConflictError struct {
	Registered string
	Attempted  string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("student ID sudah terdaftar atas nama %q (dicoba: %q)", e.Registered, e.Attempted)
}

// PersistenceError: transaksi chain SUDAH terkonfirmasi tapi baris off-chain
// gagal ditulis. Ini state divergence — faktanya sudah final di chain, tinggal
// cerminnya yang hilang. TxHash dibawa supaya reconciler bisa menambalnya.
// Harus dibedakan dari ChainError: di sini operasi TIDAK gagal di chain.
type PersistenceError struct {
	TxHash common.Hash
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("chain commit %s sukses tapi tulis off-chain gagal: %v", e.TxHash.Hex(), e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
