package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// ChainAuditor menyediakan daftar transaksi AttendanceLogged yang sudah
// terkonfirmasi di chain (sumbernya event log kontrak).
type ChainAuditor interface {
	ListLoggedTxHashes(ctx context.Context, fromBlock uint64) ([]common.Hash, error)
}

type ReconcileReport struct {
	FromBlock       uint64 `json:"from_block"`
	CheckedOnchain  int    `json:"checked_onchain"`
	CheckedOffchain int    `json:"checked_offchain"`

	// Terkonfirmasi on-chain tapi tidak punya baris off-chain — kasus
	// "insert gagal setelah receipt" yang wajib bisa dideteksi.
	MissingOffchain []string `json:"missing_offchain"`

	// Baris off-chain yang tx-nya tidak dikenal chain. Hanya dihitung saat
	// scan dari blok 0; dengan from_block > 0 jendelanya tidak lengkap.
	OrphanOffchain []string `json:"orphan_offchain"`
}

func (r *ReconcileReport) Clean() bool {
	return len(r.MissingOffchain) == 0 && len(r.OrphanOffchain) == 0
}

// Reconciler membandingkan event chain dengan tx_reference off-chain dua arah.
// Tidak pernah memperbaiki otomatis — divergence dilaporkan untuk ditangani
// manual (retry buta berisiko duplicate spend).
type Reconciler struct {
	auditor ChainAuditor
	logs    AttendanceStore
}

func NewReconciler(auditor ChainAuditor, logs AttendanceStore) *Reconciler {
	return &Reconciler{auditor: auditor, logs: logs}
}

func (r *Reconciler) Reconcile(ctx context.Context, fromBlock uint64) (*ReconcileReport, error) {
	onchain, err := r.auditor.ListLoggedTxHashes(ctx, fromBlock)
	if err != nil {
		return nil, err
	}
	refs, err := r.logs.ListTxReferences(ctx)
	if err != nil {
		return nil, err
	}

	offchain := make(map[common.Hash]struct{}, len(refs))
	for _, ref := range refs {
		offchain[common.HexToHash(ref)] = struct{}{}
	}

	report := &ReconcileReport{
		FromBlock:       fromBlock,
		CheckedOnchain:  len(onchain),
		CheckedOffchain: len(refs),
		MissingOffchain: []string{},
		OrphanOffchain:  []string{},
	}

	chainSet := make(map[common.Hash]struct{}, len(onchain))
	for _, h := range onchain {
		chainSet[h] = struct{}{}
		if _, ok := offchain[h]; !ok {
			report.MissingOffchain = append(report.MissingOffchain, h.Hex())
		}
	}

	if fromBlock == 0 {
		for _, ref := range refs {
			if _, ok := chainSet[common.HexToHash(ref)]; !ok {
				report.OrphanOffchain = append(report.OrphanOffchain, ref)
			}
		}
	}

	return report, nil
}
