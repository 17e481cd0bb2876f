package service

import (
	"context"
	"log"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/datatypes"

	"absensichain_backend/internals/blockchain"
	"absensichain_backend/internals/features/attendance/model"
)

// ChainWriter dan LedgerReader adalah kolaborator eksternal coordinator;
// implementasi nyatanya ada di internals/blockchain, test pakai fake.

type ChainWriter interface {
	SubmitAttendance(ctx context.Context, idHash common.Hash, date int64, isPresent bool, reasonHash common.Hash, displayName string) (*blockchain.TxResult, error)
}

type LedgerReader interface {
	VerifyAttendance(ctx context.Context, idHash common.Hash, date int64) (*blockchain.VerifyResult, error)
}

type LogResult struct {
	TxHash      string
	BlockNumber uint64
}

// Coordinator mengurutkan dual-write per permintaan:
//
//	Validated → Registered → Chained → Persisted
//
// Tulis chain adalah langkah mahal yang tidak bisa di-undo, jadi semua cek
// yang masih murah untuk batal (validasi, registry) jalan duluan. Baris
// off-chain HANYA ditulis setelah receipt chain diterima — log off-chain
// tidak boleh pernah menunjuk transaksi yang gagal atau belum terkonfirmasi.
type Coordinator struct {
	registry *RegistryGuard
	writer   ChainWriter
	reader   LedgerReader
	logs     AttendanceStore
}

func NewCoordinator(registry *RegistryGuard, writer ChainWriter, reader LedgerReader, logs AttendanceStore) *Coordinator {
	return &Coordinator{registry: registry, writer: writer, reader: reader, logs: logs}
}

func (co *Coordinator) LogAttendance(ctx context.Context, claim AttendanceClaim) (*LogResult, error) {
	// 1) Validated
	if err := ValidateClaim(claim); err != nil {
		return nil, err
	}

	// 2) Registered — identitas beres (dan ter-commit) sebelum chain disentuh,
	// registry tidak boleh tertinggal di belakang log
	if _, err := co.registry.EnsureRegistered(ctx, claim.StudentID, claim.DisplayName); err != nil {
		return nil, err
	}

	// 3) Chained
	idHash := blockchain.CommitString(claim.StudentID)
	reasonHash := blockchain.ReasonCommitment(claim.Reason)

	res, err := co.writer.SubmitAttendance(ctx, idHash, claim.Date, claim.IsPresent, reasonHash, claim.DisplayName)
	if err != nil {
		// gagal di chain ⇒ tidak ada baris off-chain, titik
		return nil, err
	}

	// 4) Persisted
	row := &model.AttendanceLogModel{
		AttendanceLogStudentID:   claim.StudentID,
		AttendanceLogName:        claim.DisplayName,
		AttendanceLogDate:        epochDayToDate(claim.Date),
		AttendanceLogIsPresent:   claim.IsPresent,
		AttendanceLogReason:      claim.Reason,
		AttendanceLogTxReference: res.TxHash.Hex(),
	}
	if err := co.logs.Insert(ctx, row); err != nil {
		// Fakta sudah final di chain tapi cerminnya gagal — divergence.
		// Jangan ditelan: log keras + error khusus yang membawa tx hash.
		log.Printf("🚨 DIVERGENCE: tx %s terkonfirmasi on-chain tapi insert off-chain gagal: %v", res.TxHash.Hex(), err)
		return nil, &PersistenceError{TxHash: res.TxHash, Err: err}
	}

	return &LogResult{TxHash: res.TxHash.Hex(), BlockNumber: res.BlockNumber}, nil
}

// Verify membaca state chain langsung (Hasher → Ledger Reader), sengaja
// melewati database: verifikasi harus tetap jalan walau off-chain mati.
func (co *Coordinator) Verify(ctx context.Context, studentID string, date int64) (*blockchain.VerifyResult, error) {
	return co.reader.VerifyAttendance(ctx, blockchain.CommitString(studentID), date)
}

func (co *Coordinator) History(ctx context.Context) ([]model.AttendanceLogModel, error) {
	return co.logs.ListAll(ctx)
}

func (co *Coordinator) HistoryByStudent(ctx context.Context, studentID string) ([]model.AttendanceLogModel, error) {
	return co.logs.ListByStudent(ctx, studentID)
}

// epochDayToDate mengubah epoch day (hari sejak 1970-01-01 UTC) jadi DATE.
func epochDayToDate(day int64) datatypes.Date {
	return datatypes.Date(time.Unix(day*86400, 0).UTC())
}
