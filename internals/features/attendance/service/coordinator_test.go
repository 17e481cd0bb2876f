package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"absensichain_backend/internals/blockchain"
)

func newTestCoordinator(students *fakeStudentStore, logs *fakeAttendanceStore, writer *fakeChainWriter, reader *fakeLedgerReader) *Coordinator {
	return NewCoordinator(NewRegistryGuard(students), writer, reader, logs)
}

var testTx = common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000001")

func presentClaim() AttendanceClaim {
	return AttendanceClaim{StudentID: "S1", DisplayName: "Ann", Date: 19000, IsPresent: true}
}

func TestLogAttendance_InvalidClaimStopsEverything(t *testing.T) {
	students := newFakeStudentStore()
	logs := &fakeAttendanceStore{}
	writer := &fakeChainWriter{result: &blockchain.TxResult{TxHash: testTx, BlockNumber: 7}}
	co := newTestCoordinator(students, logs, writer, &fakeLedgerReader{})

	claim := presentClaim()
	claim.Reason = "tidur" // hadir + alasan = invariant pecah

	_, err := co.LogAttendance(context.Background(), claim)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("harus ValidationError, dapat %v", err)
	}

	// validator jalan paling awal: registry, chain, dan DB tidak boleh tersentuh
	if students.findCalls != 0 || students.insertCalls != 0 {
		t.Error("registry ikut dipanggil padahal klaim invalid")
	}
	if writer.calls != 0 {
		t.Error("chain writer ikut dipanggil padahal klaim invalid")
	}
	if logs.insertCalls != 0 {
		t.Error("baris off-chain tertulis padahal klaim invalid")
	}
}

func TestLogAttendance_IdentityConflictBeforeChain(t *testing.T) {
	students := newFakeStudentStore()
	students.rows["S1"] = "Ann"
	logs := &fakeAttendanceStore{}
	writer := &fakeChainWriter{result: &blockchain.TxResult{TxHash: testTx, BlockNumber: 7}}
	co := newTestCoordinator(students, logs, writer, &fakeLedgerReader{})

	claim := presentClaim()
	claim.DisplayName = "Annie"

	_, err := co.LogAttendance(context.Background(), claim)
	var idErr *IdentityConflictError
	if !errors.As(err, &idErr) {
		t.Fatalf("harus IdentityConflictError, dapat %v", err)
	}
	if writer.calls != 0 {
		t.Error("konflik identitas tetap membakar gas")
	}
	if logs.insertCalls != 0 {
		t.Error("konflik identitas tetap menulis off-chain")
	}
}

func TestLogAttendance_ChainErrorLeavesStoreUntouched(t *testing.T) {
	students := newFakeStudentStore()
	logs := &fakeAttendanceStore{}
	writer := &fakeChainWriter{err: &blockchain.ChainError{Op: "send", Err: errors.New("rpc down")}}
	co := newTestCoordinator(students, logs, writer, &fakeLedgerReader{})

	_, err := co.LogAttendance(context.Background(), presentClaim())
	var cErr *blockchain.ChainError
	if !errors.As(err, &cErr) {
		t.Fatalf("harus ChainError, dapat %v", err)
	}
	if logs.insertCalls != 0 {
		t.Error("chain gagal tapi baris off-chain tetap ditulis")
	}
}

func TestLogAttendance_SuccessPresent(t *testing.T) {
	students := newFakeStudentStore()
	logs := &fakeAttendanceStore{}
	writer := &fakeChainWriter{result: &blockchain.TxResult{TxHash: testTx, BlockNumber: 42}}
	co := newTestCoordinator(students, logs, writer, &fakeLedgerReader{})

	res, err := co.LogAttendance(context.Background(), presentClaim())
	if err != nil {
		t.Fatalf("LogAttendance gagal: %v", err)
	}
	if res.TxHash != testTx.Hex() || res.BlockNumber != 42 {
		t.Errorf("hasil %+v tidak cocok dengan receipt writer", res)
	}

	// commitment yang dikirim ke chain harus keccak(studentID) + sentinel
	if writer.lastIDHash != blockchain.CommitString("S1") {
		t.Error("idCommitment tidak sama dengan CommitString(studentID)")
	}
	if writer.lastReasonHash != blockchain.ZeroHash {
		t.Error("alasan kosong harus dikirim sebagai sentinel all-zero")
	}
	if !writer.lastPresent || writer.lastDate != 19000 || writer.lastName != "Ann" {
		t.Errorf("field chain salah: present=%v date=%d name=%q", writer.lastPresent, writer.lastDate, writer.lastName)
	}

	// baris off-chain: join key = tx hash konfirmasi, plaintext tersimpan
	if len(logs.rows) != 1 {
		t.Fatalf("baris off-chain = %d, want 1", len(logs.rows))
	}
	row := logs.rows[0]
	if row.AttendanceLogTxReference != testTx.Hex() {
		t.Errorf("tx_reference = %q, want %q", row.AttendanceLogTxReference, testTx.Hex())
	}
	if row.AttendanceLogStudentID != "S1" || row.AttendanceLogName != "Ann" || !row.AttendanceLogIsPresent || row.AttendanceLogReason != "" {
		t.Errorf("isi baris off-chain salah: %+v", row)
	}
	wantDate := time.Date(2022, 1, 8, 0, 0, 0, 0, time.UTC) // epoch day 19000
	if !time.Time(row.AttendanceLogDate).Equal(wantDate) {
		t.Errorf("tanggal = %v, want %v", time.Time(row.AttendanceLogDate), wantDate)
	}

	// registry ikut terisi
	if students.rows["S1"] != "Ann" {
		t.Error("registry tidak menyimpan identitas baru")
	}
}

func TestLogAttendance_SuccessAbsentWithReason(t *testing.T) {
	students := newFakeStudentStore()
	logs := &fakeAttendanceStore{}
	writer := &fakeChainWriter{result: &blockchain.TxResult{TxHash: testTx, BlockNumber: 43}}
	co := newTestCoordinator(students, logs, writer, &fakeLedgerReader{})

	claim := AttendanceClaim{StudentID: "S1", DisplayName: "Ann", Date: 19001, IsPresent: false, Reason: "sick"}
	if _, err := co.LogAttendance(context.Background(), claim); err != nil {
		t.Fatalf("LogAttendance gagal: %v", err)
	}

	if writer.lastReasonHash != blockchain.CommitString("sick") {
		t.Error("reasonCommitment harus keccak(reason)")
	}
	if logs.rows[0].AttendanceLogReason != "sick" {
		t.Error("alasan plaintext harus tersimpan off-chain")
	}
}

func TestLogAttendance_PersistenceFailureIsDivergence(t *testing.T) {
	students := newFakeStudentStore()
	logs := &fakeAttendanceStore{insertErr: errors.New("connection reset")}
	writer := &fakeChainWriter{result: &blockchain.TxResult{TxHash: testTx, BlockNumber: 44}}
	co := newTestCoordinator(students, logs, writer, &fakeLedgerReader{})

	_, err := co.LogAttendance(context.Background(), presentClaim())
	var pErr *PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("harus PersistenceError (bukan ChainError — chain sudah commit), dapat %v", err)
	}
	if pErr.TxHash != testTx {
		t.Error("PersistenceError harus membawa tx hash untuk rekonsiliasi")
	}
}

func TestVerify_UsesHasherAndBypassesStore(t *testing.T) {
	reader := &fakeLedgerReader{result: &blockchain.VerifyResult{
		Present:     true,
		ReasonHash:  blockchain.ZeroHash,
		DisplayName: "Ann",
	}}
	logs := &fakeAttendanceStore{}
	co := newTestCoordinator(newFakeStudentStore(), logs, &fakeChainWriter{}, reader)

	res, err := co.Verify(context.Background(), "S1", 19000)
	if err != nil {
		t.Fatalf("Verify gagal: %v", err)
	}
	if !res.Present || res.DisplayName != "Ann" {
		t.Errorf("hasil verify salah: %+v", res)
	}
	if reader.lastIDHash != blockchain.CommitString("S1") {
		t.Error("verify harus lewat hasher dulu")
	}
	if reader.lastDate != 19000 {
		t.Errorf("date diteruskan %d, want 19000", reader.lastDate)
	}
}
