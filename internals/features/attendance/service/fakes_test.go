package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"absensichain_backend/internals/blockchain"
	"absensichain_backend/internals/features/attendance/model"
)

// Fake kolaborator untuk uji orkestrasi tanpa DB/RPC hidup.

type fakeStudentStore struct {
	mu          sync.Mutex
	rows        map[string]string
	findCalls   int
	insertCalls int

	// menyimulasikan kalah balapan: insert berikutnya "gagal" duplicate dan
	// baris lawan (competitorName) muncul di store, seolah lawan commit duluan
	failNextInsertDuplicate bool
	competitorName          string
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{rows: map[string]string{}}
}

func (s *fakeStudentStore) FindName(_ context.Context, studentID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	name, ok := s.rows[studentID]
	return name, ok, nil
}

var errDuplicate = errors.New(`ERROR: duplicate key value violates unique constraint "idx_students_students_student_id" (SQLSTATE 23505)`)

func (s *fakeStudentStore) Insert(_ context.Context, studentID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.failNextInsertDuplicate {
		s.failNextInsertDuplicate = false
		s.rows[studentID] = s.competitorName
		return errDuplicate
	}
	if _, exists := s.rows[studentID]; exists {
		return errDuplicate
	}
	s.rows[studentID] = name
	return nil
}

type fakeAttendanceStore struct {
	mu          sync.Mutex
	rows        []model.AttendanceLogModel
	insertCalls int
	insertErr   error
}

func (s *fakeAttendanceStore) Insert(_ context.Context, row *model.AttendanceLogModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.insertErr != nil {
		return s.insertErr
	}
	s.rows = append(s.rows, *row)
	return nil
}

func (s *fakeAttendanceStore) ListAll(_ context.Context) ([]model.AttendanceLogModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AttendanceLogModel, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *fakeAttendanceStore) ListByStudent(_ context.Context, studentID string) ([]model.AttendanceLogModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceLogModel
	for _, r := range s.rows {
		if r.AttendanceLogStudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeAttendanceStore) ListTxReferences(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := make([]string, 0, len(s.rows))
	for _, r := range s.rows {
		refs = append(refs, r.AttendanceLogTxReference)
	}
	return refs, nil
}

type fakeChainWriter struct {
	calls  int
	result *blockchain.TxResult
	err    error

	lastIDHash     common.Hash
	lastDate       int64
	lastPresent    bool
	lastReasonHash common.Hash
	lastName       string
}

func (w *fakeChainWriter) SubmitAttendance(_ context.Context, idHash common.Hash, date int64, isPresent bool, reasonHash common.Hash, displayName string) (*blockchain.TxResult, error) {
	w.calls++
	w.lastIDHash = idHash
	w.lastDate = date
	w.lastPresent = isPresent
	w.lastReasonHash = reasonHash
	w.lastName = displayName
	if w.err != nil {
		return nil, w.err
	}
	return w.result, nil
}

type fakeLedgerReader struct {
	calls  int
	result *blockchain.VerifyResult
	err    error

	lastIDHash common.Hash
	lastDate   int64
}

func (r *fakeLedgerReader) VerifyAttendance(_ context.Context, idHash common.Hash, date int64) (*blockchain.VerifyResult, error) {
	r.calls++
	r.lastIDHash = idHash
	r.lastDate = date
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

type fakeAuditor struct {
	hashes []common.Hash
	err    error
}

func (a *fakeAuditor) ListLoggedTxHashes(_ context.Context, _ uint64) ([]common.Hash, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.hashes, nil
}
