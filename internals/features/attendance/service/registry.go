package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type RegistrationOutcome int

const (
	RegisteredNew RegistrationOutcome = iota
	ConfirmedExisting
)

// RegistryGuard menegakkan ikatan satu-kali antara student_id dan nama.
// Cek in-process hanya fast path; wasit sebenarnya adalah unique constraint
// di tabel students — kalah balapan insert diselesaikan dengan baca ulang.
type RegistryGuard struct {
	students StudentStore
}

func NewRegistryGuard(students StudentStore) *RegistryGuard {
	return &RegistryGuard{students: students}
}

// EnsureRegistered mendaftarkan id baru atau mengkonfirmasi yang lama.
// Nama dibandingkan case-insensitive ("Alice" == "alice"); nama berbeda
// berarti IdentityConflictError, tidak pernah silent update.
func (g *RegistryGuard) EnsureRegistered(ctx context.Context, studentID, displayName string) (RegistrationOutcome, error) {
	existing, found, err := g.students.FindName(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if found {
		return g.compare(existing, displayName)
	}

	if err := g.students.Insert(ctx, studentID, displayName); err != nil {
		if isUniqueViolation(err) {
			// Kalah balapan dengan request paralel untuk id yang sama:
			// baris sudah ada, tinggal cocokkan namanya.
			existing, found, rerr := g.students.FindName(ctx, studentID)
			if rerr != nil {
				return 0, rerr
			}
			if !found {
				return 0, err
			}
			return g.compare(existing, displayName)
		}
		return 0, err
	}
	return RegisteredNew, nil
}

func (g *RegistryGuard) compare(existing, attempted string) (RegistrationOutcome, error) {
	if strings.EqualFold(existing, attempted) {
		return ConfirmedExisting, nil
	}
	return 0, &IdentityConflictError{Registered: existing, Attempted: attempted}
}

// Deteksi unique violation Postgres (kode "23505"), dengan fallback substring
// untuk driver/fake yang tidak mengembalikan *pgconn.PgError.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
