package service

// AttendanceClaim adalah input mentah satu permintaan pencatatan.
type AttendanceClaim struct {
	StudentID   string
	DisplayName string
	Date        int64 // epoch day
	IsPresent   bool
	Reason      string
}

// ValidateClaim menegakkan invariant hadir/alasan:
// hadir ⇒ alasan kosong; absen ⇒ alasan wajib diisi.
// Fungsi murni, jalan paling awal — cek termurah duluan.
func ValidateClaim(claim AttendanceClaim) error {
	if claim.IsPresent && claim.Reason != "" {
		return &ValidationError{Msg: "If present, reason must be empty"}
	}
	if !claim.IsPresent && claim.Reason == "" {
		return &ValidationError{Msg: "If absent, reason must be filled"}
	}
	return nil
}
