package route

import (
	"github.com/gofiber/fiber/v2"

	attCtrl "absensichain_backend/internals/features/attendance/controller"
)

// AttendanceRoutes memasang seluruh permukaan HTTP kehadiran.
func AttendanceRoutes(r fiber.Router, ctrl *attCtrl.AttendanceController) {
	r.Get("/verify", ctrl.Verify)   // baca langsung dari chain
	r.Post("/log", ctrl.Log)        // dual-write: chain dulu, DB belakangan
	r.Get("/history", ctrl.History) // off-chain, terbaru duluan
	r.Get("/history/:student_id", ctrl.HistoryByStudent)
	r.Get("/reconcile", ctrl.Reconcile) // deteksi divergence chain vs DB
}
