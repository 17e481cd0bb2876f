package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"absensichain_backend/internals/features/attendance/service"
)

// StartReconcileScheduler menjalankan pengecekan divergence chain vs off-chain
// secara berkala. Hanya melaporkan — perbaikan tetap keputusan manusia.
func StartReconcileScheduler(spec string, rec *service.Reconciler) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		report, err := rec.Reconcile(ctx, 0)
		if err != nil {
			log.Printf("⚠️ Reconcile gagal: %v", err)
			return
		}
		if report.Clean() {
			log.Printf("✅ Reconcile bersih: %d on-chain vs %d off-chain", report.CheckedOnchain, report.CheckedOffchain)
			return
		}
		log.Printf("🚨 DIVERGENCE: %d tx on-chain tanpa baris off-chain %v, %d baris off-chain yatim %v",
			len(report.MissingOffchain), report.MissingOffchain,
			len(report.OrphanOffchain), report.OrphanOffchain)
	})
	if err != nil {
		log.Printf("⚠️ Cron spec %q tidak valid, scheduler reconcile mati: %v", spec, err)
		return c
	}

	c.Start()
	log.Printf("⏱ Reconcile scheduler aktif (%s).", spec)
	return c
}
