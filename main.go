package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"absensichain_backend/internals/blockchain"
	"absensichain_backend/internals/configs"
	database "absensichain_backend/internals/databases"
	attCtrl "absensichain_backend/internals/features/attendance/controller"
	"absensichain_backend/internals/features/attendance/service"
	middlewares "absensichain_backend/internals/middlewares"
	routes "absensichain_backend/internals/route"
	"absensichain_backend/internals/scheduler"
)

func main() {
	cfg := configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrate
	db := database.ConnectDB(cfg)
	database.TunePool(db)
	database.Migrate(db)

	// ⛓ koneksi chain + signer sesuai mode
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	chain, err := blockchain.Dial(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("❌ Gagal konek chain: %v", err)
	}

	var signer blockchain.Signer
	switch cfg.Mode {
	case "BPNI":
		signer, err = blockchain.NewRawKeySigner(cfg.PrivateKeyHex)
	default:
		signer, err = blockchain.NewKeystoreSigner(cfg.KeystoreFile, cfg.WalletPassword)
	}
	if err != nil {
		log.Fatalf("❌ Signer gagal disiapkan (mode %s): %v", cfg.Mode, err)
	}
	log.Printf("🔐 Signer siap: %s (mode %s)", signer.Address().Hex(), cfg.Mode)

	writer := blockchain.NewWriter(chain, signer, cfg.ChainGasLimit, cfg.ChainConfirmTimeout)

	// 🧩 service wiring
	students := service.NewStudentStore(db)
	attLogs := service.NewAttendanceStore(db)
	registry := service.NewRegistryGuard(students)
	coordinator := service.NewCoordinator(registry, writer, chain, attLogs)
	reconciler := service.NewReconciler(chain, attLogs)

	ctrl := attCtrl.NewAttendanceController(coordinator, reconciler)

	// ⏱ scheduler setelah semua siap
	cronJobs := scheduler.StartReconcileScheduler(cfg.ReconcileCron, reconciler)

	// ✅ Routes
	routes.SetupRoutes(app, db, ctrl)

	// 🔒 timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 120 * time.Second // nunggu konfirmasi chain bisa lama
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.AppPort)
		if err := app.Listen("0.0.0.0:" + cfg.AppPort); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB & RPC
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cronJobs.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	chain.Close()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
