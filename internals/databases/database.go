package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"absensichain_backend/internals/configs"
	"absensichain_backend/internals/features/attendance/model"
)

// ConnectDB membuka koneksi GORM ke PostgreSQL dan mengembalikan handle-nya.
// Koneksi dibagikan lewat dependency injection, bukan variabel global.
func ConnectDB(cfg *configs.Config) *gorm.DB {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	log.Println("✅ DB connected.")
	return db
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// Migrate membuat kedua tabel (registry murid + log kehadiran).
// attendance_logs append-only: tidak ada path UPDATE/DELETE di kode mana pun.
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&model.StudentModel{},
		&model.AttendanceLogModel{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}
