package configs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config dibangun sekali di main() lalu dibagikan read-only ke semua komponen.
// Tidak ada lagi global mutable — semua lewat pointer ini.
type Config struct {
	AppPort string
	AppEnv  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Blockchain — variabel chain memakai prefix MODE (LOCAL_* / BPNI_*)
	Mode            string // "LOCAL" (keystore) atau "BPNI" (raw private key)
	RPCURL          string
	ContractAddress string
	ABIFile         string
	KeystoreFile    string // LOCAL only
	WalletPassword  string // LOCAL only
	PrivateKeyHex   string // BPNI only
	SenderAddress   string

	ChainGasLimit       uint64
	ChainConfirmTimeout time.Duration

	ReconcileCron string
}

// LoadEnv memuat .env (kalau ada) lalu membekukan semua nilai ke Config.
func LoadEnv() *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	mode := GetEnv("MODE", "LOCAL")

	cfg := &Config{
		AppPort: GetEnv("PORT", "3000"),
		AppEnv:  GetEnv("APP_ENV", "dev"),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBName:     GetEnv("DB_NAME", "absensichain"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		Mode:            mode,
		RPCURL:          getModeEnv(mode, "RPC_URL"),
		ContractAddress: getModeEnv(mode, "CONTRACT_ADDRESS"),
		ABIFile:         GetEnv("ABI_FILE"),
		SenderAddress:   getModeEnv(mode, "SENDER_ADDRESS"),

		ChainGasLimit:       350_000,
		ChainConfirmTimeout: getDurationEnv("CHAIN_CONFIRM_TIMEOUT", 90*time.Second),

		ReconcileCron: GetEnv("RECONCILE_CRON", "0 * * * *"),
	}

	switch mode {
	case "LOCAL":
		cfg.KeystoreFile = getModeEnv(mode, "KEYSTORE_FILE")
		cfg.WalletPassword = getModeEnv(mode, "WALLET_PASSWORD")
	case "BPNI":
		cfg.PrivateKeyHex = getModeEnv(mode, "PRIVATE_KEY")
	}

	if cfg.RPCURL == "" {
		log.Printf("❌ %s_RPC_URL belum diset!", mode)
	} else {
		log.Printf("✅ RPC_URL berhasil dimuat (mode %s).", mode)
	}
	if cfg.ContractAddress == "" {
		log.Printf("❌ %s_CONTRACT_ADDRESS belum diset!", mode)
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=absensichain&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// getModeEnv membaca variabel dengan prefix mode, mis. LOCAL_RPC_URL / BPNI_RPC_URL.
func getModeEnv(mode, key string) string {
	return GetEnv(mode + "_" + key)
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ %s tidak valid (%q), pakai default %s", key, v, def)
		return def
	}
	return d
}
