package config

import (
	"os"
	"strconv"

	"github.com/KAKULASANJAY/localbites/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs access tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "localbites_super_secret_2024"))

type Config struct {
	Port          string
	DBPath        string
	AppEnv        string
	AuthRateLimit float64 // requests per second per IP on /api/auth
}

func Load() *Config {
	_ = godotenv.Load()

	if v := os.Getenv("JWT_SECRET"); v != "" {
		JWTSecret = []byte(v)
	}

	rate := 5.0
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rate = f
		}
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "localbites.db"),
		AppEnv:        getEnv("APP_ENV", "development"),
		AuthRateLimit: rate,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the sqlite database and migrates all models.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}
