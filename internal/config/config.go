package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	LowStockLevel int
}

func Load() Config {
	// .env is optional; deployments usually set env vars directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "stockroom.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./stockroom.log" // default log sink in project root
	}
	lowStock := 5
	if v := os.Getenv("LOW_STOCK_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			lowStock = n
		} else {
			log.Printf("[config] ignoring bad LOW_STOCK_LEVEL=%q", v)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, LowStockLevel: lowStock}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s LOW_STOCK_LEVEL=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.LowStockLevel)
	return cfg
}
