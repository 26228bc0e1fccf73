package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS sessions (
	  id CHAR(36) NOT NULL,
	  merchant_token TEXT,
	  admin_token TEXT,
	  merchant_user_json TEXT,
	  admin_user_json TEXT,
	  remembered_email VARCHAR(255) NOT NULL DEFAULT '',
	  expires_at DATETIME(3) NOT NULL,
	  created_at DATETIME(3) NOT NULL,
	  updated_at DATETIME(3) NOT NULL,
	  PRIMARY KEY (id),
	  KEY ix_sessions_expires_at (expires_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if err := db.Exec(sql).Error; err != nil {
		log.Fatalf("Failed to create sessions table: %v", err)
	}

	log.Println("sessions table ready")
}
