package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database from environment configuration and returns
// the handle. The handle is passed to every controller; there is no
// package-level connection.
func InitDB() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch os.Getenv("DB_DRIVER") {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "lms.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASSWORD"),
				envOr("DB_HOST", "127.0.0.1"),
				envOr("DB_PORT", "3306"),
				envOr("DB_NAME", "campus_lms"),
			)
		}
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
