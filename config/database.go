package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// StorefrontDB serves raw inserts (login events).
	StorefrontDB *pgxpool.Pool
	// StorefrontGorm serves the saved search models.
	StorefrontGorm *gorm.DB
)

func databaseURL() string {
	if url := getEnv("STOREFRONT_DB_URL", ""); url != "" {
		return url
	}
	if host := getEnv("DB_HOST", ""); host != "" {
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%s/modeva_storefront?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			host,
			getEnv("DB_PORT", "5432"),
		)
	}
	return ""
}

// InitDB opens the pgx pool and the GORM handle on the same database. When no
// database is configured it logs and returns nil; saved searches and login
// events are then unavailable.
func InitDB() error {
	url := databaseURL()
	if url == "" {
		Log.Warn("⚠️  STOREFRONT_DB_URL not set, saved searches and login events disabled")
		return nil
	}
	if err := initPgx(url); err != nil {
		return err
	}
	return initGORM(url)
}

func initPgx(url string) error {
	ctx, cancel := WithTimeout()
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("unable to connect to storefront database: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("storefront database ping failed: %w", err)
	}
	StorefrontDB = pool
	Log.Info("✅ Storefront database connected (pgx)")
	return nil
}

func initGORM(url string) error {
	gormLogger := logger.Default.LogMode(logger.Info)
	if IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("failed to connect to storefront database with GORM: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	StorefrontGorm = db
	Log.Info("✅ Storefront database connected (GORM)")
	return nil
}

// Migrate creates or updates the tables for the given GORM models.
func Migrate(dst ...any) error {
	if StorefrontGorm == nil {
		return nil
	}
	if err := StorefrontGorm.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func CloseDB() {
	if StorefrontDB != nil {
		StorefrontDB.Close()
		Log.Info("✅ Storefront database connection closed (pgx)")
	}
	if StorefrontGorm != nil {
		if sqlDB, _ := StorefrontGorm.DB(); sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				Log.Warn("closing GORM connection", zap.Error(err))
				return
			}
			Log.Info("✅ Storefront database connection closed (GORM)")
		}
	}
}

// Exec runs a statement on the pgx pool.
func Exec(ctx context.Context, sql string, args ...any) error {
	if StorefrontDB == nil {
		return nil
	}
	_, err := StorefrontDB.Exec(ctx, sql, args...)
	return err
}
