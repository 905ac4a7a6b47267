package configs

import (
	"fmt"
	"log"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm dialector for DB_DRIVER.
func Dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql", "":
		cfg := mysqldriver.NewConfig()
		cfg.User = env.DBUser
		cfg.Passwd = env.DBPassword
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(env.DBHost, defaultPort(env.DBPort, "3306"))
		cfg.DBName = env.DBName
		cfg.ParseTime = true
		// Report matched rows so owner-scoped no-op updates are not mistaken for misses.
		cfg.ClientFoundRows = true
		cfg.Loc = time.Local
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return mysql.Open(cfg.FormatDSN()), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			env.DBHost, env.DBUser, env.DBPassword, env.DBName, defaultPort(env.DBPort, "5432"), env.DBSSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		name := env.DBName
		if name == "" {
			name = "cosmetics.db"
		}
		return sqlite.Open(name), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection(env ENV) (*gorm.DB, error) {
	dialector, err := Dialector(env)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if env.AppEnv == "development" {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	maxRetries := 10
	retryDelay := 5 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to %s database (Attempt %d/%d)", env.DBDriver, i+1, maxRetries)
		db, err := gorm.Open(dialector, gormCfg)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(env.DBMaxOpenConns)
					sqlDB.SetMaxIdleConns(env.DBMaxIdleConns)
					sqlDB.SetConnMaxLifetime(time.Hour)
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}

func defaultPort(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}
