package database

import (
	"context"
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"yatube/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	*sqlx.DB
}

// DataSource builds the driver name and DSN for the configured driver.
func DataSource(cfg *config.Config) (string, string, error) {
	switch cfg.DB.DbDRIVER {
	case "postgres":
		return "postgres", fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DB.DbHOST,
			cfg.DB.DbPORT,
			cfg.DB.DbUSER,
			cfg.DB.DbPASSWORD,
			cfg.DB.DbNAME,
			cfg.DB.DbSSLMODE,
		), nil
	case "pgx":
		return "pgx", fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DB.DbUSER,
			cfg.DB.DbPASSWORD,
			cfg.DB.DbHOST,
			cfg.DB.DbPORT,
			cfg.DB.DbNAME,
			cfg.DB.DbSSLMODE,
		), nil
	case "sqlite3":
		return "sqlite3", fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000", cfg.DB.DbPATH), nil
	}
	return "", "", fmt.Errorf("неизвестный драйвер БД: %q", cfg.DB.DbDRIVER)
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	driver, dsn, err := DataSource(cfg)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite3" {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.DbPATH), 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог для БД: %w", err)
		}
		log.Printf("Подключаемся к БД: driver=%s, path=%s", driver, cfg.DB.DbPATH)
	} else {
		log.Printf("Подключаемся к БД: driver=%s, host=%s, dbname=%s", driver, cfg.DB.DbHOST, cfg.DB.DbNAME)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	if driver == "sqlite3" {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка БД не пройдена: %w", err)
	}

	log.Printf("Успешное подключение к БД (%s)", driver)
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies the embedded schema for the current driver.
// Statements are idempotent, so it runs on every start.
func (db *DB) RunMigrations() error {
	dialect := db.DriverName()
	if dialect == "pgx" {
		dialect = "postgres"
	}

	files, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("ошибка при чтении миграций: %w", err)
	}

	suffix := "." + dialect + ".sql"
	applied := 0
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, suffix) {
			continue
		}

		migrationSQL, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграций %s: %w", name, err)
		}

		log.Printf("Применяем миграции из файла: %s", name)
		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("ошибка при выполнении миграций %s: %w", name, err)
		}
		applied++
	}

	if applied == 0 {
		return fmt.Errorf("миграции для драйвера %s не найдены", dialect)
	}

	log.Println("Миграции успешно применены")
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("подключение к БД не инициализировано")
	}

	return db.PingContext(ctx)
}
