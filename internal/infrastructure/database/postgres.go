package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"rivalioo/pkg/logger"
)

// ConnectPostgres opens dsn, filling in password when the DSN has none.
func ConnectPostgres(dsn, password string) (*sql.DB, error) {
	db, err := sql.Open("postgres", withPassword(dsn, password))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func withPassword(dsn, password string) string {
	if password == "" {
		return dsn
	}

	if u, err := url.Parse(dsn); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		username := ""
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return dsn
			}
			username = u.User.Username()
		}
		u.User = url.UserPassword(username, password)
		return u.String()
	}

	if strings.Contains(dsn, "password=") {
		return dsn
	}
	return strings.TrimSpace(dsn) + " password='" + strings.ReplaceAll(password, "'", `\'`) + "'"
}

// MigrationFiles lists the .sql files of dir in lexical order.
func MigrationFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("migrations directory not specified")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// RunMigrations executes every migration file in order. Files must be
// idempotent; there is no applied-version table.
func RunMigrations(db *sql.DB, dir string) error {
	files, err := MigrationFiles(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Warn("No migration files found in %s", dir)
		return nil
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
		logger.Info("Applied migration: %s", name)
	}

	return nil
}
