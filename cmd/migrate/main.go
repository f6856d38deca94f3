// CLI tool to run pending database migrations from MIGRATIONS_DIR (default db/).
// Checks the migrations table to skip already-applied files.
// Wraps each migration + record insert in a single transaction.
// Usage: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"lg/stride-nutrition-api/internal/config"
)

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.ConfigureLogging(); err != nil {
		logrus.Fatalf("Error configuring logging: %v", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBURL)
	if err != nil {
		logrus.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	files, err := migrationFiles(cfg.MigrationsDir)
	if err != nil {
		logrus.Fatal(err)
	}

	// Get already-applied migrations (table may not exist yet)
	applied := make(map[string]bool)
	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err == nil {
		names, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			logrus.WithError(err).Debug("migrations table not readable, treating database as fresh")
		}
		for _, name := range names {
			applied[name] = true
		}
	}

	ran := 0
	for _, f := range pending(files, applied) {
		filename := filepath.Base(f)
		if err := apply(ctx, conn, f); err != nil {
			logrus.WithField("migration", filename).Fatal(err)
		}
		logrus.WithField("migration", filename).Info("applied")
		ran++
	}

	if ran == 0 {
		logrus.Info("No pending migrations.")
	} else {
		logrus.Infof("%d migration(s) applied.", ran)
	}
}

// migrationFiles lists *.sql files in dir in lexical (= chronological) order.
func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

// pending drops files whose base name is already recorded, logging each skip.
func pending(files []string, applied map[string]bool) []string {
	var out []string
	for _, f := range files {
		if applied[filepath.Base(f)] {
			logrus.WithField("migration", filepath.Base(f)).Debug("skip")
			continue
		}
		out = append(out, f)
	}
	return out
}

// apply runs one migration file and records it, in one transaction.
func apply(ctx context.Context, conn *pgx.Conn, path string) error {
	filename := filepath.Base(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO migrations (migration, description) VALUES ($1, $2)",
		filename, descriptionFromFilename(filename)); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = datePrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}
