//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplyMigrations brings the database at url up to the latest schema.
// The atlas CLI drives the migration when it is installed; otherwise the
// SQL files under dir run directly in lexical order.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, url, dir string) error {
	if err := applyWithAtlas(ctx, url, dir); err == nil {
		return nil
	}
	return applyDirect(ctx, pool, dir)
}

func applyWithAtlas(ctx context.Context, url, dir string) error {
	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return err
	}
	_, err = client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    url,
		DirURL: "file://" + dir + "?format=golang-migrate",
	})
	return err
}

func applyDirect(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".down.sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(dir, name)
		sqlContent, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", path, err)
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", path, err)
		}
	}
	return nil
}
