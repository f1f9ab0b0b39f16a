package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store persists collection snapshots in SQLite. Snapshots are written
// whole: Save replaces the collection's rows in one transaction, so the
// database always reflects a single reducer output.
type Store struct {
	db         *sql.DB
	path       string
	maxEntries int
}

// Open initializes or connects to the history database at path and applies
// migrations. maxEntries caps saved snapshots; non-positive means unlimited.
func Open(path string, maxEntries int) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("history path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, maxEntries: maxEntries}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current snapshot for the collection, newest first.
func (s *Store) Load(ctx context.Context, collection string) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, url, title, year, poster, confidence, matched_at
         FROM entries WHERE collection = ? ORDER BY position ASC`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", collection, err)
	}
	defer rows.Close()

	var snapshot Snapshot
	for rows.Next() {
		var entry Entry
		var matchedAt string
		if err := rows.Scan(&entry.ID, &entry.VideoID, &entry.URL, &entry.Title,
			&entry.Year, &entry.Poster, &entry.Confidence, &matchedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, matchedAt); parseErr == nil {
			entry.MatchedAt = ts
		}
		snapshot = append(snapshot, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection %q: %w", collection, err)
	}
	return snapshot, nil
}

// Save replaces the collection with the snapshot, applying the entry cap.
func (s *Store) Save(ctx context.Context, collection string, snapshot Snapshot) error {
	snapshot = Trim(snapshot, s.maxEntries)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("clear collection %q: %w", collection, err)
	}
	for position, entry := range snapshot {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (
                collection, id, position, video_id, url, title, year, poster, confidence, matched_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			collection,
			entry.ID,
			position,
			entry.VideoID,
			entry.URL,
			entry.Title,
			entry.Year,
			entry.Poster,
			entry.Confidence,
			entry.MatchedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", entry.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Record is the common append path: load, Add, Save in one call.
func (s *Store) Record(ctx context.Context, collection string, entry Entry) error {
	snapshot, err := s.Load(ctx, collection)
	if err != nil {
		return err
	}
	return s.Save(ctx, collection, Add(snapshot, entry))
}

// Delete removes one entry from the collection.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	snapshot, err := s.Load(ctx, collection)
	if err != nil {
		return err
	}
	return s.Save(ctx, collection, Remove(snapshot, id))
}

// Clear drops every entry in the collection.
func (s *Store) Clear(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("clear collection %q: %w", collection, err)
	}
	return nil
}

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}
	sort.Strings(versions)

	migrations := make([]migration, 0, len(versions))
	for _, name := range versions {
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{
			version: strings.TrimSuffix(name, ".sql"),
			sql:     string(data),
		})
	}
	return migrations, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
