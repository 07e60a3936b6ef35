package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/numen-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the store
// interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.numen/data/numen.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".numen", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "numen.db")

	// WAL mode lets the HTTP server read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
}

// ReadingStore returns a ReadingStore interface backed by this store.
func (s *Store) ReadingStore() driven.ReadingStore {
	return &readingStore{store: s}
}

// migrate runs all pending up migrations, each in its own transaction,
// and records the applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save stores or updates a profile.
func (s *profileStore) Save(ctx context.Context, profile domain.BirthProfile) error {
	nicknames := profile.Nicknames
	if nicknames == nil {
		nicknames = []string{}
	}
	nicknamesJSON, err := json.Marshal(nicknames)
	if err != nil {
		return fmt.Errorf("marshalling nicknames: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, current_name, nicknames, birth_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			current_name = excluded.current_name,
			nicknames = excluded.nicknames,
			birth_date = excluded.birth_date,
			updated_at = excluded.updated_at
	`,
		profile.ID,
		profile.FullName,
		profile.CurrentName,
		string(nicknamesJSON),
		profile.BirthDate.String(),
		profile.CreatedAt.UnixNano(),
		profile.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by ID.
func (s *profileStore) Get(ctx context.Context, id string) (*domain.BirthProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, full_name, current_name, nicknames, birth_date, created_at, updated_at
		FROM profiles WHERE id = ?
	`, id)

	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return profile, nil
}

// Delete removes a profile.
func (s *profileStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all saved profiles ordered by name.
func (s *profileStore) List(ctx context.Context) ([]domain.BirthProfile, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, full_name, current_name, nicknames, birth_date, created_at, updated_at
		FROM profiles ORDER BY full_name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.BirthProfile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.BirthProfile, error) {
	var (
		p             domain.BirthProfile
		nicknamesJSON string
		birthDate     string
		createdAt     int64
		updatedAt     int64
	)
	if err := row.Scan(&p.ID, &p.FullName, &p.CurrentName, &nicknamesJSON, &birthDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(nicknamesJSON), &p.Nicknames); err != nil {
		return nil, fmt.Errorf("unmarshalling nicknames: %w", err)
	}
	if len(p.Nicknames) == 0 {
		p.Nicknames = nil
	}
	date, err := domain.ParseDate(birthDate)
	if err != nil {
		return nil, fmt.Errorf("parsing birth date %q: %w", birthDate, err)
	}
	p.BirthDate = date
	p.CreatedAt = time.Unix(0, createdAt)
	p.UpdatedAt = time.Unix(0, updatedAt)
	return &p, nil
}

// ==================== Reading Store ====================

// readingStore implements driven.ReadingStore.
type readingStore struct {
	store *Store
}

var _ driven.ReadingStore = (*readingStore)(nil)

// Save stores a reading.
func (s *readingStore) Save(ctx context.Context, reading domain.OracleReading) error {
	diceJSON, err := json.Marshal(reading.Dice)
	if err != nil {
		return fmt.Errorf("marshalling dice: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO oracle_readings
			(id, question, dice, total, core, card_total, card_name, card_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		reading.ID,
		reading.Question,
		string(diceJSON),
		reading.Total,
		reading.Core,
		reading.Card.Total,
		reading.Card.Name,
		reading.Card.Message,
		reading.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving reading: %w", err)
	}
	return nil
}

// Get retrieves a reading by ID.
func (s *readingStore) Get(ctx context.Context, id string) (*domain.OracleReading, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, question, dice, total, core, card_total, card_name, card_message, created_at
		FROM oracle_readings WHERE id = ?
	`, id)

	reading, err := scanReading(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting reading: %w", err)
	}
	return reading, nil
}

// List returns up to limit readings, newest first.
func (s *readingStore) List(ctx context.Context, limit int) ([]domain.OracleReading, error) {
	// SQLite treats a negative LIMIT as no limit.
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, question, dice, total, core, card_total, card_name, card_message, created_at
		FROM oracle_readings ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing readings: %w", err)
	}
	defer rows.Close()

	readings := []domain.OracleReading{}
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		readings = append(readings, *reading)
	}
	return readings, rows.Err()
}

func scanReading(row rowScanner) (*domain.OracleReading, error) {
	var (
		r         domain.OracleReading
		diceJSON  string
		createdAt int64
	)
	err := row.Scan(
		&r.ID, &r.Question, &diceJSON, &r.Total, &r.Core,
		&r.Card.Total, &r.Card.Name, &r.Card.Message, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(diceJSON), &r.Dice); err != nil {
		return nil, fmt.Errorf("unmarshalling dice: %w", err)
	}
	r.CreatedAt = time.Unix(0, createdAt)
	return &r, nil
}
