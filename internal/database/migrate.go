package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	rootdb "practice-quest/database"
	"practice-quest/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const migrationsTable = "SCHEMA_MIGRATIONS"

// Migrator applies the versioned SQL files read through golang-migrate's
// iofs source. golang-migrate has no Oracle database driver, so applied
// versions are tracked in SCHEMA_MIGRATIONS by this type.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator reads migrations from the embedded files.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigratorFromFS(db, rootdb.Migrations, rootdb.MigrationsDir)
}

// NewMigratorFromFS reads migrations from dir inside fsys.
func NewMigratorFromFS(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.src.Close()
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	var count int
	if err := m.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_tables WHERE table_name = :1`, migrationsTable); err != nil {
		return fmt.Errorf("could not check migrations table: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, `CREATE TABLE `+migrationsTable+` (
    version    NUMBER(19)    PRIMARY KEY,
    name       VARCHAR2(255) NOT NULL,
    applied_at TIMESTAMP     NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("could not create migrations table: %w", err)
	}
	return nil
}

// Version returns the highest applied version, or 0 when none is applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	var version uint
	if err := m.db.GetContext(ctx, &version, `SELECT NVL(MAX(version), 0) FROM `+migrationsTable); err != nil {
		return 0, fmt.Errorf("could not read migration version: %w", err)
	}
	return version, nil
}

// Up applies every pending migration in version order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	version, err := m.src.First()
	for err == nil {
		if version > current {
			if err := m.apply(ctx, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("could not list migrations: %w", err)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("applied", applied))
	return applied, nil
}

// Down reverts the latest applied migrations, at most steps of them.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	reverted := 0
	for reverted < steps {
		current, err := m.Version(ctx)
		if err != nil {
			return reverted, err
		}
		if current == 0 {
			break
		}
		r, identifier, err := m.src.ReadDown(current)
		if err != nil {
			return reverted, fmt.Errorf("could not read down migration %d: %w", current, err)
		}
		if err := m.execScript(ctx, r); err != nil {
			return reverted, fmt.Errorf("could not revert migration %d (%s): %w", current, identifier, err)
		}
		if _, err := m.db.ExecContext(ctx, `DELETE FROM `+migrationsTable+` WHERE version = :1`, int64(current)); err != nil {
			return reverted, fmt.Errorf("could not unrecord migration %d: %w", current, err)
		}
		logger.Get().Info("Reverted migration", zap.Uint("version", current), zap.String("name", identifier))
		reverted++
	}
	return reverted, nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	r, identifier, err := m.src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	if err := m.execScript(ctx, r); err != nil {
		return fmt.Errorf("could not execute migration %d (%s): %w", version, identifier, err)
	}
	if _, err := m.db.ExecContext(ctx,
		`INSERT INTO `+migrationsTable+` (version, name, applied_at) VALUES (:1, :2, :3)`,
		int64(version), identifier, time.Now().UTC()); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

func (m *Migrator) execScript(ctx context.Context, r io.ReadCloser) error {
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, stmt := range SplitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w\nstatement: %s", err, stmt)
		}
	}
	return nil
}

// SplitStatements splits a script on semicolons that end a line. The Oracle
// drivers reject a trailing semicolon and execute one statement per call.
func SplitStatements(script string) []string {
	var (
		stmts []string
		buf   strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			buf.WriteString(strings.TrimSuffix(strings.TrimRight(line, " \t\r"), ";"))
			if s := strings.TrimSpace(buf.String()); s != "" {
				stmts = append(stmts, s)
			}
			buf.Reset()
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}
