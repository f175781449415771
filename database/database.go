// Package database holds the embedded schema migrations and the OCI-based
// godror connector used when db.driver is set to "godror".
package database

import (
	"embed"
	"fmt"

	_ "github.com/godror/godror" // Oracle driver (OCI)
	"github.com/jmoiron/sqlx"
)

// Migrations contains the versioned *.up.sql / *.down.sql files.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the files.
const MigrationsDir = "migrations"

// OpenGodror opens and pings a godror connection. dsn uses godror's
// `user="..." password="..." connectString="host:port/service"` format.
func OpenGodror(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("godror", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using godror: %w", err)
	}
	return db, nil
}
