// Package database opens the MySQL pool and bootstraps the schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Options are the connection settings of the run history database.
type Options struct {
	User, Pass, Host, Port, Name string
}

// DSN builds the driver connection string.  Times are read as UTC
// time.Time values.
func (o Options) DSN() string {
	c := mysql.NewConfig()
	c.User = o.User
	c.Passwd = o.Pass
	c.Net = "tcp"
	c.Addr = o.Host + ":" + o.Port
	c.DBName = o.Name
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// Open connects to MySQL and verifies the connection.
func Open(ctx context.Context, o Options) (*sql.DB, error) {
	db, err := sql.Open("mysql", o.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

const runsTable = `CREATE TABLE IF NOT EXISTS reconciliation_runs (
  id            CHAR(36)     NOT NULL PRIMARY KEY,
  event_name    VARCHAR(255) NOT NULL,
  venue_context VARCHAR(64)  NOT NULL DEFAULT '',
  odd_even      BOOLEAN      NOT NULL DEFAULT FALSE,
  grand_total   INT          NOT NULL,
  total_sold    INT          NOT NULL,
  report_text   MEDIUMTEXT   NOT NULL,
  summary_json  JSON         NOT NULL,
  created_at    DATETIME(3)  NOT NULL,
  INDEX idx_runs_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the tables the service needs when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("create reconciliation_runs: %w", err)
	}
	return nil
}
