// Package resultcache memoizes exact-synthesis results and rewire cost
// histories keyed by a target truth table's hash, backed by
// database/sql over a driver chosen by Open's Driver argument: sqlite3
// (github.com/mattn/go-sqlite3) by default, or mysql
// (github.com/go-sql-driver/mysql), postgres (github.com/lib/pq), or
// sqlserver (github.com/denisenkom/go-mssqldb). A repeated
// exact-synthesis call for a function (and budget)
// already solved skips the SAT search entirely.
package resultcache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"abccore/internal/coreerr"
)

// Driver names the database/sql driver a DSN is routed to.
type Driver string

const (
	DriverSQLite   Driver = "sqlite3"
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
	DriverSQLServer Driver = "sqlserver"
)

// Cache is a handle onto the memo table. It is safe for concurrent use
// by multiple goroutines, same as the *sql.DB it wraps.
type Cache struct {
	db     *sql.DB
	driver Driver
}

// Open connects to the memo table named by dsn under driver, creating
// the backing table if it does not already exist. An empty dsn opens
// an in-process sqlite3 database at "abccore-resultcache.db" in the
// current directory.
func Open(driver Driver, dsn string) (*Cache, error) {
	site := coreerr.Site{Package: "resultcache", Operation: "Open"}
	if driver == "" {
		driver = DriverSQLite
	}
	if dsn == "" && driver == DriverSQLite {
		dsn = "abccore-resultcache.db"
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, coreerr.Wrap(err, coreerr.Backend, site, "opening %s database", driver)
	}
	if err := db.Ping(); err != nil {
		return nil, coreerr.Wrap(err, coreerr.Backend, site, "connecting to %s database", driver)
	}

	c := &Cache{db: db, driver: driver}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) ensureSchema() error {
	site := coreerr.Site{Package: "resultcache", Operation: "ensureSchema"}
	stmt := `CREATE TABLE IF NOT EXISTS synth_results (
		table_hash TEXT NOT NULL,
		care_hash TEXT NOT NULL,
		k INTEGER NOT NULL,
		budget INTEGER NOT NULL,
		found INTEGER NOT NULL,
		circuit TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (table_hash, care_hash, k, budget)
	)`
	if _, err := c.db.Exec(stmt); err != nil {
		return coreerr.Wrap(err, coreerr.Backend, site, "creating synth_results table")
	}

	stmt2 := `CREATE TABLE IF NOT EXISTS rewire_history (
		run_id TEXT NOT NULL,
		iteration INTEGER NOT NULL,
		cost INTEGER NOT NULL,
		level INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (run_id, iteration)
	)`
	if _, err := c.db.Exec(stmt2); err != nil {
		return coreerr.Wrap(err, coreerr.Backend, site, "creating rewire_history table")
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SynthResult is one memoized exact-synthesis outcome: Found is false
// for a memoized UNSAT, so a caller can skip re-proving unsatisfiable
// budgets too, not just successful ones.
type SynthResult struct {
	Found   bool
	Circuit string // caller-defined serialization (e.g. encoding/gob or JSON of the LUTCircuit)
}

// Lookup returns a previously stored synthesis result for the given
// target/care hash pair, K and budget, or ok=false if nothing is
// cached for that key yet.
func (c *Cache) Lookup(tableHash, careHash string, k, budget int) (SynthResult, bool, error) {
	site := coreerr.Site{Package: "resultcache", Operation: "Lookup"}
	row := c.db.QueryRow(
		replacePlaceholder(c.driver, `SELECT found, circuit FROM synth_results WHERE table_hash = ? AND care_hash = ? AND k = ? AND budget = ?`),
		tableHash, careHash, k, budget,
	)
	var found int
	var circuit string
	switch err := row.Scan(&found, &circuit); err {
	case nil:
		return SynthResult{Found: found != 0, Circuit: circuit}, true, nil
	case sql.ErrNoRows:
		return SynthResult{}, false, nil
	default:
		return SynthResult{}, false, coreerr.Wrap(err, coreerr.Backend, site, "querying synth_results")
	}
}

// Store memoizes a synthesis outcome, overwriting any existing entry
// for the same key.
func (c *Cache) Store(tableHash, careHash string, k, budget int, result SynthResult) error {
	site := coreerr.Site{Package: "resultcache", Operation: "Store"}
	foundInt := 0
	if result.Found {
		foundInt = 1
	}
	_, err := c.db.Exec(
		replacePlaceholder(c.driver,
			`INSERT INTO synth_results (table_hash, care_hash, k, budget, found, circuit, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (table_hash, care_hash, k, budget)
			 DO UPDATE SET found = excluded.found, circuit = excluded.circuit, created_at = excluded.created_at`),
		tableHash, careHash, k, budget, foundInt, result.Circuit, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return coreerr.Wrap(err, coreerr.Backend, site, "storing synth_results row")
	}
	return nil
}

// RecordIteration appends one rewire-loop progress point to the cost
// history for runID.
func (c *Cache) RecordIteration(runID string, iteration, cost, level int) error {
	site := coreerr.Site{Package: "resultcache", Operation: "RecordIteration"}
	_, err := c.db.Exec(
		replacePlaceholder(c.driver, `INSERT INTO rewire_history (run_id, iteration, cost, level, created_at) VALUES (?, ?, ?, ?, ?)`),
		runID, iteration, cost, level, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return coreerr.Wrap(err, coreerr.Backend, site, "recording rewire_history row")
	}
	return nil
}

// History returns the recorded cost/level trajectory for runID, in
// iteration order.
func (c *Cache) History(runID string) ([]RewireStat, error) {
	site := coreerr.Site{Package: "resultcache", Operation: "History"}
	rows, err := c.db.Query(
		replacePlaceholder(c.driver, `SELECT iteration, cost, level FROM rewire_history WHERE run_id = ? ORDER BY iteration ASC`),
		runID,
	)
	if err != nil {
		return nil, coreerr.Wrap(err, coreerr.Backend, site, "querying rewire_history")
	}
	defer rows.Close()

	var out []RewireStat
	for rows.Next() {
		var s RewireStat
		if err := rows.Scan(&s.Iteration, &s.Cost, &s.Level); err != nil {
			return nil, coreerr.Wrap(err, coreerr.Backend, site, "scanning rewire_history row")
		}
		out = append(out, s)
	}
	return out, nil
}

// RewireStat is one recorded iteration of a rewire run's cost history.
type RewireStat struct {
	Iteration int
	Cost      int
	Level     int
}

// replacePlaceholder rewrites a "?"-placeholder statement for drivers
// that expect a different placeholder style (lib/pq wants $1, $2, ...).
func replacePlaceholder(driver Driver, stmt string) string {
	if driver != DriverPostgres {
		return stmt
	}
	var b strings.Builder
	n := 0
	for _, r := range stmt {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
