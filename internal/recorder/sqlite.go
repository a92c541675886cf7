package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (Grafana reads while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refresh_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			cycle_id       TEXT NOT NULL,
			net_assets     REAL,
			total_assets   REAL,
			total_pnl      REAL,
			adjusted_cash  REAL,
			buying_power   REAL,
			leverage       REAL,
			position_count INTEGER,
			traded_today   INTEGER,
			pivot_days     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_ts ON refresh_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS leverage_targets (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			cycle_id      TEXT NOT NULL,
			label         TEXT,
			ratio         REAL,
			target_assets REAL,
			diff          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_targets_cycle ON leverage_targets(cycle_id)`,

		`CREATE TABLE IF NOT EXISTS initial_loads (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			cycle_id    TEXT NOT NULL,
			entries     INTEGER,
			codes       INTEGER,
			latest_date TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_ts ON initial_loads(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRefresh(rec *RefreshRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	_, err := r.db.Exec(`INSERT INTO refresh_snapshots
		(timestamp, cycle_id, net_assets, total_assets, total_pnl, adjusted_cash,
		 buying_power, leverage, position_count, traded_today, pivot_days)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		now, rec.CycleID, rec.NetAssets, rec.TotalAssets, rec.TotalPnL,
		rec.AdjustedCash, rec.BuyingPower, rec.Leverage,
		rec.PositionCount, rec.TradedToday, rec.PivotDays,
	)
	if err != nil {
		return err
	}

	for _, tgt := range rec.Targets {
		_, err := r.db.Exec(`INSERT INTO leverage_targets
			(timestamp, cycle_id, label, ratio, target_assets, diff)
			VALUES (?,?,?,?,?,?)`,
			now, rec.CycleID, tgt.Label, tgt.Ratio, tgt.TargetAssets, tgt.Diff,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordInitialLoad(rec *InitialLoadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO initial_loads
		(timestamp, cycle_id, entries, codes, latest_date)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), rec.CycleID, rec.Entries, rec.Codes, rec.LatestDate,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
