/*
Package sqlite provides the SQLite-backed persistence layer for the
timekeeping backend.

PURPOSE:
  Owns the two durable entities of the system - staff members and their
  work logs - and the authoritative per-day aggregation derived from them.
  In production the same patterns apply to PostgreSQL; only minor SQL
  dialect differences.

KEY TABLES:
  staff:      Staff members with their mutable advance amount
  work_logs:  One row per recorded start/end interval on a calendar date

AGGREGATION:
  MonthlyDailyHours sums durations per work_date over one month, in Go with
  decimal arithmetic rather than in SQL. Durations are stored as decimal
  strings, so summing in SQL would silently coerce to float.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/timekeeping.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/: Pure computation over what this package stores
  - api/: HTTP surface on top of this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/timekeeping-engine/engine"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// Staff is a staff member row. AdvanceAmount is the only mutable field.
type Staff struct {
	ID            string
	Name          string
	AdvanceAmount decimal.Decimal
	CreatedAt     time.Time
}

// WorkLog is one persisted work interval. DurationHours is computed by the
// engine at creation time and stored; this row is the authoritative value.
type WorkLog struct {
	ID            string
	StaffID       string
	WorkDate      string // ISO YYYY-MM-DD
	StartTime     string // HH:mm
	EndTime       string // HH:mm (never the "24:00" sentinel)
	DurationHours decimal.Decimal
	CreatedAt     time.Time
}

// Store implements staff and work-log persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		advance_amount TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS work_logs (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL REFERENCES staff(id),
		work_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_hours TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Hot path: per-day listing and monthly aggregation
	CREATE INDEX IF NOT EXISTS idx_work_logs_staff_date
		ON work_logs(staff_id, work_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STAFF
// =============================================================================

// CreateStaff inserts a new staff member and returns the stored row.
func (s *Store) CreateStaff(ctx context.Context, name string) (*Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := Staff{
		ID:            uuid.NewString(),
		Name:          name,
		AdvanceAmount: decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO staff (id, name, advance_amount, created_at) VALUES (?, ?, ?, ?)`,
		staff.ID, staff.Name, staff.AdvanceAmount.String(),
		staff.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetStaff returns a staff member, or engine.ErrStaffNotFound.
func (s *Store) GetStaff(ctx context.Context, id string) (*Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getStaffLocked(ctx, id)
}

func (s *Store) getStaffLocked(ctx context.Context, id string) (*Staff, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, advance_amount, created_at FROM staff WHERE id = ?`, id)

	staff, err := scanStaff(row)
	if err == sql.ErrNoRows {
		return nil, engine.ErrStaffNotFound
	}
	return staff, err
}

// ListStaff returns all staff members ordered by name.
func (s *Store) ListStaff(ctx context.Context) ([]Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, advance_amount, created_at FROM staff ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *staff)
	}
	return out, rows.Err()
}

// UpdateAdvance sets the advance amount for a staff member and returns the
// updated row.
func (s *Store) UpdateAdvance(ctx context.Context, id string, amount decimal.Decimal) (*Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE staff SET advance_amount = ? WHERE id = ?`, amount.String(), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, engine.ErrStaffNotFound
	}

	return s.getStaffLocked(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStaff(row rowScanner) (*Staff, error) {
	var staff Staff
	var advance, createdAt string
	if err := row.Scan(&staff.ID, &staff.Name, &advance, &createdAt); err != nil {
		return nil, err
	}
	staff.AdvanceAmount = engine.MustParseDecimal(advance)
	staff.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &staff, nil
}

// =============================================================================
// WORK LOGS
// =============================================================================

// CreateWorkLog inserts a work log row. The caller is expected to have
// validated the times and computed the duration via the engine.
func (s *Store) CreateWorkLog(ctx context.Context, log WorkLog) (*WorkLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO work_logs (id, staff_id, work_date, start_time, end_time, duration_hours, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.StaffID, log.WorkDate, log.StartTime, log.EndTime,
		log.DurationHours.String(), log.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ListWorkLogs returns all logs for one staff member on one date, in
// creation order.
func (s *Store) ListWorkLogs(ctx context.Context, staffID, date string) ([]WorkLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, staff_id, work_date, start_time, end_time, duration_hours, created_at
		 FROM work_logs WHERE staff_id = ? AND work_date = ? ORDER BY created_at`,
		staffID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWorkLogs(rows)
}

// MonthlyDailyHours aggregates one month of logs into the canonical
// date->hours map: sum of durations per work_date, absent days omitted.
func (s *Store) MonthlyDailyHours(ctx context.Context, staffID string, year int, month time.Month) (engine.DailyHoursMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	first := engine.DateKey(year, month, 1)
	last := engine.DateKey(year, month, engine.DaysInMonth(year, month))

	rows, err := s.db.QueryContext(ctx,
		`SELECT work_date, duration_hours FROM work_logs
		 WHERE staff_id = ? AND work_date BETWEEN ? AND ?`,
		staffID, first, last)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	daily := make(engine.DailyHoursMap)
	for rows.Next() {
		var date, duration string
		if err := rows.Scan(&date, &duration); err != nil {
			return nil, err
		}
		daily[date] = daily.Hours(date).Add(engine.MustParseDecimal(duration))
	}
	return daily, rows.Err()
}

func collectWorkLogs(rows *sql.Rows) ([]WorkLog, error) {
	var out []WorkLog
	for rows.Next() {
		var log WorkLog
		var duration, createdAt string
		if err := rows.Scan(&log.ID, &log.StaffID, &log.WorkDate,
			&log.StartTime, &log.EndTime, &duration, &createdAt); err != nil {
			return nil, err
		}
		log.DurationHours = engine.MustParseDecimal(duration)
		log.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, log)
	}
	return out, rows.Err()
}
