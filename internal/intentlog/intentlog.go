package intentlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/logger"
)

// Resource names the backend collection a compensating delete targets.
type Resource string

const (
	ResourceScheduledMission Resource = "scheduled_mission"
	ResourcePoolMission      Resource = "pool_mission"
)

// Intent is a compensating delete that failed during a pool↔scheduled
// conversion and is waiting to be retried. Until it resolves, the item
// exists in both collections.
type Intent struct {
	ID         string
	Resource   Resource
	ResourceID int64
	CreatedAt  time.Time
	Attempts   int
	LastError  string
}

// Deleter is the slice of the API client the drain needs.
type Deleter interface {
	DeleteScheduledMission(ctx context.Context, id int64) error
	DeletePoolMission(ctx context.Context, id int64) error
}

// Log is the persisted intent log. Conversions record failed compensating
// deletes here; Drain retries them on startup and on demand.
type Log struct {
	source string
	driver string
	db     *sql.DB
}

// Open opens (creating if needed) a local sqlite intent log at path.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return open("sqlite", path)
}

// OpenDSN opens the intent log on the given data source. Connection
// strings with a postgres scheme get the Postgres driver, so the log can
// live on a shared server; anything else is treated as a sqlite file path.
func OpenDSN(dsn string) (*Log, error) {
	if dsnDriver(dsn) == "postgres" {
		return open("postgres", dsn)
	}
	return Open(dsn)
}

func dsnDriver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func open(driver, source string) (*Log, error) {
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open intent log: %w", err)
	}
	l := &Log{source: source, driver: driver, db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// rebind rewrites ? placeholders into the $n form lib/pq expects. The
// sqlite driver takes the queries unchanged.
func (l *Log) rebind(query string) string {
	if l.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (l *Log) migrate() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS intents (
			id          TEXT PRIMARY KEY,
			resource    TEXT NOT NULL,
			resource_id INTEGER NOT NULL,
			created_at  TEXT NOT NULL,
			attempts    INTEGER NOT NULL DEFAULT 0,
			last_error  TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate intent log: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record persists a compensating delete that must eventually run.
func (l *Log) Record(resource Resource, resourceID int64, cause error) error {
	lastErr := ""
	if cause != nil {
		lastErr = cause.Error()
	}
	_, err := l.db.Exec(
		l.rebind(`INSERT INTO intents (id, resource, resource_id, created_at, attempts, last_error) VALUES (?, ?, ?, ?, 1, ?)`),
		uuid.New().String(), string(resource), resourceID, time.Now().UTC().Format(time.RFC3339), lastErr,
	)
	if err != nil {
		return fmt.Errorf("failed to record intent: %w", err)
	}
	return nil
}

// Pending returns unresolved intents, oldest first.
func (l *Log) Pending() ([]Intent, error) {
	rows, err := l.db.Query(`SELECT id, resource, resource_id, created_at, attempts, last_error FROM intents ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list intents: %w", err)
	}
	defer rows.Close()

	var intents []Intent
	for rows.Next() {
		var (
			it      Intent
			created string
		)
		if err := rows.Scan(&it.ID, &it.Resource, &it.ResourceID, &created, &it.Attempts, &it.LastError); err != nil {
			return nil, fmt.Errorf("failed to scan intent: %w", err)
		}
		it.CreatedAt, _ = time.Parse(time.RFC3339, created)
		intents = append(intents, it)
	}
	return intents, rows.Err()
}

// Drain retries every pending compensating delete. Intents that exceed the
// attempt cap stay in the log and are reported so the user can clean up the
// duplicate manually. Returns the number resolved.
func (l *Log) Drain(ctx context.Context, del Deleter) (int, error) {
	intents, err := l.Pending()
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, it := range intents {
		if it.Attempts >= constants.IntentMaxAttempts {
			logger.Warn("intent exceeded retry cap, manual cleanup needed",
				"resource", it.Resource, "resource_id", it.ResourceID, "attempts", it.Attempts)
			continue
		}

		var delErr error
		switch it.Resource {
		case ResourceScheduledMission:
			delErr = del.DeleteScheduledMission(ctx, it.ResourceID)
		case ResourcePoolMission:
			delErr = del.DeletePoolMission(ctx, it.ResourceID)
		default:
			logger.Error("unknown intent resource", "resource", it.Resource)
			continue
		}

		if delErr != nil {
			if markErr := l.markAttempt(it.ID, delErr); markErr != nil {
				return resolved, markErr
			}
			continue
		}
		if err := l.resolve(it.ID); err != nil {
			return resolved, err
		}
		resolved++
	}
	return resolved, nil
}

func (l *Log) markAttempt(id string, cause error) error {
	_, err := l.db.Exec(l.rebind(`UPDATE intents SET attempts = attempts + 1, last_error = ? WHERE id = ?`), cause.Error(), id)
	if err != nil {
		return fmt.Errorf("failed to update intent: %w", err)
	}
	return nil
}

func (l *Log) resolve(id string) error {
	_, err := l.db.Exec(l.rebind(`DELETE FROM intents WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to resolve intent: %w", err)
	}
	return nil
}
