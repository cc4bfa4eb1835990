package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"desk-cli/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Journal is an append-only activity log held in an in-memory SQLite database. It lives
// as long as the process; nothing is written to disk.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

func OpenJournal(ctx context.Context) (*Journal, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database; pin the pool to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			entity_kind TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records one event. ID and TS are filled in when empty.
func (j *Journal) Append(ctx context.Context, ev model.Event) (model.Event, error) {
	if j == nil || j.db == nil {
		return model.Event{}, errors.New("journal closed")
	}
	ev.Type = strings.TrimSpace(ev.Type)
	if ev.Type == "" {
		return model.Event{}, errors.New("event: missing type")
	}
	ev.EntityID = strings.TrimSpace(ev.EntityID)
	if ev.EntityID == "" {
		return model.Event{}, errors.New("event: missing entity id")
	}
	if ev.ID == "" {
		ev.ID = "evt-" + uuid.NewString()
	}
	if ev.TS.IsZero() {
		ev.TS = j.now().UTC()
	}
	pb, err := json.Marshal(ev.Payload)
	if err != nil {
		return model.Event{}, err
	}
	if _, err := j.db.ExecContext(ctx,
		`INSERT INTO events(event_id, type, entity_kind, entity_id, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Type, ev.Kind, ev.EntityID, string(pb), ev.TS.UnixMilli()); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// Tail returns the last limit events, oldest first. limit <= 0 returns everything.
func (j *Journal) Tail(ctx context.Context, limit int) ([]model.Event, error) {
	q := `SELECT event_id, type, entity_kind, entity_id, payload_json, issued_at_unixms
	      FROM events ORDER BY seq DESC`
	return j.query(ctx, q, limit)
}

// ForEntity returns the last limit events for one entity, oldest first.
func (j *Journal) ForEntity(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return []model.Event{}, nil
	}
	q := `SELECT event_id, type, entity_kind, entity_id, payload_json, issued_at_unixms
	      FROM events WHERE entity_id = ? ORDER BY seq DESC`
	return j.query(ctx, q, limit, entityID)
}

func (j *Journal) query(ctx context.Context, q string, limit int, args ...any) ([]model.Event, error) {
	if j == nil || j.db == nil {
		return nil, errors.New("journal closed")
	}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var id, typ, kind, entityID, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &typ, &kind, &entityID, &payloadJSON, &tsMs); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, model.Event{
			ID:       id,
			TS:       time.UnixMilli(tsMs).UTC(),
			Type:     typ,
			Kind:     kind,
			EntityID: entityID,
			Payload:  payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Rows come newest-first so LIMIT keeps the tail; flip to chronological.
	for i, k := 0, len(out)-1; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}
