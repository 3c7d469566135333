package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/lib/pq"

	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// PostgresAgendaStorage keeps a snapshot of every aggregation pass, one row
// per deduplicated event keyed by its team signature. Rows for events that
// have already started get cleaned up periodically.
type PostgresAgendaStorage struct {
	db *sql.DB
}

func NewPostgresAgendaStorage(cfg *config.PostgresConfig) (*PostgresAgendaStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresAgendaStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL agenda storage initialized successfully")
	return s, nil
}

func (s *PostgresAgendaStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS agenda_events (
		id SERIAL PRIMARY KEY,
		team_signature VARCHAR(500) NOT NULL,
		event_id VARCHAR(200) NOT NULL,
		title VARCHAR(500) NOT NULL,
		start_time VARCHAR(50) NOT NULL DEFAULT '',
		competition VARCHAR(200) NOT NULL DEFAULT '',
		status VARCHAR(100) NOT NULL DEFAULT '',
		options JSONB NOT NULL DEFAULT '[]',
		sources JSONB NOT NULL DEFAULT '[]',
		starts_at TIMESTAMP,
		recorded_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(team_signature)
	);

	CREATE INDEX IF NOT EXISTS idx_agenda_events_starts_at ON agenda_events(starts_at);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// StorePass upserts every grouped event of an aggregation pass. One row per
// team signature, refreshed on each call.
func (s *PostgresAgendaStorage) StorePass(ctx context.Context, groups []models.GroupedEvent, recordedAt time.Time) error {
	query := `
	INSERT INTO agenda_events (
		team_signature, event_id, title, start_time,
		competition, status, options, sources, starts_at, recorded_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (team_signature) DO UPDATE SET
		event_id = EXCLUDED.event_id,
		title = EXCLUDED.title,
		start_time = EXCLUDED.start_time,
		competition = EXCLUDED.competition,
		status = EXCLUDED.status,
		options = EXCLUDED.options,
		sources = EXCLUDED.sources,
		starts_at = EXCLUDED.starts_at,
		recorded_at = EXCLUDED.recorded_at
	`

	for _, g := range groups {
		sig := models.TeamSignature(g.Teams)
		if sig == "" {
			continue
		}
		options, err := json.Marshal(g.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options for %s: %w", g.ID, err)
		}
		sourceNames := make([]string, 0, len(g.Sources))
		for _, src := range g.Sources {
			sourceNames = append(sourceNames, src.Source)
		}
		sources, err := json.Marshal(sourceNames)
		if err != nil {
			return fmt.Errorf("failed to marshal sources for %s: %w", g.ID, err)
		}

		var startsAt sql.NullTime
		if parsed := models.ParseStartTime(g.StartTime); parsed.OK {
			startsAt = sql.NullTime{Time: parsed.Time, Valid: true}
		}

		if _, err := s.db.ExecContext(ctx, query,
			sig, g.ID, g.Title, g.StartTime,
			g.Competition, g.Status.Name, options, sources, startsAt, recordedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert agenda event %s: %w", g.ID, err)
		}
	}
	return nil
}

// CleanStartedEvents deletes rows for events that have already begun.
func (s *PostgresAgendaStorage) CleanStartedEvents(ctx context.Context) error {
	query := `DELETE FROM agenda_events WHERE starts_at IS NOT NULL AND starts_at < NOW()`
	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to clean agenda_events: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows > 0 {
		slog.Info("Cleaned agenda_events for started events", "rows_deleted", rows)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresAgendaStorage) Close() error {
	return s.db.Close()
}
