package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

var _ DB = (*SQLiteDB)(nil)

// NewSQLiteDB creates a new SQLite database connection.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS episodes (
			id TEXT PRIMARY KEY,
			game TEXT NOT NULL,
			num_players INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			rewards TEXT,
			reason TEXT NOT NULL DEFAULT '',
			truncated INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			episode_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			player INTEGER NOT NULL,
			sender INTEGER NOT NULL,
			content TEXT NOT NULL,
			FOREIGN KEY (episode_id) REFERENCES episodes(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_episode_id ON events(episode_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_seq ON events(episode_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_episodes_game ON episodes(game)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveEpisode inserts a new episode row.
func (s *SQLiteDB) SaveEpisode(ep *Episode) error {
	_, err := s.db.Exec(
		`INSERT INTO episodes (id, game, num_players, seed, truncated, finished)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ep.ID, ep.Game, ep.NumPlayers, ep.Seed, boolToInt(ep.Truncated), boolToInt(ep.Finished),
	)
	if err != nil {
		return fmt.Errorf("failed to save episode: %w", err)
	}
	return nil
}

// FinishEpisode records the final rewards and termination reason.
func (s *SQLiteDB) FinishEpisode(id string, rewards map[int]float64, reason string, truncated bool) error {
	blob, err := json.Marshal(rewards)
	if err != nil {
		return fmt.Errorf("failed to encode rewards: %w", err)
	}
	_, err = s.db.Exec(
		`UPDATE episodes SET rewards = ?, reason = ?, truncated = ?, finished = 1 WHERE id = ?`,
		string(blob), reason, boolToInt(truncated), id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish episode: %w", err)
	}
	return nil
}

// SaveEvents appends a batch of stream events in one transaction.
func (s *SQLiteDB) SaveEvents(episodeID string, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO events (episode_id, seq, kind, player, sender, content)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(episodeID, ev.Seq, ev.Kind, ev.Player, ev.Sender, ev.Content); err != nil {
			return fmt.Errorf("failed to save event: %w", err)
		}
	}
	return tx.Commit()
}

// GetEpisode retrieves a single episode by id.
func (s *SQLiteDB) GetEpisode(id string) (*Episode, error) {
	row := s.db.QueryRow(
		`SELECT id, game, num_players, seed, rewards, reason, truncated, finished, created_at
		 FROM episodes WHERE id = ?`, id,
	)
	ep, err := scanEpisode(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("episode not found: %s", id)
	}
	return ep, err
}

// ListEpisodes returns a page of episodes, newest first, optionally filtered
// by game id.
func (s *SQLiteDB) ListEpisodes(q EpisodesQuery) (*EpisodesList, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 200 {
		q.PerPage = 50
	}

	where := ""
	args := []any{}
	if q.Game != "" {
		where = " WHERE game = ?"
		args = append(args, q.Game)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM episodes"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count episodes: %w", err)
	}

	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
	rows, err := s.db.Query(
		`SELECT id, game, num_players, seed, rewards, reason, truncated, finished, created_at
		 FROM episodes`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer rows.Close()

	episodes := []Episode{}
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, *ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read episodes: %w", err)
	}

	totalPages := (total + q.PerPage - 1) / q.PerPage
	return &EpisodesList{
		Episodes:   episodes,
		TotalCount: total,
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetEvents returns an episode's stream events in sequence order.
func (s *SQLiteDB) GetEvents(episodeID string, limit, offset int) ([]Event, error) {
	if limit < 1 || limit > 1000 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.Query(
		`SELECT id, episode_id, seq, kind, player, sender, content
		 FROM events WHERE episode_id = ? ORDER BY seq ASC, id ASC LIMIT ? OFFSET ?`,
		episodeID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.EpisodeID, &ev.Seq, &ev.Kind, &ev.Player, &ev.Sender, &ev.Content); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row rowScanner) (*Episode, error) {
	var ep Episode
	var rewards sql.NullString
	var truncated, finished int
	if err := row.Scan(&ep.ID, &ep.Game, &ep.NumPlayers, &ep.Seed, &rewards,
		&ep.Reason, &truncated, &finished, &ep.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan episode: %w", err)
	}
	ep.Truncated = truncated != 0
	ep.Finished = finished != 0
	if rewards.Valid && rewards.String != "" {
		if err := json.Unmarshal([]byte(rewards.String), &ep.Rewards); err != nil {
			return nil, fmt.Errorf("failed to decode rewards: %w", err)
		}
	}
	return &ep, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
