package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"golf-atlas/models"
)

// sqlStore holds the table logic shared by the Postgres and SQLite sinks.
// Only the placeholder syntax and the column types differ.
type sqlStore struct {
	db          *sql.DB
	name        string
	placeholder func(n int) string
}

func (s *sqlStore) migrate(floatType, boolType string) error {
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS courses (
			id                 TEXT PRIMARY KEY,
			snapshot_id        TEXT NOT NULL,
			course_name        TEXT NOT NULL,
			course_resort      TEXT NOT NULL DEFAULT '',
			city               TEXT NOT NULL DEFAULT '',
			state              TEXT NOT NULL DEFAULT '',
			region             TEXT NOT NULL DEFAULT '',
			latitude           %[1]s NOT NULL,
			longitude          %[1]s NOT NULL,
			par                TEXT NOT NULL DEFAULT '',
			yardage_black_tees TEXT NOT NULL DEFAULT '',
			top_100_ranking    TEXT NOT NULL DEFAULT '',
			rank               INTEGER NOT NULL DEFAULT 0,
			is_top_100         %[2]s NOT NULL DEFAULT FALSE,
			is_buddy_hotspot   %[2]s NOT NULL DEFAULT FALSE,
			buddies_trip_hotspot TEXT NOT NULL DEFAULT '',
			avg_rating         TEXT NOT NULL DEFAULT '',
			lodging_on_site    TEXT NOT NULL DEFAULT '',
			best_time          TEXT NOT NULL DEFAULT '',
			cost_range         TEXT NOT NULL DEFAULT '',
			architect          TEXT NOT NULL DEFAULT '',
			phone              TEXT NOT NULL DEFAULT '',
			website_url        TEXT NOT NULL DEFAULT '',
			thumbnail_url      TEXT NOT NULL DEFAULT '',
			logo_url           TEXT NOT NULL DEFAULT '',
			raw                TEXT NOT NULL DEFAULT '{}',
			position           INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_courses_state      ON courses(state);
		CREATE INDEX IF NOT EXISTS idx_courses_is_top_100 ON courses(is_top_100);

		CREATE TABLE IF NOT EXISTS snapshots (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			loaded_at  TIMESTAMP NOT NULL,
			total_rows INTEGER NOT NULL,
			valid      INTEGER NOT NULL,
			dropped    INTEGER NOT NULL,
			top_100    INTEGER NOT NULL
		);
	`, floatType, boolType))
	return err
}

// WriteSnapshot replaces the stored course set with snap's, in one transaction.
func (s *sqlStore) WriteSnapshot(snap *models.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM courses"); err != nil {
		return fmt.Errorf("%s: clear: %w", s.name, err)
	}

	const batchSize = 50
	for i := 0; i < len(snap.Courses); i += batchSize {
		end := i + batchSize
		if end > len(snap.Courses) {
			end = len(snap.Courses)
		}
		if err := s.insertBatch(tx, snap.ID, i, snap.Courses[i:end]); err != nil {
			return fmt.Errorf("%s: insert batch at %d: %w", s.name, i, err)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf(
		`INSERT INTO snapshots (id, source, loaded_at, total_rows, valid, dropped, top_100)
		 VALUES (%s,%s,%s,%s,%s,%s,%s)`,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4),
		s.placeholder(5), s.placeholder(6), s.placeholder(7)),
		snap.ID, snap.Source, snap.LoadedAt, snap.Stats.TotalRows,
		snap.Stats.Valid, snap.Stats.Dropped, snap.Stats.Top100,
	); err != nil {
		return fmt.Errorf("%s: record snapshot: %w", s.name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.name, err)
	}
	return nil
}

func (s *sqlStore) insertBatch(tx *sql.Tx, snapshotID string, offset int, batch []*models.Course) error {
	cols := append(append([]string{"snapshot_id"}, exportColumns...), "raw", "position")
	perRow := len(cols)

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*perRow)

	for idx, c := range batch {
		ph := make([]string, perRow)
		for j := range ph {
			ph[j] = s.placeholder(idx*perRow + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		valueArgs = append(valueArgs, snapshotID)
		valueArgs = append(valueArgs, courseValues(c)...)
		valueArgs = append(valueArgs, rawJSON(c), offset+idx)
	}

	query := fmt.Sprintf(`
		INSERT INTO courses (%s)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(cols, ", "), strings.Join(valueStrings, ","))

	_, err := tx.Exec(query, valueArgs...)
	return err
}

// FetchAll retrieves the stored course set in source order.
func (s *sqlStore) FetchAll() ([]*models.Course, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s, raw
		FROM courses
		ORDER BY position
	`, strings.Join(exportColumns, ", ")))
	if err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", s.name, err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c := &models.Course{}
		var raw string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Resort, &c.City, &c.State, &c.Region,
			&c.Latitude, &c.Longitude, &c.Par, &c.Yardage, &c.RankText, &c.Rank,
			&c.IsTop100, &c.IsBuddyHotspot, &c.BuddyHotspot, &c.AvgRating, &c.LodgingOnSite, &c.BestTime,
			&c.CostRange, &c.Architect, &c.Phone, &c.WebsiteURL, &c.ThumbnailURL, &c.LogoURL,
			&raw,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.name, err)
		}
		if err := json.Unmarshal([]byte(raw), &c.Raw); err != nil {
			return nil, fmt.Errorf("%s: decode raw row %s: %w", s.name, c.ID, err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
