package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"keyfall/internal/game"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SessionResult is one finished run of a chart.
type SessionResult struct {
	Score     int64
	Hits      uint64
	Misses    uint64
	MeanError float64
	PlayedAt  time.Time
}

// Store persists session results keyed by a chart content hash.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

func NewStore(path string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, fmt.Errorf("open score database: %w", err)
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  score integer,
		  hits integer,
		  misses integer,
		  mean_error real,
		  played_at timestamp
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("init score database: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashChart derives a stable identity from the chart content, so renaming
// the file does not orphan its history.
func hashChart(c *game.Chart) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n", c.Name)
	for _, item := range c.Items {
		fmt.Fprintf(h, "%d %d %d\n", item.Time, item.Note, item.Length)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Save records a finished session. Failures are logged, not returned; a
// broken database should not take down the end-of-session path.
func (s *Store) Save(c *game.Chart, r SessionResult) {
	_, err := s.db.Exec(
		"insert into results(sum, score, hits, misses, mean_error, played_at) values(?, ?, ?, ?, ?, ?)",
		hashChart(c), r.Score, r.Hits, r.Misses, r.MeanError, r.PlayedAt,
	)
	if nil != err {
		s.log.Warn("unable to save session result", zap.Error(err))
	}
}

// Best loads the highest scoring prior session for a chart.
func (s *Store) Best(c *game.Chart) (SessionResult, bool) {
	row := s.db.QueryRow(
		"select score, hits, misses, mean_error, played_at from results where sum = ? order by score desc limit 1",
		hashChart(c),
	)
	var r SessionResult
	err := row.Scan(&r.Score, &r.Hits, &r.Misses, &r.MeanError, &r.PlayedAt)
	if err == sql.ErrNoRows {
		return SessionResult{}, false
	}
	if nil != err {
		s.log.Warn("unable to load session results", zap.Error(err))
		return SessionResult{}, false
	}
	return r, true
}
