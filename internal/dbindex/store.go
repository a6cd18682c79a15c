// Package dbindex is a satellite SQLite index over ingested games, kept
// alongside (not instead of) the read_pgn table function: a durable,
// queryable cache for tools like cmd/chessdb-index that want player/opening
// lookups without re-scanning PGN files every run. Adapted from
// kyleboon-gochess/internal/db/sqlite.go's connection/migration/transaction
// shape, repointed from that file's own ad hoc PGN parsing onto
// internal/reader + internal/pgn + internal/movetext, and keyed on
// chess_moves_hash (a Zobrist position key) instead of a SHA-256 of cleaned
// move text.
package dbindex

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kyleboon/chessdb/internal/diag"
	"github.com/kyleboon/chessdb/internal/hostio"
	"github.com/kyleboon/chessdb/internal/movetext"
	"github.com/kyleboon/chessdb/internal/pgn"
	"github.com/kyleboon/chessdb/internal/reader"
	"github.com/rs/zerolog"
)

// Store is a SQLite-backed index of previously ingested games.
type Store struct {
	conn *sql.DB
}

// Open creates (or reopens) the index database at dbPath, creating its
// schema if necessary.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("dbindex: creating directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("dbindex: opening database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("dbindex: creating schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) createSchema() error {
	if _, err := s.conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event TEXT,
			site TEXT,
			white TEXT,
			black TEXT,
			result TEXT,
			white_title TEXT,
			black_title TEXT,
			white_elo INTEGER,
			black_elo INTEGER,
			utc_date TEXT,
			utc_time TEXT,
			eco TEXT,
			opening TEXT,
			termination TEXT,
			time_control TEXT,
			movetext TEXT NOT NULL,
			parse_error TEXT,
			source TEXT,
			position_hash TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating games table: %w", err)
	}

	// position_hash predates this table in earlier revisions of the index
	// tool; addColumnIfNotExists keeps ALTER TABLE idempotent across schema
	// versions the same way the teacher's migration for game_hash does.
	if err := s.addColumnIfNotExists("games", "position_hash TEXT"); err != nil {
		return fmt.Errorf("migrating position_hash column: %w", err)
	}

	_, err = s.conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_games_players ON games(white, black);
		CREATE INDEX IF NOT EXISTS idx_games_date ON games(utc_date);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_games_position_hash ON games(position_hash);
	`)
	return err
}

func (s *Store) addColumnIfNotExists(table, columnDef string) error {
	parts := strings.Fields(columnDef)
	if len(parts) == 0 {
		return fmt.Errorf("invalid column definition: %s", columnDef)
	}
	columnName := parts[0]

	var dummy sql.NullString
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT 1", columnName, table)
	err := s.conn.QueryRow(query).Scan(&dummy)
	if err != nil && strings.Contains(err.Error(), "no such column") {
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, columnDef)
		if _, err := s.conn.Exec(alter); err != nil {
			return fmt.Errorf("adding column %s: %w", columnName, err)
		}
	}
	return nil
}

// IndexResult summarizes one IndexPath call.
type IndexResult struct {
	Imported int
	Skipped  int // duplicate position_hash, already indexed
	Errors   []error
}

// IndexPath drains every row read_pgn would produce for pathPattern into
// the index, deduplicating on the Zobrist hash of each game's mainline
// (movetext.Hash), mirroring the teacher's game_hash dedup but keyed on
// position rather than move text bytes. A nil logger discards warnings.
func IndexPath(store *Store, pathPattern string, comp reader.Compression, logger *zerolog.Logger) (*IndexResult, error) {
	paths, isGlob, err := reader.ExpandPaths(pathPattern)
	if err != nil {
		return nil, err
	}
	pool := reader.NewPool(paths, comp)

	var log zerolog.Logger
	if logger != nil {
		log = *logger
	} else {
		log = diag.NewLogger(io.Discard, "dbindex")
	}

	result := &IndexResult{}
	for {
		chunk := hostio.NewMemChunk()
		if err := reader.FillChunk(pool, chunk, isGlob, log); err != nil {
			return result, err
		}
		if chunk.Len() == 0 {
			break
		}
		if err := store.insertChunk(chunk, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *Store) insertChunk(chunk *hostio.MemChunk, result *IndexResult) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO games (
			event, site, white, black, result, white_title, black_title,
			white_elo, black_elo, utc_date, utc_time, eco, opening,
			termination, time_control, movetext, parse_error, source,
			position_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for row := 0; row < chunk.Len(); row++ {
		movetextVal, _ := chunk.Get(row, "movetext")
		movetextStr, _ := movetextVal.(string)
		hashVal := movetext.Hash(&movetextStr)

		var hashHex string
		if hashVal != nil {
			hashHex = fmt.Sprintf("%016x", *hashVal)
		}

		res, err := stmt.Exec(
			textVal(chunk, row, "Event"), textVal(chunk, row, "Site"),
			textVal(chunk, row, "White"), textVal(chunk, row, "Black"),
			textVal(chunk, row, "Result"), textVal(chunk, row, "WhiteTitle"),
			textVal(chunk, row, "BlackTitle"),
			u32Val(chunk, row, "WhiteElo"), u32Val(chunk, row, "BlackElo"),
			textVal(chunk, row, "UTCDate"), textVal(chunk, row, "UTCTime"),
			textVal(chunk, row, "ECO"), textVal(chunk, row, "Opening"),
			textVal(chunk, row, "Termination"), textVal(chunk, row, "TimeControl"),
			movetextStr, textVal(chunk, row, "parse_error"), textVal(chunk, row, "Source"),
			hashHex,
		)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("inserting row %d: %w", row, err))
			continue
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			result.Skipped++
		} else {
			result.Imported++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func textVal(chunk *hostio.MemChunk, row int, col string) any {
	v, null := chunk.Get(row, col)
	if null {
		return nil
	}
	switch t := v.(type) {
	case string:
		return t
	case pgn.Date:
		return fmt.Sprintf("%04d-%02d-%02d", t.Year, t.Month, t.Day)
	case pgn.TimeOfDay:
		return fmt.Sprintf("%02d:%02d:%02d%+03d:%02d", t.Hour, t.Minute, t.Second, t.OffsetMinutes/60, abs(t.OffsetMinutes%60))
	default:
		return fmt.Sprintf("%v", t)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func u32Val(chunk *hostio.MemChunk, row int, col string) any {
	v, null := chunk.Get(row, col)
	if null {
		return nil
	}
	return v
}

// PlayerStats summarizes one player's record across indexed games.
type PlayerStats struct {
	Name       string
	Games      int
	Wins       int
	Losses     int
	Draws      int
	WinRate    float64
	WhiteGames int
	BlackGames int
	WhiteWins  int
	BlackWins  int
}

// PlayerStatsAll aggregates PlayerStats across every indexed game, in the
// same single-pass map-then-sort shape as the teacher's GetPlayerStats.
func (s *Store) PlayerStatsAll() ([]PlayerStats, error) {
	rows, err := s.conn.Query(`
		SELECT white, black, result FROM games
		WHERE white IS NOT NULL AND black IS NOT NULL AND white != '' AND black != ''
	`)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PlayerStats)
	for rows.Next() {
		var white, black string
		var result sql.NullString
		if err := rows.Scan(&white, &black, &result); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if _, ok := stats[white]; !ok {
			stats[white] = &PlayerStats{Name: white}
		}
		if _, ok := stats[black]; !ok {
			stats[black] = &PlayerStats{Name: black}
		}
		stats[white].Games++
		stats[white].WhiteGames++
		stats[black].Games++
		stats[black].BlackGames++

		switch result.String {
		case "1-0":
			stats[white].Wins++
			stats[white].WhiteWins++
			stats[black].Losses++
		case "0-1":
			stats[black].Wins++
			stats[black].BlackWins++
			stats[white].Losses++
		case "1/2-1/2":
			stats[white].Draws++
			stats[black].Draws++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	out := make([]PlayerStats, 0, len(stats))
	for _, st := range stats {
		if st.Games > 0 {
			st.WinRate = float64(st.Wins) / float64(st.Games) * 100.0
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Games > out[j].Games })
	return out, nil
}

// GameCount returns the total number of indexed games.
func (s *Store) GameCount() (int, error) {
	var n int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM games").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return n, nil
}
