// Package reader implements the read_pgn table function: path expansion,
// a worker-shared pool of open PGN streams, the chunked execution loop, and
// the per-file error policy spec.md §4.2/§5/§7 describe. No example repo in
// the pack implements a host-database table function; the pool/lock shape
// is grounded on the connection-guarding mutex pattern
// kyleboon-gochess/internal/db/sqlite.go uses around its *sql.DB, adapted
// from "guard one shared handle" to "guard a shared queue of reader
// states" per spec.md §5's locking discipline.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RowsPerChunk is the named constant ROWS_PER_CHUNK (spec.md §4.2 step 2).
const RowsPerChunk = 2048

// Compression selects the decompression stream wrapped around an opened
// file. The empty value means "no decompression".
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
)

// ParseCompression validates the bind-time `compression` named argument
// (spec.md §4.2, §7 item 1): nil ⇒ none, "zstd" (case-insensitive) ⇒ zstd,
// anything else (including the empty string) ⇒ a bind error.
func ParseCompression(raw *string) (Compression, error) {
	if raw == nil {
		return CompressionNone, nil
	}
	switch strings.ToLower(*raw) {
	case "zstd":
		return CompressionZstd, nil
	case "":
		return CompressionNone, fmt.Errorf("read_pgn: compression must not be empty; allowed values: \"zstd\"")
	default:
		return CompressionNone, fmt.Errorf("read_pgn: unsupported compression %q; allowed values: \"zstd\"", *raw)
	}
}

// isGlobPattern reports whether pathPattern should be expanded as a glob
// (spec.md §4.2 "Expand path_pattern: if it contains * or ?, treat as a
// glob; otherwise, a single explicit path").
func isGlobPattern(pathPattern string) bool {
	return strings.ContainsAny(pathPattern, "*?")
}

// ExpandPaths resolves pathPattern into the concrete file list the reader
// pool will consume, and reports whether it was resolved as a glob (which
// changes the error policy downstream: single-path mode fails the query on
// open failure; glob mode logs and skips).
func ExpandPaths(pathPattern string) (paths []string, isGlob bool, err error) {
	if !isGlobPattern(pathPattern) {
		return []string{pathPattern}, false, nil
	}
	matches, err := filepath.Glob(pathPattern)
	if err != nil {
		return nil, true, fmt.Errorf("read_pgn: invalid glob pattern %q: %w", pathPattern, err)
	}
	return matches, true, nil
}
