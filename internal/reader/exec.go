package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/kyleboon/chessdb/internal/diag"
	"github.com/kyleboon/chessdb/internal/hostio"
	"github.com/kyleboon/chessdb/internal/pgn"
	"github.com/rs/zerolog"
)

// FillChunk implements the execution loop of spec.md §4.2: acquire work
// under lock, parse and write outside the lock, return or drop the reader
// under lock, stopping at RowsPerChunk rows or when no more work remains.
// isGlob selects the §7 error policy: in single-path mode an open failure
// is fatal; in glob mode it is logged and skipped.
func FillChunk(pool *Pool, chunk *hostio.MemChunk, isGlob bool, logger zerolog.Logger) error {
	for chunk.Len() < RowsPerChunk {
		state, path, havePath, done := pool.acquire()
		if done {
			return nil
		}
		if havePath {
			opened, err := openReader(path, pool.compression)
			if err != nil {
				if !isGlob {
					return err
				}
				diag.Warnf(logger, path, 0, "skipping file: %v", err)
				continue
			}
			state = opened
		}

		if !fillFromReader(state, chunk, logger, RowsPerChunk-chunk.Len()) {
			state.atEOF = true
		}
		pool.release(state)
	}
	return nil
}

// fillFromReader drains up to maxRows games from state into chunk. Returns
// true if the stream has more games left (chunk filled before EOF), false
// if the stream reached EOF.
func fillFromReader(state *ReaderState, chunk *hostio.MemChunk, logger zerolog.Logger, maxRows int) bool {
	source := state.Path
	for i := 0; i < maxRows; i++ {
		rec, err := pgn.ReadGame(state.scanner, state.visitor)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				diag.Warnf(logger, state.Path, state.scanner.GameIndex(), "stream error: %v", err)
			}
			return false
		}

		if rec.ParseError != nil {
			gameIdx := state.scanner.GameIndex()
			annotated := fmt.Sprintf("%s (file %s, game %d)", *rec.ParseError, state.Path, gameIdx)
			rec.ParseError = &annotated
			diag.Warnf(logger, state.Path, gameIdx, "parse diagnostic: %s", *rec.ParseError)
		}

		chunk.StartRow()
		hostio.WriteRow(chunk, rec, &source)
	}
	return true
}
