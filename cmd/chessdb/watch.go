package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyleboon/chessdb/internal/diag"
	"github.com/kyleboon/chessdb/internal/hostio"
	"github.com/kyleboon/chessdb/internal/reader"
	"github.com/kyleboon/chessdb/internal/tui"
	"github.com/urfave/cli/v2"
)

// watchCommand shows each row read_pgn writes, with its parse_error, live
// while an ingest of a path or glob runs, the same "progress + scrollable
// log" shape as kyleboon-gochess/cmd/chesstui/main.go, repointed from a
// random-move chess viewer onto ingest progress (internal/tui). The
// reader's logged warnings (such as skipped files) are discarded and do not
// appear on the dashboard.
func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "ingest a PGN path/glob, showing a live dashboard of progress and diagnostics",
		ArgsUsage: "<path-pattern>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "compression", Usage: `"zstd" or empty for none`},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	pathPattern := c.Args().First()
	if pathPattern == "" {
		return fmt.Errorf("watch: a path or glob pattern is required")
	}

	var compressionArg *string
	if v := c.String("compression"); v != "" {
		compressionArg = &v
	}
	comp, err := reader.ParseCompression(compressionArg)
	if err != nil {
		return err
	}

	paths, isGlob, err := reader.ExpandPaths(pathPattern)
	if err != nil {
		return err
	}
	pool := reader.NewPool(paths, comp)

	events := make(chan tui.Event, 64)
	go func() {
		defer close(events)
		logger := diag.NewLogger(io.Discard, "chessdb-watch")
		for {
			chunk := hostio.NewMemChunk()
			if err := reader.FillChunk(pool, chunk, isGlob, logger); err != nil {
				events <- tui.Event{Level: "error", Message: err.Error()}
				return
			}
			if chunk.Len() == 0 {
				return
			}
			emitRows(chunk, events)
		}
	}()

	program := tea.NewProgram(tui.New(tui.NewChannelSource(events)), tea.WithAltScreen())
	return program.Start()
}

func emitRows(chunk *hostio.MemChunk, events chan<- tui.Event) {
	for row := 0; row < chunk.Len(); row++ {
		source, _ := chunk.Get(row, "Source")
		path, _ := source.(string)

		parseErr, isNull := chunk.Get(row, "parse_error")
		if isNull {
			events <- tui.Event{Path: path, Level: "info", Message: "row written"}
			continue
		}
		msg, _ := parseErr.(string)
		events <- tui.Event{Path: path, Level: "warn", Message: msg}
	}
}
