package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kyleboon/chessdb/internal/movetext"
	"github.com/kyleboon/chessdb/internal/timecontrol"
	"github.com/urfave/cli/v2"
)

// scalarsCommand runs one chess_* scalar kernel against each line of stdin,
// for manual smoke-testing outside a host database (SPEC_FULL.md
// SUPPLEMENTED FEATURES) — the same "just for demonstration" harness shape
// as kyleboon-gochess/cmd/gochess's example run.
func scalarsCommand() *cli.Command {
	return &cli.Command{
		Name:      "scalars",
		Usage:     "run a chess_* scalar kernel against stdin, one line per call",
		ArgsUsage: "<kernel>",
		Description: "Supported kernels: chess_moves_normalize, chess_ply_count,\n" +
			"chess_moves_hash, chess_moves_json, chess_timecontrol_normalize,\n" +
			"chess_timecontrol_category",
		Action: runScalars,
	}
}

func runScalars(c *cli.Context) error {
	kernel := c.Args().First()
	if kernel == "" {
		return fmt.Errorf("scalars: a kernel name is required")
	}

	fn, ok := scalarKernels[kernel]
	if !ok {
		return fmt.Errorf("scalars: unknown kernel %q", kernel)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Println(fn(line))
	}
	return scanner.Err()
}

var scalarKernels = map[string]func(string) string{
	"chess_moves_normalize": func(line string) string {
		out := movetext.Normalize(&line)
		if out == nil {
			return "NULL"
		}
		return *out
	},
	"chess_ply_count": func(line string) string {
		out := movetext.PlyCount(&line)
		if out == nil {
			return "NULL"
		}
		return fmt.Sprintf("%d", *out)
	},
	"chess_moves_hash": func(line string) string {
		out := movetext.Hash(&line)
		if out == nil {
			return "NULL"
		}
		return fmt.Sprintf("%016x", *out)
	},
	"chess_moves_json": func(line string) string {
		return movetext.JSON(&line, nil)
	},
	"chess_timecontrol_normalize": func(line string) string {
		out := timecontrol.Normalize(line)
		if out == nil {
			return "NULL"
		}
		return *out
	},
	"chess_timecontrol_category": func(line string) string {
		out := timecontrol.CategoryOf(line)
		if out == nil {
			return "NULL"
		}
		return *out
	},
}
