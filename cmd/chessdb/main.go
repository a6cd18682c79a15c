// Command chessdb is a standalone CLI harness exercising read_pgn and the
// chess_* scalar kernels outside of any real host database, grounded on
// kyleboon-gochess/internal/db/db_cmd.go's command-function shape
// (urfave/cli/v2, one exported Command func per subcommand) and
// cmd/gochess/main.go's flag-struct style for the pieces that predate
// urfave/cli adoption in the teacher repo.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	log.SetPrefix("[chessdb] ")

	app := &cli.App{
		Name:  "chessdb",
		Usage: "PGN ingestion and movetext kernels, run outside a host database",
		Commands: []*cli.Command{
			scalarsCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
