package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"

	"tdb/internal/engine"
	"tdb/internal/storage/filestore"
	"tdb/internal/storage/sqlexport"
	"tdb/internal/table"
)

const replHelp = `instructions:
  append_col <name> <type>      type: int32 int64 float32 float64 text
  append_row <v> [<v> ...]      values: 42  42l  3.14  3.14f  ` + "`text`" + `  null
  delete_col <name> | @<index>
  delete_row <index>
  fetch <row> <col>
meta:
  \show                render the table
  \save                persist to the database file
  \export <path> [tb]  export to a SQLite file (default table name: tdb)
  \help                this text
  \q                   save and quit`

// repl reads one instruction per line and drives the engine exclusively
// through Query, the same entry point a logging or replay layer would
// use. Errors are printed and the loop continues; the table is persisted
// on \save and on clean exit.
func repl(db *engine.DB, cfg config) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Printf("tdb — %s (\\help for help)\n", cfg.File)

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			fmt.Println("error reading line:", err)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, `\`) {
			quit, err := metaCommand(db, cfg, trimmed)
			if err != nil {
				fmt.Println("error:", err)
			}
			if quit {
				break
			}
			continue
		}

		in, err := table.ParseInstruction(trimmed)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		slog.Debug("executing", "instruction", in.String())

		resp, err := db.Query(in)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(resp)
	}

	if err := filestore.Save(cfg.File, db); err != nil {
		return err
	}
	slog.Info("saved database", "file", cfg.File, "columns", db.NumColumns(), "rows", db.NumRows())
	return nil
}

// metaCommand handles backslash commands. It reports whether the REPL
// should exit.
func metaCommand(db *engine.DB, cfg config, line string) (bool, error) {
	fields := strings.Fields(line)

	switch fields[0] {
	case `\q`, `\quit`, `\exit`:
		return true, nil

	case `\help`:
		fmt.Println(replHelp)
		return false, nil

	case `\show`:
		renderTable(db)
		return false, nil

	case `\save`:
		if err := filestore.Save(cfg.File, db); err != nil {
			return false, err
		}
		fmt.Println("saved", cfg.File)
		return false, nil

	case `\export`:
		if len(fields) < 2 || len(fields) > 3 {
			return false, fmt.Errorf(`\export wants <path> [tablename]`)
		}
		name := "tdb"
		if len(fields) == 3 {
			name = fields[2]
		}
		if err := sqlexport.Export(context.Background(), db, fields[1], name); err != nil {
			return false, err
		}
		fmt.Printf("exported %d rows to %s\n", db.NumRows(), fields[1])
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
}

func renderTable(db *engine.DB) {
	cols := db.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = fmt.Sprintf("%s (%s)", c.Name(), c.Restriction())
	}

	w := tablewriter.NewWriter(os.Stdout)
	w.SetHeader(header)
	for _, row := range db.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		w.Append(cells)
	}
	w.Render()
}
