package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/minirel/minirel/internal/minirel"
	"github.com/minirel/minirel/internal/parser"
	"github.com/minirel/minirel/internal/pkg/logging"
	"github.com/minirel/minirel/internal/pkg/util"
)

const cliName = "minirel"

type metaCommand int

const (
	Unknown metaCommand = iota + 1
	Help
	Exit
	ListTables
)

func isMetaCommand(inputBuffer string) bool {
	return len(inputBuffer) > 0 && inputBuffer[:1] == "."
}

func doMetaCommand(inputBuffer string) metaCommand {
	switch inputBuffer {
	case "help":
		return Help
	case "exit":
		return Exit
	case "tables":
		return ListTables
	default:
		return Unknown
	}
}

var completions = []string{
	"CREATE TABLE", "DROP TABLE", "SELECT", "INSERT INTO", "UPDATE", "DELETE FROM",
	".help", ".exit", ".tables",
}

func createReadlineInstance() (*readline.Instance, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(completions))
	for _, cmd := range completions {
		items = append(items, readline.PcItem(cmd))
	}

	return readline.NewEx(&readline.Config{
		Prompt:            cliName + "> ",
		AutoComplete:      readline.NewPrefixCompleter(items...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logger, err := logging.NewLogger(level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // flushes buffer, if any

	aDatabase := minirel.NewDatabase(logger)
	aParser := parser.New()

	rl, err := createReadlineInstance()
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Printf("Error reading input: %s\n", err)
			return
		}

		inputBuffer := strings.TrimSpace(line)
		if inputBuffer == "" {
			continue
		}

		if isMetaCommand(inputBuffer) {
			switch doMetaCommand(strings.ToLower(inputBuffer[1:])) {
			case Help:
				fmt.Println(".help    - Show available commands")
				fmt.Println(".exit    - Closes program")
				fmt.Println(".tables  - List all tables in the current database")
			case Exit:
				return
			case ListTables:
				for _, table := range aDatabase.ListTableNames(ctx) {
					fmt.Println(table)
				}
			case Unknown:
				fmt.Printf("Unrecognized meta command: %s\n", inputBuffer)
			}
			continue
		}

		statements, err := aParser.Parse(ctx, inputBuffer)
		if err != nil {
			fmt.Printf("Error parsing statement: %s\n", err)
			continue
		}
		for _, stmt := range statements {
			executeStatement(ctx, aDatabase, stmt)
		}
	}
}

func executeStatement(ctx context.Context, aDatabase *minirel.Database, stmt minirel.Statement) {
	aResult, err := aDatabase.ExecuteStatement(ctx, stmt)
	if err != nil {
		fmt.Printf("Error executing statement: %s\n", err)
		return
	}
	switch stmt.Kind {
	case minirel.Insert, minirel.Update, minirel.Delete:
		fmt.Printf("Rows affected: %d\n", aResult.RowsAffected)
	case minirel.Select:
		var rows [][]minirel.Value
		for aResult.Rows.Next(ctx) {
			rows = append(rows, aResult.Rows.Row().Values)
		}
		if err := aResult.Rows.Err(); err != nil {
			fmt.Printf("Error reading rows: %s\n", err)
			return
		}
		util.RenderTable(os.Stdout, aResult.Columns, rows)
	}
}
