package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

const usage = `usage:
  flowdraw [FILE.json]
  flowdraw export IN.json OUT.png`

func main() {
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Println(usage)
		return
	}
	if len(args) > 0 && args[0] == "export" {
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		if err := exportFile(args[1], args[2]); err != nil {
			log.Fatal(err)
		}
		return
	}
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	config := loadConfig()
	logger, closeLog, err := newLogger(config.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	m := initialModel(config, logger)
	if len(args) == 1 {
		m.openAtStart(args[0])
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// newLogger writes text records to path, or discards them when no log file
// is configured. The terminal belongs to the UI, so nothing goes to stderr.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
