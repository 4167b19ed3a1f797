package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/app"
	"github.com/ngmaloney/surf-terminal/internal/config"
	"github.com/ngmaloney/surf-terminal/internal/database"
	"github.com/ngmaloney/surf-terminal/internal/logging"
	"github.com/ngmaloney/surf-terminal/internal/ui"
)

func main() {
	spot := flag.String("spot", "", "Spot id, name or place to load directly (e.g., wushi, 福隆, 台東)")
	logFile := flag.String("log-file", "", "Write JSON logs to this file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file
	logger := zap.NewNop()
	if *logFile != "" {
		if logger, err = logging.NewFile(cfg.LogLevel, *logFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	stack, err := app.Build(cfg, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer stack.Close()

	m := ui.NewModel(ui.Config{
		DBPath:      cfg.DBPath,
		Provision:   database.ProvisionOptions{ZonesShapefile: cfg.ZonesShapefile},
		Spots:       stack.Spots,
		Reports:     stack.Reports,
		InitialSpot: *spot,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
