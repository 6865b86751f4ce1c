package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vetrek/pilot"
	"github.com/vetrek/pilot/internal/config"
	"github.com/vetrek/pilot/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pilot"})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	styles := tui.DefaultStyles()
	styles.Sheet = styles.Sheet.BorderForeground(lipgloss.Color(cfg.UI.AccentColor))

	host := tui.NewHost(
		homeScreen{id: pilot.NewID()},
		tui.WithStyles(styles),
		tui.WithDefaultDetent(pilot.Detent(cfg.UI.SheetDetent)),
		tui.WithCoordinatorOptions(pilot.WithLogger(logger)),
	)

	p := tea.NewProgram(host, tea.WithAltScreen())
	host.UseProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "pilot-demo:", err)
		os.Exit(1)
	}
}
