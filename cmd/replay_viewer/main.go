package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/config"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/simulator"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logFile := flag.String("log-file", "", "Write logs to this file (the terminal is used by the viewer)")
	watch := flag.Bool("watch", true, "Reload viewer settings when the config file changes")
	startTurn := flag.Int("turn", 0, "Turn to open at")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: replay_viewer [flags] <file.gior>")
		os.Exit(2)
	}

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	logger, closeLog := setupLogging(*logFile, cfg.Logging.Level)
	defer closeLog()

	rec, err := replay.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sim, err := simulator.New(rec,
		simulator.WithLogger(logger),
		simulator.WithMaxTurns(cfg.Simulation.MaxTurns),
		simulator.WithRules(game.RulesFromConfig(cfg)),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sim.JumpToTurn(*startTurn)

	p := tea.NewProgram(newModel(sim, cfg.Viewer), tea.WithAltScreen())

	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config) {
			logger.Info().Str("path", config.ConfigFilePath()).Msg("Config reloaded")
			p.Send(configMsg{viewer: c.Viewer})
		})
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging sends logs to path, or discards them when path is empty since
// the terminal belongs to the viewer.
func setupLogging(path, level string) (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if path == "" {
		return zerolog.Nop(), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		return zerolog.Nop(), func() {}
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return log.Logger, func() { _ = f.Close() }
}
