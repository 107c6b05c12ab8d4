package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/config"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/export"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/mapgen"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/simulator"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("replay failed")
	}
}

type options struct {
	configPath string
	env        string
	logLevel   string
	maxTurns   int
	turn       int
	color      bool
	exportPath string
	generate   string
	seed       int64
	pack       bool
	logEvents  bool
}

func parseFlags(args []string) (*options, []string, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "Path to config file")
	fs.StringVar(&o.env, "env", "", "Environment overlay (loads config.<env>.yaml)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	fs.IntVar(&o.maxTurns, "max-turns", -1, "Turn ceiling (-1 to use config default)")
	fs.IntVar(&o.turn, "turn", -1, "Print the board after this turn (-1 for none)")
	fs.BoolVar(&o.color, "color", true, "Color board output")
	fs.StringVar(&o.exportPath, "export", "", "Write the simulated timeline to this parquet file")
	fs.StringVar(&o.generate, "generate", "", "Write a synthetic replay to this path instead of reading one")
	fs.Int64Var(&o.seed, "seed", 0, "Seed for --generate (0 uses the clock)")
	fs.BoolVar(&o.pack, "pack", false, "Wrap the generated replay in a zstd envelope")
	fs.BoolVar(&o.logEvents, "events", false, "Log every game event (overrides logging.events)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs.Args(), nil
}

func run(args []string, out io.Writer) error {
	o, rest, err := parseFlags(args)
	if err != nil {
		return err
	}

	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := config.LoadEnvironmentConfig(o.env); err != nil {
		return err
	}
	cfg := config.Get()

	if o.logLevel == "" {
		o.logLevel = cfg.Logging.Level
	}
	if o.maxTurns == -1 {
		o.maxTurns = cfg.Simulation.MaxTurns
	}
	setupLogging(o.logLevel, cfg.Logging.Format)

	if o.generate != "" {
		return generate(o, cfg, out)
	}

	if len(rest) != 1 {
		return errors.New("usage: replay [flags] <file.gior>")
	}
	path := rest[0]

	rec, err := replay.Load(path)
	if err != nil {
		return err
	}
	log.Info().
		Str("replay_id", rec.ID).
		Int("version", rec.Version).
		Int("players", rec.PlayerCount()).
		Int("moves", len(rec.Moves)).
		Msg("Loaded replay")

	bus := events.NewEventBusWithLogger(log.Logger)
	captures := events.NewRecorder("cli_timeline",
		events.TypeGeneralCaptured,
		events.TypePlayerEliminated,
		events.TypePlayerDisconnected,
		events.TypePlayerNeutralized,
	)
	bus.Subscribe(captures)
	if o.logEvents || cfg.Logging.Events {
		eventLogger := subscribers.NewLoggerSubscriber("event_log", log.Logger, zerolog.InfoLevel)
		eventLogger.SetEventFilter([]string{
			events.TypeGameStarted,
			events.TypeGameEnded,
			events.TypeGeneralCaptured,
			events.TypePlayerEliminated,
			events.TypePlayerDisconnected,
			events.TypePlayerNeutralized,
			events.TypeSimulationOverrun,
		})
		bus.Subscribe(eventLogger)
	}

	start := time.Now()
	sim, err := simulator.New(rec,
		simulator.WithLogger(log.Logger),
		simulator.WithEventBus(bus),
		simulator.WithMaxTurns(o.maxTurns),
		simulator.WithRules(game.RulesFromConfig(cfg)),
	)
	if err != nil {
		return err
	}
	if errors.Is(sim.Err(), simulator.ErrSimulationOverrun) {
		log.Warn().Int("max_turns", o.maxTurns).Msg("Replay did not finish before the turn ceiling")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("max_turn", sim.MaxTurn()).Msg("Simulated replay")

	printSummary(out, sim, captures.Events())

	if o.turn >= 0 {
		snap := sim.SnapshotAt(o.turn)
		fmt.Fprintf(out, "\nBoard after turn %d:\n", snap.Turn)
		fmt.Fprint(out, snap.Render(game.RenderOptions{Color: o.color, Coordinates: cfg.Viewer.ShowCoordinates}))
	}

	if o.exportPath != "" {
		if err := export.WriteTimeline(o.exportPath, sim, cfg.Export.CompressionLevel); err != nil {
			return err
		}
		log.Info().Str("path", o.exportPath).Int("rows", sim.Snapshots()).Msg("Exported timeline")
	}
	return nil
}

func generate(o *options, cfg *config.Config, out io.Writer) error {
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("Generating replay")

	gen := mapgen.NewGenerator(mapgen.MapConfigFromSettings(cfg.Generator), rand.New(rand.NewSource(seed)))
	rec, err := gen.GenerateRecord(fmt.Sprintf("gen-%d", seed), cfg.Generator.Turns, 1)
	if err != nil {
		return err
	}

	buf, err := replay.Encode(rec)
	if err != nil {
		return err
	}
	if o.pack {
		if buf, err = replay.Pack(buf); err != nil {
			return err
		}
	}
	if err := os.WriteFile(o.generate, buf, 0o644); err != nil {
		return fmt.Errorf("write replay: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s (%dx%d, %d players, %d moves, seed %d)\n",
		o.generate, rec.Width, rec.Height, rec.PlayerCount(), len(rec.Moves), seed)
	return nil
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
