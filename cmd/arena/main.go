package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shapepush/arena/internal/audio"
	"github.com/shapepush/arena/internal/config"
	"github.com/shapepush/arena/internal/data"
	"github.com/shapepush/arena/internal/game"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/persist"
	"github.com/shapepush/arena/internal/player"
	"github.com/shapepush/arena/internal/report"
	"github.com/shapepush/arena/internal/scoring"
	"github.com/shapepush/arena/internal/scripting"
	"github.com/shapepush/arena/internal/view"
	"github.com/shapepush/arena/internal/view/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	headless := flag.Bool("headless", false, "run without a terminal, steered by the autopilot")
	duration := flag.Duration("duration", 0, "stop after this long (0 runs until interrupted)")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/arena.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *headless {
		cfg.Terminal.Enabled = false
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging, cfg.Terminal.Enabled)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Static data
	capacities, err := data.LoadCapacityTable(cfg.Data.Capacities)
	if err != nil {
		return fmt.Errorf("load capacities: %w", err)
	}
	palette, err := data.LoadPalette(cfg.Data.Palette)
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}
	log.Info("data loaded",
		zap.Int("kinds", capacities.Count()),
		zap.Int("shapes", capacities.Total()),
		zap.Int("tints", len(palette)),
	)

	// 4. Scoring rule, Lua first when a script provides it
	var rule scoring.Rule = scoring.Streak{}
	lua, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		log.Warn("lua scripting unavailable, using built-in scoring", zap.Error(err))
	} else {
		defer lua.Close()
		if lua.Has("collect_value") {
			rule = scoring.Fallback{Primary: lua, Log: log}
		}
	}

	// 5. Report stores
	stores := report.MultiStore{report.NewFileStore(cfg.Report.Dir)}
	if cfg.Database.Enabled {
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		version, err := persist.RunMigrations(dbCtx, db.Pool, log)
		cancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied", zap.Int64("version", version))
		stores = append(stores, persist.NewReportRepo(db))
	}

	// 6. Audio
	var beeper scoring.Beeper = audio.Nop{}
	if cfg.Audio.Enabled {
		b := audio.NewBeeper(cfg.Audio.Volume)
		if err := b.Init(); err != nil {
			log.Warn("audio init failed, running silent", zap.Error(err))
		} else {
			defer b.Close()
			beeper = b
		}
	}

	// 7. Session and view
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opts := game.Options{
		Game:       cfg.Game,
		Stage:      cfg.Stage,
		Capacities: capacities.Configs(),
		Palette:    palette,
		Rule:       rule,
		Store:      stores,
		Beeper:     beeper,
		Rand:       rand.New(rand.NewPCG(seed, seed>>1|1)),
		Log:        log,
	}

	var session *game.Session
	var quit <-chan tui.Command
	if cfg.Terminal.Enabled {
		term, err := tui.Open(cfg.Terminal.CellWorld)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer term.Close()
		go term.Listen()
		quit = term.Commands()
		opts.Renderer = term
		opts.Steering = term.Direction
	} else {
		opts.Renderer = &logRenderer{log: log, every: int(time.Second / cfg.Game.FrameRate)}
		opts.Steering = func() geom.Vec3 {
			return player.Autopilot{}.Steer(session.Player(), session.Targets())
		}
	}

	session, err = game.New(opts)
	if err != nil {
		return err
	}
	defer session.Close()
	if err := session.Start(ctx); err != nil {
		return err
	}

	// 8. Game loop
	ticker := time.NewTicker(cfg.Game.FrameRate)
	defer ticker.Stop()
	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}
	log.Info("arena running",
		zap.Duration("frame", cfg.Game.FrameRate),
		zap.Duration("physics_step", cfg.Game.PhysicsStep),
		zap.Bool("terminal", cfg.Terminal.Enabled),
	)

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := session.Frame(dt); err != nil {
				return err
			}
		case <-quit:
			log.Info("quit requested")
			return nil
		case <-deadline:
			log.Info("duration elapsed", zap.Int("total", session.Scorer().RoundedTotal()))
			return nil
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		}
	}
}

// logRenderer reports progress in headless runs, once every n frames.
type logRenderer struct {
	log    *zap.Logger
	every  int
	frames int
}

func (r *logRenderer) Render(s view.Scene) {
	r.frames++
	if r.frames < r.every {
		return
	}
	r.frames = 0
	r.log.Info("arena",
		zap.String("run", s.RunID),
		zap.Int("level", s.Level),
		zap.Int("level_score", s.LevelScore),
		zap.Int("total", s.Total),
		zap.Int("shapes", len(s.Sprites)),
	)
}

func newLogger(cfg config.LoggingConfig, terminal bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	// the terminal view owns stdout while it runs
	if terminal && cfg.File != "" {
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
