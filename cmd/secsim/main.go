package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sago/secs/internal/config"
	"github.com/sago/secs/internal/core/ecs"
	"github.com/sago/secs/internal/core/event"
	coresys "github.com/sago/secs/internal/core/system"
	"github.com/sago/secs/internal/data"
	"github.com/sago/secs/internal/scripting"
	"github.com/sago/secs/internal/system"
)

// statsInterval is how many ticks pass between two stats log lines.
const statsInterval = 300

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("SECSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the simulation TOML config")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()), zap.String("sim", cfg.Simulation.Name))

	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	// 3. Scripts and scene
	lua, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return err
	}
	defer lua.Close()

	scene, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	// 4. World
	world := ecs.NewWorld(log)
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	spawned, err := scene.Populate(world.Registry(), rng)
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	log.Info("scene loaded",
		zap.String("path", cfg.Scene.Path),
		zap.Int("prefabs", scene.Count()),
		zap.Int("entities", spawned))

	// 5. Systems
	bus := event.NewBus()
	runner := coresys.NewRunner(log)
	cleanup := system.NewCleanupSystem(world, log)
	render := system.NewRenderPrepSystem(world, bus)
	runner.Register(system.NewSpawnSystem(world, scene, bus, rng, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewMovementSystem(world, lua))
	runner.Register(system.NewLifetimeSystem(world, bus))
	runner.Register(system.NewRegenSystem(world, lua))
	runner.Register(render)
	runner.Register(cleanup)

	// 6. Loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	log.Info("simulation started",
		zap.Duration("tick_rate", cfg.Simulation.TickRate),
		zap.Int("ticks", cfg.Simulation.Ticks))

	stats := func(msg string) {
		log.Info(msg,
			zap.Uint64("tick", runner.Ticks()),
			zap.Int("alive", world.Registry().Alive()),
			zap.Int("drawn", len(render.DrawList())),
			zap.Int("destroyed", cleanup.Destroyed()),
			zap.Int("stale_destroys", cleanup.Stale()),
			zap.Int("group_rebuilds", render.Rebuilds()))
	}

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
			n := runner.Ticks()
			if n%statsInterval == 0 {
				stats("stats")
			}
			if cfg.Simulation.Ticks > 0 && n >= uint64(cfg.Simulation.Ticks) {
				stats("tick limit reached")
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			stats("stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
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
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
