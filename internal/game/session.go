// Package game owns one play session: the stage, its systems, and the run and
// level lifecycle around them.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/arena"
	"github.com/shapepush/arena/internal/config"
	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/core/event"
	coresys "github.com/shapepush/arena/internal/core/system"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/physics"
	"github.com/shapepush/arena/internal/player"
	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/recycle"
	"github.com/shapepush/arena/internal/report"
	"github.com/shapepush/arena/internal/scoring"
	"github.com/shapepush/arena/internal/shape"
	"github.com/shapepush/arena/internal/spawn"
	"github.com/shapepush/arena/internal/system"
	"github.com/shapepush/arena/internal/view"
)

// PlayerRadius is the player's contact radius in world units.
const PlayerRadius = 0.5

// ErrRespawn is returned by Frame after a replacement shape could not be spawned.
var ErrRespawn = errors.New("respawn failed")

// Options wires a session. Game and Stage come from config; the rest are
// collaborators built by the caller. Nil Store, Beeper and Renderer disable
// their concern.
type Options struct {
	Game       config.GameConfig
	Stage      config.StageConfig
	Capacities []pool.Config
	Palette    []shape.Tint
	Rule       scoring.Rule
	Store      report.Store
	Beeper     scoring.Beeper
	Renderer   view.Renderer
	Steering   system.Steering
	Rand       spawn.Random
	Now        func() time.Time
	NewRunID   func() string
	Log        *zap.Logger
}

// Session is the explicit context every system shares. It is driven from a
// single goroutine through Frame.
type Session struct {
	opts   Options
	log    *zap.Logger
	ctx    context.Context
	world  *ecs.World
	bus    *event.Bus
	runner *coresys.Runner
	bounds arena.Bounds

	pools   *pool.Set
	deco    *spawn.Decorator
	coord   *recycle.Coordinator
	scorer  *scoring.Scorer
	player  *player.Player
	physics *system.PhysicsSystem

	runID      string
	level      int
	levelClock time.Duration
	runClock   time.Duration
	err        error
}

func New(opts Options) (*Session, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewRunID == nil {
		opts.NewRunID = func() string { return uuid.NewString() }
	}
	if opts.Rand == nil {
		return nil, errors.New("game: random source required")
	}
	if opts.Game.StartLevel < 1 {
		opts.Game.StartLevel = 1
	}

	s := &Session{
		opts:  opts,
		log:   opts.Log,
		ctx:   context.Background(),
		world: ecs.NewWorld(),
		bus:   event.NewBus(),
		level: opts.Game.StartLevel,
	}
	s.bounds = arena.Measure(
		geom.V(opts.Stage.ExtentX, opts.Stage.ExtentY, opts.Stage.ExtentZ),
		geom.V(opts.Stage.ScaleX, opts.Stage.ScaleY, opts.Stage.ScaleZ),
	)

	pools, err := pool.NewSet(s.world, opts.Capacities)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	s.pools = pools
	s.deco = spawn.NewDecorator(s.bounds, opts.Palette, opts.Rand)
	s.coord = recycle.NewCoordinator(pools, s.deco, s.bus, s, opts.Game.Dissolve, opts.Log.Named("recycle"))
	s.scorer = scoring.NewScorer(opts.Rule, scoring.Options{
		MaxLevel:    opts.Game.MaxLevel,
		LevelStep:   opts.Game.LevelStep,
		FinishTotal: opts.Game.FinishTotal,
	}, s.bus, opts.Beeper, opts.Log.Named("score"))
	s.player = player.New(opts.Game.PlayerSpeed, PlayerRadius, opts.Game.PhysicsStep, s.bounds)

	env := physics.Env{
		Gravity:  geom.Vec3{Y: -opts.Game.Gravity},
		Friction: opts.Game.Friction,
		Walls:    s.bounds,
	}
	s.physics = system.NewPhysicsSystem(pools, s.player, env, s.coord, s.bus, s, opts.Log.Named("physics"))

	s.runner = coresys.NewRunner(opts.Game.PhysicsStep)
	s.runner.Register(s.physics)
	s.runner.Register(system.NewEventDispatchSystem(s.bus))
	// recycles completed this frame are queued ahead of a blocked-run finish
	s.runner.Register(system.NewRecycleSystem(s.coord))
	s.runner.Register(system.NewPlayerSystem(s.player, s.bus, opts.Steering, s.RunID))
	if opts.Renderer != nil {
		s.runner.Register(system.NewRenderSystem(opts.Renderer, s.Scene))
	}
	s.runner.Register(system.NewCleanupSystem(s.world, opts.Log.Named("cleanup")))

	s.subscribe()
	return s, nil
}

func (s *Session) subscribe() {
	event.Subscribe(s.bus, func(ev event.Collected) {
		if ev.RunID != s.runID {
			s.log.Debug("collection from a finished run dropped", zap.String("run", ev.RunID))
			return
		}
		s.scorer.Collect(ev.Kind, ev.Mass, ev.Level, s.runClock)
	})
	event.Subscribe(s.bus, func(ev event.PushStill) { s.player.Avoid(ev.Push) })
	event.Subscribe(s.bus, func(event.PushMoved) { s.player.ClearAvoid() })
	event.Subscribe(s.bus, func(event.PushEnded) { s.player.ClearAvoid() })
	event.Subscribe(s.bus, func(ev event.LevelUp) {
		// several collections in one frame can each announce the same level
		if ev.Next != s.level+1 {
			return
		}
		s.log.Info("level up", zap.Int("level", ev.Next), zap.Float64("total", s.scorer.Total()))
		s.level = ev.Next
		s.scorer.StartLevel()
		if err := s.rebuild(); err != nil {
			s.fail(err)
		}
	})
	event.Subscribe(s.bus, func(ev event.RunFinished) {
		if ev.RunID != s.runID {
			return
		}
		s.finish(ev.Reason)
	})
	event.Subscribe(s.bus, func(ev event.SpawnFailed) {
		s.fail(fmt.Errorf("%w: %s: %w", ErrRespawn, ev.Kind, ev.Err))
	})
}

// Start begins the first run. ctx bounds report saves for the session's life.
func (s *Session) Start(ctx context.Context) error {
	s.ctx = ctx
	s.runID = s.opts.NewRunID()
	s.scorer.Reset(s.runID)
	s.log.Info("run started", zap.String("run", s.runID), zap.Int("level", s.level))
	return s.rebuild()
}

// rebuild empties the stage and repopulates it for the current level.
func (s *Session) rebuild() error {
	s.coord.Clear()
	for _, e := range s.pools.ActiveEntities() {
		s.physics.Contacts().Forget(e.ID)
	}
	s.pools.RecycleAll()
	s.levelClock = 0
	s.player.Reset(geom.Zero)

	entities, err := s.pools.AllAsActive()
	if err != nil {
		return fmt.Errorf("populate level %d: %w", s.level, err)
	}
	for _, e := range entities {
		s.deco.Dress(e, s.levelClock, s.level)
	}
	s.log.Debug("stage populated", zap.Int("level", s.level), zap.Int("shapes", len(entities)))
	return nil
}

// finish stores the run's report and starts a fresh run at the start level.
func (s *Session) finish(reason string) {
	rep := report.Build(s.runID, reason, s.runClock, s.opts.Now(), s.scorer.Records())
	s.log.Info("run finished",
		zap.String("run", s.runID),
		zap.String("reason", reason),
		zap.Int("total", rep.TotalScore),
		zap.Int("pushed", rep.AmountOfPushedObjects),
	)
	if s.opts.Store != nil {
		if err := s.opts.Store.Save(s.ctx, rep); err != nil {
			s.log.Error("save report failed", zap.String("run", s.runID), zap.Error(err))
		}
	}

	s.runID = s.opts.NewRunID()
	s.scorer.Reset(s.runID)
	s.runClock = 0
	s.level = s.opts.Game.StartLevel
	if err := s.rebuild(); err != nil {
		s.fail(err)
	}
}

func (s *Session) fail(err error) {
	if s.err == nil {
		s.log.Error("session halted", zap.Error(err))
		s.err = err
	}
}

// Frame advances the session by one variable-length frame.
func (s *Session) Frame(dt time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.levelClock += dt
	s.runClock += dt
	s.runner.Frame(dt)
	return s.err
}

// Close returns every shape to the world's destroy queue and flushes it.
func (s *Session) Close() {
	s.coord.Clear()
	s.pools.Teardown(s.world)
	s.runner.TickPhase(coresys.PhaseCleanup, 0)
}

func (s *Session) Level() int                        { return s.level }
func (s *Session) Elapsed() time.Duration            { return s.levelClock }
func (s *Session) RunID() string                     { return s.runID }
func (s *Session) Bounds() arena.Bounds              { return s.bounds }
func (s *Session) Pools() *pool.Set                  { return s.pools }
func (s *Session) Scorer() *scoring.Scorer           { return s.scorer }
func (s *Session) Player() *player.Player            { return s.player }
func (s *Session) Bus() *event.Bus                   { return s.bus }
func (s *Session) World() *ecs.World                 { return s.world }
func (s *Session) Coordinator() *recycle.Coordinator { return s.coord }

// Targets lists the positions of every shape on stage.
func (s *Session) Targets() []geom.Vec3 {
	active := s.pools.ActiveEntities()
	out := make([]geom.Vec3, 0, len(active))
	for _, e := range active {
		out = append(out, e.Position())
	}
	return out
}

// Scene snapshots the stage for rendering.
func (s *Session) Scene() view.Scene {
	active := s.pools.ActiveEntities()
	sprites := make([]view.Sprite, 0, len(active))
	for _, e := range active {
		sprites = append(sprites, view.Sprite{
			Kind:     e.Kind,
			Position: e.Position(),
			Radius:   e.Radius(),
			Tint:     e.Tint,
			Opacity:  e.Material.Opacity,
			Warning:  e.Push.Warning(),
			Fading:   s.coord.Dissolving(e),
		})
	}
	return view.Scene{
		Bounds:       s.bounds,
		Player:       s.player.Position(),
		PlayerRadius: s.player.Radius(),
		Braked:       s.player.Braked(),
		Sprites:      sprites,
		Level:        s.level,
		LevelScore:   s.scorer.RoundedLevel(),
		Total:        s.scorer.RoundedTotal(),
		RunID:        s.runID,
	}
}
