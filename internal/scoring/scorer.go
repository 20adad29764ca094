package scoring

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/core/event"
	"github.com/shapepush/arena/internal/shape"
)

// Record is one booked collection.
type Record struct {
	Kind  shape.Kind
	Value float64
	Level int
	At    time.Duration // run time of the collection
}

// Beeper plays feedback tones.
type Beeper interface {
	Credits()
	Damage()
}

// Options tunes level and run thresholds.
type Options struct {
	MaxLevel    int
	LevelStep   float64
	FinishTotal float64
}

// Scorer books collections, tracks level and run totals, and announces level
// ups and finished runs on the bus.
type Scorer struct {
	rule Rule
	opts Options
	bus  *event.Bus
	beep Beeper
	log  *zap.Logger

	run        string
	records    []Record
	levelScore float64
	total      float64
	done       bool
}

func NewScorer(rule Rule, opts Options, bus *event.Bus, beep Beeper, log *zap.Logger) *Scorer {
	if rule == nil {
		rule = Streak{}
	}
	if opts.LevelStep <= 0 {
		opts.LevelStep = 100
	}
	return &Scorer{rule: rule, opts: opts, bus: bus, beep: beep, log: log}
}

func (s *Scorer) Records() []Record   { return s.records }
func (s *Scorer) LevelScore() float64 { return s.levelScore }
func (s *Scorer) Total() float64      { return s.total }
func (s *Scorer) RoundedLevel() int   { return roundInt(s.levelScore) }
func (s *Scorer) RoundedTotal() int   { return roundInt(s.total) }
func (s *Scorer) Finished() bool      { return s.done }
func (s *Scorer) Run() string         { return s.run }

// Collect books one shape. at is the run time of the collection.
func (s *Scorer) Collect(kind shape.Kind, mass float64, level int, at time.Duration) Record {
	ctx := CollectContext{Kind: kind, Mass: mass, Level: level, First: len(s.records) == 0}
	if !ctx.First {
		last := s.records[len(s.records)-1]
		ctx.LastKind, ctx.LastValue = last.Kind, last.Value
	}
	delta, err := s.rule.CollectValue(ctx)
	if err != nil {
		s.log.Warn("collect rule error", zap.Error(err))
		delta, _ = Streak{}.CollectValue(ctx)
	}

	penalty := delta < 0
	if s.beep != nil {
		if penalty {
			s.beep.Damage()
		} else {
			s.beep.Credits()
		}
	}

	s.levelScore += delta
	s.total += delta
	rec := Record{Kind: kind, Value: delta, Level: level, At: at}
	s.records = append(s.records, rec)

	event.Emit(s.bus, event.Scored{
		Kind:       kind,
		Delta:      delta,
		LevelScore: s.levelScore,
		Total:      s.total,
		Penalty:    penalty,
	})

	if !s.done && float64(roundInt(s.total)) >= s.opts.FinishTotal {
		s.done = true
		event.Emit(s.bus, event.RunFinished{RunID: s.run, Reason: "score"})
		return rec
	}
	if float64(roundInt(s.levelScore)) >= s.opts.LevelStep && level < s.opts.MaxLevel {
		event.Emit(s.bus, event.LevelUp{Next: level + 1})
	}
	return rec
}

// StartLevel clears the per-level score.
func (s *Scorer) StartLevel() {
	s.levelScore = 0
}

// Reset clears the run and starts booking for run.
func (s *Scorer) Reset(run string) {
	s.run = run
	s.records = nil
	s.levelScore = 0
	s.total = 0
	s.done = false
}

// roundInt rounds half to even like the engine's RoundToInt.
func roundInt(f float64) int {
	return int(math.RoundToEven(f))
}
