package scoring

import (
	"math"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/shape"
)

// CreditPerMass is the score a collected shape is worth per unit of mass.
const CreditPerMass = 20.0

// CollectContext is what a rule sees when a shape is collected.
type CollectContext struct {
	Kind      shape.Kind
	Mass      float64
	Level     int
	First     bool // no earlier record this run
	LastKind  shape.Kind
	LastValue float64
}

// Rule prices a collection.
type Rule interface {
	CollectValue(ctx CollectContext) (float64, error)
}

// Streak is the built-in rule: every shape earns 20*mass unless it repeats
// the previous kind, in which case the previous credit is taken back along
// with this shape's worth.
type Streak struct{}

func (Streak) CollectValue(ctx CollectContext) (float64, error) {
	gain := CreditPerMass * ctx.Mass
	if ctx.First || ctx.Kind != ctx.LastKind {
		return gain, nil
	}
	return -math.Abs(ctx.LastValue) - gain, nil
}

// Fallback tries Primary and falls back to Streak when it fails.
type Fallback struct {
	Primary Rule
	Log     *zap.Logger
}

func (f Fallback) CollectValue(ctx CollectContext) (float64, error) {
	if f.Primary != nil {
		v, err := f.Primary.CollectValue(ctx)
		if err == nil {
			return v, nil
		}
		f.Log.Warn("collect rule failed, using built-in streak rule", zap.Error(err))
	}
	return Streak{}.CollectValue(ctx)
}
