package player

import (
	"time"

	"github.com/shapepush/arena/internal/geom"
)

// AvoidTurn is how far the player turns away from a shape it cannot push.
const AvoidTurn = 90.0

// BlockedAfter is how long a braked player may stand still before the run
// counts it as blocked.
const BlockedAfter = 500 * time.Millisecond

// Walls keeps the player on stage.
type Walls interface {
	Clamp(p geom.Vec3) (geom.Vec3, bool, bool)
}

// Player is the kinematic avatar. Input sets a direction; a brake is set while
// the player sidesteps a shape that will not move and cleared once it does.
type Player struct {
	pos    geom.Vec3
	last   geom.Vec3
	dir    geom.Vec3
	speed  float64
	radius float64
	step   time.Duration
	walls  Walls
	braked bool
	still  time.Duration
}

func New(speed, radius float64, step time.Duration, walls Walls) *Player {
	return &Player{speed: speed, radius: radius, step: step, walls: walls}
}

func (p *Player) Position() geom.Vec3  { return p.pos }
func (p *Player) Radius() float64      { return p.radius }
func (p *Player) Braked() bool         { return p.braked }
func (p *Player) Direction() geom.Vec3 { return p.dir }

// SetInput sets the horizontal movement direction; zero stops.
func (p *Player) SetInput(dir geom.Vec3) {
	p.dir = dir.Flat().Normalize()
}

// Reset places the player at pos with no input or brake.
func (p *Player) Reset(pos geom.Vec3) {
	p.pos, p.last = pos, pos
	p.dir = geom.Zero
	p.braked = false
	p.still = 0
}

// Place moves the player without touching brake or history.
func (p *Player) Place(pos geom.Vec3) {
	p.pos = p.clamp(pos)
}

// Avoid brakes and sidesteps 90 degrees from the push direction for one step.
func (p *Player) Avoid(push geom.Vec3) {
	p.braked = true
	side := push.Flat().Normalize().RotateY(AvoidTurn)
	p.pos = p.clamp(p.pos.Add(side.Scale(p.speed * p.step.Seconds())))
}

// ClearAvoid releases the brake.
func (p *Player) ClearAvoid() {
	p.braked = false
	p.still = 0
}

// Update moves by input for dt. While braked, input is ignored and Update
// reports blocked once the player has not moved for BlockedAfter.
func (p *Player) Update(dt time.Duration) (blocked bool) {
	if p.braked {
		if p.pos == p.last {
			p.still += dt
		} else {
			p.still = 0
		}
		p.last = p.pos
		return p.still >= BlockedAfter
	}
	if p.dir != geom.Zero {
		p.pos = p.clamp(p.pos.Add(p.dir.Scale(p.speed * dt.Seconds())))
	}
	p.last = p.pos
	return false
}

func (p *Player) clamp(pos geom.Vec3) geom.Vec3 {
	if p.walls == nil {
		return pos
	}
	out, _, _ := p.walls.Clamp(pos)
	return out
}
