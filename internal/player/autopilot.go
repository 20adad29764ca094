package player

import "github.com/shapepush/arena/internal/geom"

// Autopilot steers toward the nearest target. Used by headless runs.
type Autopilot struct{}

// Steer returns the input direction from p toward the closest of targets.
func (Autopilot) Steer(p *Player, targets []geom.Vec3) geom.Vec3 {
	best, bestDist := geom.Zero, -1.0
	for _, t := range targets {
		d := p.pos.FlatDist(t)
		if bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	if bestDist < 0 {
		return geom.Zero
	}
	return best.Sub(p.pos).Flat().Normalize()
}
