// Package placement decides where NO dots appear and where a YES dot could
// start safely. All randomness comes from an injected Source.
package placement

import (
	"math"

	"bemine/internal/config"
	"bemine/internal/entity"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// Surface is the drawable area in logical units.
type Surface struct {
	Width, Height float64
}

func (s Surface) Valid() bool {
	return s.Width > 0 && s.Height > 0 && !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

func (s Surface) Center() entity.Position {
	return entity.Position{X: s.Width / 2, Y: s.Height / 2}
}

type Sampler struct {
	cfg config.Game
	src Source
}

func NewSampler(cfg config.Game, src Source) *Sampler {
	return &Sampler{cfg: cfg, src: src}
}

// InCenterZone reports whether p falls in the rectangle kept free for overlays.
func (s *Sampler) InCenterZone(surf Surface, p entity.Position) bool {
	c := surf.Center()
	return math.Abs(p.X-c.X) < s.cfg.ExclusionWidth/2 &&
		math.Abs(p.Y-c.Y) < s.cfg.ExclusionHeight/2
}

// Obstacle samples a new NO dot. With excludeCenter it retries positions that
// land in the center zone; once attempts run out the next sample is taken as is.
// Overlap with existing dots is never checked.
func (s *Sampler) Obstacle(surf Surface, excludeCenter bool) entity.Obstacle {
	for attempt := 0; attempt < s.cfg.PlacementAttempts; attempt++ {
		p := s.point(surf)
		if excludeCenter && s.InCenterZone(surf, p) {
			continue
		}
		return s.dot(p)
	}
	return s.dot(s.point(surf))
}

func (s *Sampler) point(surf Surface) entity.Position {
	return entity.Position{
		X: s.src.Float64() * surf.Width,
		Y: s.src.Float64() * surf.Height,
	}
}

func (s *Sampler) dot(p entity.Position) entity.Obstacle {
	radius := s.cfg.MinDotSize + s.src.Float64()*(s.cfg.MaxDotSize-s.cfg.MinDotSize)
	hue := s.cfg.HueMin + s.src.Float64()*s.cfg.HueSpan
	return entity.NewObstacle(p, radius, hue, s.cfg.Saturation, s.cfg.Lightness)
}

// SafeStart finds a point where a fresh YES dot touches no obstacle: random
// samples inside the padded surface first, then a coarse grid scan, then the
// surface center regardless of overlap.
func (s *Sampler) SafeStart(surf Surface, obstacles []entity.Obstacle) entity.Position {
	size := s.cfg.CursorSize
	pad := s.cfg.SafeStartPadding

	for attempt := 0; attempt < s.cfg.PlacementAttempts; attempt++ {
		p := entity.Position{
			X: pad + s.src.Float64()*(surf.Width-2*pad),
			Y: pad + s.src.Float64()*(surf.Height-2*pad),
		}
		if PositionSafe(p, size, obstacles) {
			return p
		}
	}

	for x := pad; x < surf.Width-pad; x += s.cfg.SafeStartGrid {
		for y := pad; y < surf.Height-pad; y += s.cfg.SafeStartGrid {
			p := entity.Position{X: x, Y: y}
			if PositionSafe(p, size, obstacles) {
				return p
			}
		}
	}

	return surf.Center()
}

// PositionSafe reports whether a circle of the given radius at p clears every obstacle.
func PositionSafe(p entity.Position, radius float64, obstacles []entity.Obstacle) bool {
	for _, o := range obstacles {
		if p.Dist(o.Position) < radius+o.Radius {
			return false
		}
	}
	return true
}
