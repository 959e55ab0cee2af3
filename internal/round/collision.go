package round

import "slices"

// resolve walks the NO dots from last to first so removals do not skip any.
// A smaller dot is eaten and YES grows; an equal or larger one ends the round.
func (r *Round) resolve() {
	for i := len(r.obstacles) - 1; i >= 0; i-- {
		o := r.obstacles[i]
		if !r.cursor.Overlaps(o) {
			continue
		}

		if o.Radius >= r.cursor.Radius {
			r.finish(Lost)
			return
		}

		r.cursor.Radius += o.Radius * r.cfg.GrowthRate
		r.obstacles = slices.Delete(r.obstacles, i, i+1)

		if len(r.obstacles) == 0 {
			r.finish(Won)
			return
		}

		if r.state == Running && len(r.obstacles) < r.cfg.DotCount && r.canReplenish() {
			r.obstacles = append(r.obstacles, r.sampler.Obstacle(r.surface, false))
		}
	}
}

// canReplenish reports whether YES is still no bigger than the largest NO.
// Once it is bigger the gate stays shut until the next reset.
func (r *Round) canReplenish() bool {
	if !r.replenish || len(r.obstacles) == 0 {
		return false
	}
	if r.cursor.Radius > r.largest() {
		r.replenish = false
		return false
	}
	return true
}

func (r *Round) largest() float64 {
	biggest := 0.0
	for _, o := range r.obstacles {
		biggest = max(biggest, o.Radius)
	}
	return biggest
}
