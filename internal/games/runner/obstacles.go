package runner

// spawn appends a bush beyond the right edge. The random gap multiplier
// spreads bushes so the distance between them varies.
func (s *Simulation) spawn() {
	o := s.cfg.Obstacles
	gap := o.MinGap + s.rng.Float64()*(o.MaxGap-o.MinGap)
	s.obstacles = append(s.obstacles, Obstacle{
		X: s.cfg.Field.Width + gap*s.cfg.Player.Size*o.GapUnits,
	})
}

// advanceObstacles scrolls every bush left and culls those past CullX.
// Survivors keep their spawn order.
func (s *Simulation) advanceObstacles() {
	kept := s.obstacles[:0]
	for _, ob := range s.obstacles {
		ob.X -= s.difficulty.WalkSpeed
		if ob.X > s.cfg.Obstacles.CullX {
			kept = append(kept, ob)
		}
	}
	s.obstacles = kept
}

// collides reports whether the giraffe is low enough to touch a bush and a
// bush is inside the collision window in front of its fixed slot.
func (s *Simulation) collides() bool {
	o := s.cfg.Obstacles
	altitude := s.cfg.GroundY() - s.player.Y
	if altitude >= o.Size-o.CollisionMargin {
		return false
	}

	window := o.CollisionFraction * s.cfg.Player.Size
	for _, ob := range s.obstacles {
		if ob.X > 0 && ob.X <= window {
			return true
		}
	}
	return false
}
