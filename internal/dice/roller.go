package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Every roll is logged at debug level
// with its label, bounds and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that rolls with src and logs each roll to logger.
// A nil logger disables logging.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Between returns a uniform integer in the inclusive range [min, max].
// When max < min the bounds are swapped.
func (r *Roller) Between(label string, min, max int) int {
	if max < min {
		min, max = max, min
	}
	result := min + r.src.Intn(max-min+1)
	r.logger.Debug("dice roll",
		zap.String("label", label),
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("result", result),
	)
	return result
}

// Chance reports whether a percent-in-100 trial succeeds.
// Percent <= 0 never succeeds and percent >= 100 always does.
func (r *Roller) Chance(label string, percent int) bool {
	roll := r.src.Intn(100)
	hit := roll < percent
	r.logger.Debug("dice chance",
		zap.String("label", label),
		zap.Int("percent", percent),
		zap.Int("roll", roll),
		zap.Bool("hit", hit),
	)
	return hit
}

// Pick returns a uniform index in [0, n).
func (r *Roller) Pick(label string, n int) int {
	idx := r.src.Intn(n)
	r.logger.Debug("dice pick",
		zap.String("label", label),
		zap.Int("n", n),
		zap.Int("index", idx),
	)
	return idx
}
