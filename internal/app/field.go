package app

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/internal/config"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

// seedFor returns the configured seed, or one derived from now when it is 0.
func seedFor(configured int64, now func() time.Time) int64 {
	if configured != 0 {
		return configured
	}
	return now().UnixNano()
}

// newField builds the wave field described by cfg.
func newField(cfg *config.Config, seed int64) *wave.Field {
	return wave.NewField(cfg.Waves.Base, cfg.FieldOptions(), rand.New(rand.NewSource(seed)))
}

// logBatch reports a freshly generated batch. A geometric steepness sum above
// one means crests can loop over themselves somewhere on the surface.
func logBatch(log *zap.Logger, f *wave.Field) {
	geo := f.GeometricWaves()
	sum := wave.SteepnessSum(geo)

	log.Info("waves generated",
		zap.Int("geometric", len(geo)),
		zap.Int("normal_map", len(f.NormalMapWaves())),
		zap.Float32("rotation_bias", f.BatchRotationBias()),
		zap.Float32("steepness_sum", sum))

	for i, w := range geo {
		log.Debug("geometric wave",
			zap.Int("index", i),
			zap.Float32("wavelength", w.Wavelength),
			zap.Float32("steepness", w.Steepness),
			zap.Float32("speed", w.Speed),
			zap.Float32("dir_x", w.Direction.X),
			zap.Float32("dir_y", w.Direction.Y))
	}

	if sum > 1 {
		log.Warn("geometric waves may self-intersect",
			zap.Float32("steepness_sum", sum))
	}
}
