// Package lighting converts artist-facing sun angles into light vectors.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// SunDirection returns the unit vector pointing towards the sun. Azimuth is
// measured in degrees around +Y starting at +Z and turning towards +X;
// elevation is degrees above the horizon.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := azimuth * math32.Pi / 180
	el := elevation * math32.Pi / 180

	cosEl := math32.Cos(el)
	return math.Vec3{
		X: cosEl * math32.Sin(az),
		Y: math32.Sin(el),
		Z: cosEl * math32.Cos(az),
	}
}
