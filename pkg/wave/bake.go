package wave

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// DefaultTexSize is the edge length of the baked normal map.
const DefaultTexSize = 256

// BakeNormalMap evaluates NormalMapNormal for every texel of a size×size
// image on the CPU, the same work the bake pass does on the GPU. Texel (x, y)
// samples uv = (x, y) / tiling. Rows are evaluated concurrently; waves is only
// read.
func BakeNormalMap(ctx context.Context, waves []float32, t float32, size int, tiling float32) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("bake normal map: size %d", size)
	}
	if tiling == 0 {
		tiling = float32(size)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < size; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := img.Pix[y*img.Stride : y*img.Stride+size*4]
			for x := 0; x < size; x++ {
				uv := math.Vec2{X: float32(x) / tiling, Y: float32(y) / tiling}
				c := EncodeNormal(NormalMapNormal(waves, t, uv))
				row[x*4+0] = toByte(c[0])
				row[x*4+1] = toByte(c[1])
				row[x*4+2] = toByte(c[2])
				row[x*4+3] = 255
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bake normal map: %w", err)
	}
	return img, nil
}

func toByte(c float32) uint8 {
	return uint8(clamp01(c)*255 + 0.5)
}
