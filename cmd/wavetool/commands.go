package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-ocean/internal/config"
	"github.com/Faultbox/midgard-ocean/internal/engine/debug"
	"github.com/Faultbox/midgard-ocean/pkg/math"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fieldFlags are shared by every command that generates a field.
type fieldFlags struct {
	config *string
	seed   *int64
}

func addFieldFlags(fs *flag.FlagSet) fieldFlags {
	return fieldFlags{
		config: fs.String("config", "", "Path to config file (defaults when empty)"),
		seed:   fs.Int64("seed", 1, "Wave sampling seed"),
	}
}

func (f fieldFlags) field() (*wave.Field, *config.Config, error) {
	cfg, err := config.LoadFile(*f.config)
	if err != nil {
		return nil, nil, err
	}
	rng := rand.New(rand.NewSource(*f.seed))
	return wave.NewField(cfg.Waves.Base, cfg.FieldOptions(), rng), cfg, nil
}

// fieldDump is the serialized form of one generated field.
type fieldDump struct {
	Seed         int64           `json:"seed" yaml:"seed"`
	Base         wave.Parameters `json:"base" yaml:"base"`
	RotationBias float32         `json:"rotation_bias" yaml:"rotation_bias"`
	SteepnessSum float32         `json:"steepness_sum" yaml:"steepness_sum"`
	Geometric    []wave.Wave     `json:"geometric" yaml:"geometric"`
	NormalMap    []wave.Wave     `json:"normal_map" yaml:"normal_map"`
}

func cmdDump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	format := fs.String("format", "json", "Output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, _, err := ff.field()
	if err != nil {
		return err
	}
	d := fieldDump{
		Seed:         *ff.seed,
		Base:         f.BaseParameters(),
		RotationBias: f.BatchRotationBias(),
		SteepnessSum: wave.SteepnessSum(f.GeometricWaves()),
		Geometric:    f.GeometricWaves(),
		NormalMap:    f.NormalMapWaves(),
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", *format)
}

func cmdBake(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bake", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	size := fs.Int("size", 0, "Texture size in texels (config tex_size when 0)")
	t := fs.Float64("time", 0, "Time in seconds")
	output := fs.String("o", "", "Output PNG path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return errors.New("bake: -o is required")
	}

	f, cfg, err := ff.field()
	if err != nil {
		return err
	}
	n := *size
	if n == 0 {
		n = cfg.Render.TexSize
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	img, err := wave.BakeNormalMap(ctx, f.NormalMapFloats(), float32(*t), n, float32(n))
	if err != nil {
		return err
	}
	if err := debug.WritePNG(*output, img); err != nil {
		return err
	}
	fmt.Fprintf(out, "Baked %dx%d normal map from %d waves in %s -> %s\n",
		n, n, len(f.NormalMapWaves()), time.Since(start).Round(time.Millisecond), *output)
	return nil
}

func cmdSample(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	x := fs.Float64("x", 0, "Base X coordinate")
	z := fs.Float64("z", 0, "Base Z coordinate")
	t := fs.Float64("time", 0, "Time in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, _, err := ff.field()
	if err != nil {
		return err
	}
	pos := math.Vec3{X: float32(*x), Z: float32(*z)}
	s := wave.DisplaceBasis(f.GeometricFloats(), float32(*t), pos)

	fmt.Fprintf(out, "Base:      %s\n", fmtVec(pos))
	fmt.Fprintf(out, "Position:  %s\n", fmtVec(s.Position))
	fmt.Fprintf(out, "Bitangent: %s\n", fmtVec(s.Bitangent))
	fmt.Fprintf(out, "Tangent:   %s\n", fmtVec(s.Tangent))
	fmt.Fprintf(out, "Normal:    %s\n", fmtVec(s.Normal))
	return nil
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.5f, %.5f, %.5f)", v.X, v.Y, v.Z)
}
