// Package scenario builds the initial body population for a run.
package scenario

import (
	"image/color"
	"math"

	"golang.org/x/exp/rand"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// Generator owns the random source used for placement, jitter and tags.
// Two generators with the same seed produce identical populations.
type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(uint64(seed)))}
}

// Prepare returns cfg adjusted for its layout. The collision layout widens
// the gravity horizon to the bounds diagonal so the two clusters always
// attract each other.
func Prepare(cfg dynamo.Config) dynamo.Config {
	if cfg.Layout == dynamo.LayoutCollision {
		if d := cfg.Diagonal(); cfg.MaxDistance < d {
			cfg.MaxDistance = d
		}
	}
	return cfg
}

// Generate creates cfg.N bodies laid out according to cfg.Layout.
func (g *Generator) Generate(cfg dynamo.Config) ([]dynamo.Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]dynamo.Body, cfg.N)
	switch cfg.Layout {
	case dynamo.LayoutCollision:
		g.clusters(bodies, cfg)
	default:
		g.scatter(bodies, cfg)
	}
	return bodies, nil
}

func (g *Generator) scatter(bodies []dynamo.Body, cfg dynamo.Config) {
	for i := range bodies {
		bodies[i] = dynamo.Body{
			Position: dynamo.Vec2{X: g.rng.Float64() * cfg.Width, Y: g.rng.Float64() * cfg.Height},
			Tag:      g.tag(),
		}
	}
}

// ClusterSizes splits n bodies into the majority and minority groups.
func ClusterSizes(cfg dynamo.Config) (majority, minority int) {
	majority = cfg.ClusterMajority
	if majority <= 0 || majority >= cfg.N {
		majority = (cfg.N + 1) / 2
	}
	return majority, cfg.N - majority
}

func (g *Generator) clusters(bodies []dynamo.Body, cfg dynamo.Config) {
	majority, _ := ClusterSizes(cfg)
	dir := dynamo.Vec2{X: cfg.Width, Y: cfg.Height}.Normalize()
	drift := dir.Scale(cfg.ClusterSpeed)

	g.lattice(bodies[:majority], cfg, dynamo.Vec2{}, 1, drift)
	g.lattice(bodies[majority:], cfg, dynamo.Vec2{X: cfg.Width, Y: cfg.Height}, -1, drift.Neg())
}

// lattice seats bodies on a square grid anchored at corner. sign mirrors the
// grid so the minority grows inward from the far corner.
func (g *Generator) lattice(bodies []dynamo.Body, cfg dynamo.Config, corner dynamo.Vec2, sign float64, vel dynamo.Vec2) {
	if len(bodies) == 0 {
		return
	}
	side := int(math.Ceil(math.Sqrt(float64(len(bodies)))))
	pitch := 2*cfg.Radius + cfg.ClusterPadding

	for k := range bodies {
		col, row := k%side, k/side
		offset := dynamo.Vec2{
			X: float64(col)*pitch + cfg.Radius + g.rng.Float64()*cfg.ClusterPadding,
			Y: float64(row)*pitch + cfg.Radius + g.rng.Float64()*cfg.ClusterPadding,
		}
		bodies[k] = dynamo.Body{
			Position: corner.Add(offset.Scale(sign)),
			Velocity: vel,
			Tag:      g.tag(),
		}
	}
}

func (g *Generator) tag() color.RGBA {
	return color.RGBA{
		R: uint8(g.rng.Intn(256)),
		G: uint8(g.rng.Intn(256)),
		B: uint8(g.rng.Intn(256)),
		A: 255,
	}
}
