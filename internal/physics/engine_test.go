package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

func at(x, y float64) dynamo.Body {
	return dynamo.Body{Position: dynamo.Vec2{X: x, Y: y}}
}

func moving(x, y, vx, vy float64) dynamo.Body {
	return dynamo.Body{Position: dynamo.Vec2{X: x, Y: y}, Velocity: dynamo.Vec2{X: vx, Y: vy}}
}

func newEngine(cfg dynamo.Config, bodies ...dynamo.Body) *physics.Engine {
	eng, err := physics.NewEngine(cfg, bodies)
	Expect(err).NotTo(HaveOccurred())
	return eng
}

func expectFinite(eng *physics.Engine) {
	for i, b := range eng.Bodies() {
		Expect(b.IsValid()).To(BeTrue(), "body %d is not finite: %+v", i, b)
	}
}

var _ = Describe("Engine", func() {
	var cfg dynamo.Config

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
	})

	Describe("initialization", func() {
		It("generates the configured population", func() {
			cfg.N = 50
			eng, err := physics.Initialize(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Len()).To(Equal(50))
			Expect(eng.Radius()).To(Equal(cfg.Radius))
			Expect(eng.Mass()).To(Equal(cfg.Mass))
		})

		DescribeTable("rejects invalid configuration",
			func(mutate func(*dynamo.Config)) {
				mutate(&cfg)
				_, err := physics.Initialize(cfg)
				Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			},
			Entry("no bodies", func(c *dynamo.Config) { c.N = 0 }),
			Entry("negative bodies", func(c *dynamo.Config) { c.N = -1 }),
			Entry("zero mass", func(c *dynamo.Config) { c.Mass = 0 }),
			Entry("zero radius", func(c *dynamo.Config) { c.Radius = 0 }),
		)

		It("widens the horizon for the collision layout", func() {
			cfg.N = 40
			cfg.Layout = dynamo.LayoutCollision
			cfg.MaxDistance = 10
			eng, err := physics.Initialize(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Config().MaxDistance).To(BeNumerically("~", cfg.Diagonal(), 1e-9))
		})

		It("rejects bodies that are already invalid", func() {
			_, err := physics.NewEngine(cfg, []dynamo.Body{at(math.NaN(), 0)})
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})

		It("copies the caller's bodies", func() {
			bodies := []dynamo.Body{at(0, 0), at(500, 0)}
			eng := newEngine(cfg, bodies...)
			bodies[0].Position.X = 99
			Expect(eng.Body(0).Position.X).To(Equal(0.0))
		})
	})

	Describe("gravity accumulation", func() {
		It("pulls two bodies 100 apart toward each other with G·m/10000", func() {
			eng := newEngine(cfg, at(0, 0), at(100, 0))
			Expect(eng.Accumulate()).To(Equal(1))

			a0, a1 := eng.Body(0).Acceleration, eng.Body(1).Acceleration
			want := cfg.G * cfg.Mass / 10000
			Expect(a0.X).To(BeNumerically("~", want, want*1e-12))
			Expect(a0.Y).To(Equal(0.0))
			Expect(a1.X).To(BeNumerically("~", -want, want*1e-12))
			Expect(a1.Y).To(Equal(0.0))
		})

		DescribeTable("contributions are exact negations",
			func(x, y float64) {
				eng := newEngine(cfg, at(17, -4), at(17+x, -4+y))
				eng.Accumulate()
				Expect(eng.Body(0).Acceleration).To(Equal(eng.Body(1).Acceleration.Neg()))
			},
			Entry("inside window", 30.0, 40.0),
			Entry("diagonal", -700.0, 700.0),
			Entry("at the horizon", 0.0, 2000.0),
			Entry("beyond the horizon", 2500.0, 0.0),
			Entry("touching", 6.0, 0.0),
			Entry("overlapping", 1.0, 1.0),
			Entry("coincident", 0.0, 0.0),
		)

		It("sums to zero over a population", func() {
			cfg.N = 60
			cfg.Width, cfg.Height = 400, 400
			eng, err := physics.Initialize(cfg)
			Expect(err).NotTo(HaveOccurred())
			eng.Accumulate()

			var sum dynamo.Vec2
			for _, b := range eng.Bodies() {
				sum = sum.Add(b.Acceleration)
			}
			Expect(sum.Len()).To(BeNumerically("<", 1e-15))
		})

		It("skips pairs beyond the gravity horizon", func() {
			eng := newEngine(cfg, at(0, 0), at(cfg.MaxDistance+1, 0))
			Expect(eng.Accumulate()).To(Equal(0))
			Expect(eng.Body(0).Acceleration).To(Equal(dynamo.Vec2{}))
			Expect(eng.Body(1).Acceleration).To(Equal(dynamo.Vec2{}))
		})

		It("includes pairs exactly at the horizon", func() {
			eng := newEngine(cfg, at(0, 0), at(cfg.MaxDistance, 0))
			Expect(eng.Accumulate()).To(Equal(1))
			Expect(eng.Body(0).Acceleration.X).To(BeNumerically(">", 0))
		})

		DescribeTable("leaves close pairs to collision handling",
			func(dist float64) {
				eng := newEngine(cfg, at(0, 0), at(dist, 0))
				Expect(eng.Accumulate()).To(Equal(0))
				Expect(eng.Body(0).Acceleration).To(Equal(dynamo.Vec2{}))
				Expect(eng.Body(1).Acceleration).To(Equal(dynamo.Vec2{}))
			},
			Entry("exactly min distance", 6.0),
			Entry("inside min distance", 4.5),
			Entry("coincident", 0.0),
		)

		It("applies softening to the denominator", func() {
			cfg.Softening = 10
			eng := newEngine(cfg, at(0, 0), at(100, 0))
			eng.Accumulate()
			want := cfg.G * cfg.Mass / (10000 + 100)
			Expect(eng.Body(0).Acceleration.X).To(BeNumerically("~", want, want*1e-12))
		})
	})

	Describe("integration", func() {
		It("updates velocity before position and scales both by dt", func() {
			cfg.G = 1
			eng := newEngine(cfg, at(0, 0), at(100, 0))
			eng.Accumulate()
			a := eng.Body(0).Acceleration.X

			eng.Integrate(2)
			b := eng.Body(0)
			Expect(b.Velocity.X).To(BeNumerically("~", a*2, 1e-15))
			Expect(b.Position.X).To(BeNumerically("~", a*4, 1e-15))
			Expect(b.Acceleration).To(Equal(dynamo.Vec2{}))
		})

		It("reports kinetic energy", func() {
			eng := newEngine(cfg, moving(0, 0, 1, 0), moving(500, 500, 0, -2))
			ke := eng.Integrate(1)
			Expect(ke).To(BeNumerically("~", 0.5*cfg.Mass*(1+4), 1e-12))
			Expect(eng.KineticEnergy()).To(BeNumerically("~", ke, 1e-12))
		})
	})

	Describe("collision resolution", func() {
		BeforeEach(func() {
			cfg.Elasticity = 1
			cfg.OverlapCorrection = 1
		})

		It("separates an overlapping pair to exactly two radii", func() {
			eng := newEngine(cfg, at(0, 0), at(4, 0))
			contacts, resolved, degenerate := eng.ResolveCollisions()
			Expect(contacts).To(Equal(1))
			Expect(resolved).To(Equal(1))
			Expect(degenerate).To(Equal(0))

			d := eng.Body(0).Position.DistanceTo(eng.Body(1).Position)
			Expect(d).To(BeNumerically("~", 2*cfg.Radius, 1e-9))
		})

		It("moves each body half the overlap", func() {
			eng := newEngine(cfg, at(0, 0), at(0, 4))
			eng.ResolveCollisions()
			Expect(eng.Body(0).Position.Y).To(BeNumerically("~", -1, 1e-12))
			Expect(eng.Body(1).Position.Y).To(BeNumerically("~", 5, 1e-12))
		})

		It("exchanges the normal velocity and keeps the tangential one when elastic", func() {
			eng := newEngine(cfg, moving(0, 0, 1, 0.5), moving(4, 0, -1, -0.25))
			eng.ResolveCollisions()

			v0, v1 := eng.Body(0).Velocity, eng.Body(1).Velocity
			Expect(v0.X).To(BeNumerically("~", -1, 1e-12))
			Expect(v1.X).To(BeNumerically("~", 1, 1e-12))
			Expect(v0.Y).To(Equal(0.5))
			Expect(v1.Y).To(Equal(-0.25))
		})

		It("equalizes the normal velocity when perfectly inelastic", func() {
			cfg.Elasticity = 0
			eng := newEngine(cfg, moving(0, 0, 2, 0), moving(5, 0, 0, 0))
			eng.ResolveCollisions()
			Expect(eng.Body(0).Velocity.X).To(BeNumerically("~", 1, 1e-12))
			Expect(eng.Body(1).Velocity.X).To(BeNumerically("~", 1, 1e-12))
		})

		It("corrects positions but not velocities of separating bodies", func() {
			eng := newEngine(cfg, moving(0, 0, -1, 0), moving(4, 0, 1, 0))
			eng.ResolveCollisions()
			Expect(eng.Body(0).Velocity).To(Equal(dynamo.Vec2{X: -1}))
			Expect(eng.Body(1).Velocity).To(Equal(dynamo.Vec2{X: 1}))
			d := eng.Body(0).Position.DistanceTo(eng.Body(1).Position)
			Expect(d).To(BeNumerically("~", 6, 1e-9))
		})

		It("damps the correction by the overlap factor", func() {
			cfg.OverlapCorrection = 0.5
			cfg.CollisionIterations = 1
			eng := newEngine(cfg, at(0, 0), at(4, 0))
			eng.ResolveCollisions()
			d := eng.Body(0).Position.DistanceTo(eng.Body(1).Position)
			Expect(d).To(BeNumerically("~", 5, 1e-12))
		})

		It("conserves momentum", func() {
			cfg.Elasticity = 0.5
			eng := newEngine(cfg, moving(0, 0, 3, 1), moving(4, 1, -2, 0), moving(2, 5, 0, -1))
			before := eng.Momentum()
			eng.ResolveCollisions()
			after := eng.Momentum()
			Expect(after.X).To(BeNumerically("~", before.X, 1e-9))
			Expect(after.Y).To(BeNumerically("~", before.Y, 1e-9))
		})

		It("settles chains better with more iterations", func() {
			maxOverlap := func(eng *physics.Engine) float64 {
				worst := 0.0
				bodies := eng.Bodies()
				for i := range bodies {
					for j := i + 1; j < len(bodies); j++ {
						o := 2*cfg.Radius - bodies[i].Position.DistanceTo(bodies[j].Position)
						worst = math.Max(worst, o)
					}
				}
				return worst
			}
			chain := []dynamo.Body{at(0, 0), at(4, 0), at(8, 0), at(12, 0)}

			cfg.CollisionIterations = 1
			single := newEngine(cfg, chain...)
			contacts, _, _ := single.ResolveCollisions()
			Expect(contacts).To(Equal(3))

			cfg.CollisionIterations = 5
			many := newEngine(cfg, chain...)
			many.ResolveCollisions()

			Expect(maxOverlap(many)).To(BeNumerically("<", maxOverlap(single)))
		})

		It("does nothing with zero iterations", func() {
			cfg.CollisionIterations = 0
			eng := newEngine(cfg, at(0, 0), at(1, 0))
			contacts, resolved, _ := eng.ResolveCollisions()
			Expect(contacts).To(Equal(0))
			Expect(resolved).To(Equal(0))
			Expect(eng.Body(1).Position.X).To(Equal(1.0))
		})
	})

	Describe("degenerate geometry", func() {
		It("keeps coincident bodies finite and pushes them apart", func() {
			eng := newEngine(cfg, moving(50, 50, 0.1, 0), moving(50, 50, 0.1, 0))
			diag := eng.Step(cfg.Dt)

			expectFinite(eng)
			Expect(diag.Degenerate).To(Equal(1))
			d := eng.Body(0).Position.DistanceTo(eng.Body(1).Position)
			Expect(d).To(BeNumerically("~", 2*cfg.Radius, 1e-9))
			Expect(eng.Validate()).To(Succeed())
		})

		It("reports the elapsed time of the steps actually taken", func() {
			eng := newEngine(cfg, moving(0, 0, math.MaxFloat64, 0))
			eng.Step(0.25)
			Expect(eng.Validate()).To(Succeed())
			eng.Step(2)
			Expect(eng.Elapsed()).To(Equal(2.25))

			err := eng.Validate()
			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
			Expect(simErr.Step).To(Equal(2))
			Expect(simErr.Time).To(Equal(2.25))
			Expect(simErr.Body).To(Equal(0))
		})

		It("stays finite over many steps with stacked bodies", func() {
			bodies := make([]dynamo.Body, 8)
			for i := range bodies {
				bodies[i] = at(10, 10)
			}
			eng := newEngine(cfg, bodies...)
			for i := 0; i < 50; i++ {
				eng.Step(cfg.Dt)
			}
			expectFinite(eng)
		})
	})

	Describe("stepping", func() {
		It("leaves distant resting bodies untouched", func() {
			eng := newEngine(cfg, at(0, 0), at(cfg.MaxDistance+500, 0))
			for i := 0; i < 100; i++ {
				d := eng.Step(cfg.Dt)
				Expect(d.KineticEnergy).To(Equal(0.0))
				Expect(d.GravityPairs).To(Equal(0))
			}
			Expect(eng.Body(0).Position).To(Equal(dynamo.Vec2{}))
			Expect(eng.Body(1).Position).To(Equal(dynamo.Vec2{X: cfg.MaxDistance + 500}))
			Expect(eng.Steps()).To(Equal(100))
		})

		It("clears accelerations at the end of every step", func() {
			cfg.N = 40
			cfg.Width, cfg.Height = 300, 300
			eng, err := physics.Initialize(cfg)
			Expect(err).NotTo(HaveOccurred())
			eng.Step(cfg.Dt)
			for _, b := range eng.Bodies() {
				Expect(b.Acceleration).To(Equal(dynamo.Vec2{}))
			}
		})

		It("is deterministic for a fixed seed", func() {
			cfg.N = 150
			cfg.Seed = 1234
			cfg.Layout = dynamo.LayoutCollision
			cfg.ClusterMajority = 100
			cfg.ClusterSpeed = 5

			run := func() []dynamo.Body {
				eng, err := physics.Initialize(cfg)
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 30; i++ {
					eng.Step(cfg.Dt)
				}
				return eng.Bodies()
			}
			Expect(run()).To(Equal(run()))
		})

		It("does not check the pause flag itself", func() {
			eng := newEngine(cfg, moving(0, 0, 1, 0))
			Expect(eng.IsPaused()).To(BeFalse())
			eng.SetPaused(true)
			Expect(eng.IsPaused()).To(BeTrue())

			eng.Step(1)
			Expect(eng.Body(0).Position.X).To(Equal(1.0))
			eng.SetPaused(false)
			Expect(eng.IsPaused()).To(BeFalse())
		})

		It("conserves momentum across full steps", func() {
			cfg.N = 80
			cfg.Width, cfg.Height = 150, 150
			cfg.G = 1e-2
			eng, err := physics.Initialize(cfg)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 20; i++ {
				eng.Step(1)
			}
			p := eng.Momentum()
			Expect(p.Len()).To(BeNumerically("<", 1e-9))
			expectFinite(eng)
		})
	})

	Describe("energy diagnostics", func() {
		It("computes the potential of a pair inside the window", func() {
			eng := newEngine(cfg, at(0, 0), at(100, 0))
			want := -cfg.G * cfg.Mass * cfg.Mass / 100
			Expect(eng.PotentialEnergy()).To(BeNumerically("~", want, math.Abs(want)*1e-12))
		})

		It("computes angular momentum and centre of mass", func() {
			eng := newEngine(cfg, moving(1, 0, 0, 1), moving(-1, 0, 0, -1))
			Expect(eng.AngularMomentum()).To(BeNumerically("~", 2*cfg.Mass, 1e-12))
			Expect(eng.CenterOfMass()).To(Equal(dynamo.Vec2{}))
		})
	})
})
