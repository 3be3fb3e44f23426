package object

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/physics"
)

// Celebration timing: one burst right away, then this many more.
const (
	celebrateFollowUps = 5
	celebrateInterval  = 200.0 // ms
)

// Counts is a snapshot of live particles.
type Counts struct {
	Rockets int
	Stars   int
	Sparks  int
	Flashes int
	Pending int // scheduled bursts not yet fired
}

// Total sums every live entity.
func (c Counts) Total() int {
	return c.Rockets + c.Stars + c.Sparks + c.Flashes + c.Pending
}

type pendingBurst struct {
	at   float64 // system clock, ms
	x, y float64
}

// System owns every live particle, bucketed by color for draw batching, and
// the pools they are recycled through. It is not safe for concurrent use;
// one goroutine steps and draws it.
type System struct {
	cfg    config.Config
	scheme *Scheme
	layers Layers
	logger *log.Logger

	width, height float64
	clock         float64

	rockets []*Rocket
	stars   map[Color][]*Star
	sparks  map[Color][]*Spark
	flashes []*Flash
	pending []pendingBurst
	order   []Color

	rocketPool *Pool[Rocket]
	starPool   *Pool[Star]
	sparkPool  *Pool[Spark]
	flashPool  *Pool[Flash]

	burstBuf []physics.BurstPoint
	moved    []*Star
}

// NewSystem creates an empty system. A nil logger uses log.Default().
func NewSystem(cfg config.Config, scheme *Scheme, logger *log.Logger) *System {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &System{
		cfg:        cfg,
		scheme:     scheme,
		layers:     NewLayers(cfg),
		logger:     logger,
		stars:      make(map[Color][]*Star),
		sparks:     make(map[Color][]*Spark),
		rocketPool: NewPool(resetRocket),
		starPool:   NewPool[Star](nil),
		sparkPool:  NewPool[Spark](nil),
		flashPool:  NewPool[Flash](nil),
	}
	if cfg.Debug {
		s.rocketPool.EnableDebug(logger)
		s.starPool.EnableDebug(logger)
		s.sparkPool.EnableDebug(logger)
		s.flashPool.EnableDebug(logger)
	}
	for _, c := range scheme.Palette() {
		s.bucket(c)
	}
	s.bucket(White)
	s.bucket(Gold)
	s.bucket(Invisible)
	return s
}

// bucket registers color c so it has star and spark buckets.
func (s *System) bucket(c Color) {
	if _, ok := s.stars[c]; ok {
		return
	}
	s.stars[c] = nil
	s.sparks[c] = nil
	s.order = append(s.order, c)
}

// SetStageSize sets the stage dimensions launches are placed in.
func (s *System) SetStageSize(width, height float64) {
	s.width, s.height = width, height
}

// StageSize returns the stage dimensions.
func (s *System) StageSize() (width, height float64) {
	return s.width, s.height
}

// Config returns the configuration the system was built with.
func (s *System) Config() config.Config { return s.cfg }

// Scheme returns the palette.
func (s *System) Scheme() *Scheme { return s.scheme }

// Clock returns simulated milliseconds since the system was created.
func (s *System) Clock() float64 { return s.clock }

// Launch fires a salvo of SalvoMin..SalvoMax rockets from the bottom of the
// stage. x picks the horizontal launch point across the padded stage, y is
// the lowest allowed burst height as a fraction of the stage height and
// heightFactor picks the burst altitude between that and the top padding.
// Returns the number of rockets launched.
func (s *System) Launch(x, y, heightFactor float64) int {
	n := physics.RandomInt(s.cfg.SalvoMin, s.cfg.SalvoMax)
	for i := 0; i < n; i++ {
		pos := physics.Clamp01(x + physics.Random(-0.08, 0.08))
		hf := physics.Clamp01(heightFactor + physics.Random(-0.1, 0.1))
		s.LaunchShell(RandomShell(s.cfg, s.scheme), pos, y, hf)
	}
	return n
}

// LaunchShell launches a single rocket carrying sh.
func (s *System) LaunchShell(sh Shell, position, minHeight, heightFactor float64) *Rocket {
	w, h := s.width, s.height
	hpad := math.Min(s.cfg.LaunchPadX, w/4)
	vpad := math.Min(s.cfg.LaunchPadY, h/4)

	floor := h - h*physics.Clamp01(minHeight)
	launchX := physics.Clamp01(position)*(w-hpad*2) + hpad
	launchY := h
	burstY := physics.Lerp(floor, vpad, physics.Clamp01(heightFactor))

	v := LaunchVelocity(launchY-burstY, s.cfg) * physics.Random(0.88, 1.12)
	v = physics.Clamp(v, s.cfg.RocketSpeedMin, s.cfg.RocketSpeedMax)

	r := s.rocketPool.Acquire()
	r.X, r.Y = launchX, launchY
	r.PrevX, r.PrevY = launchX, launchY
	r.VX = physics.Random(-0.5, 0.5)
	r.VY = -v
	r.Trail.Reset(s.cfg.TrailLength)
	r.Trail.Push(launchX, launchY)
	r.Color = sh.rocketColor()

	r.Acceleration = s.cfg.RocketAcceleration
	r.Gravity = s.cfg.RocketGravity
	r.Friction = s.cfg.RocketFriction
	r.TargetY = burstY
	r.MaxFrames = s.cfg.RocketMaxFrames

	r.SpinRadius = physics.Random(0.32, 0.85)
	r.SpinAngle = physics.Random(0, physics.Tau)
	r.SpinSpeed = 0.8

	r.SparkFreq = 32
	r.SparkTimer = physics.Random(0, r.SparkFreq)
	r.SparkColor = r.Color
	r.SparkLife = 320
	r.SparkLifeVariation = 3

	r.Visible = true
	if !sh.Horsetail && physics.Chance(0.6) {
		r.HideAfter = math.Pow(physics.Random(0, 1), 1.5)*700 + 500
	}
	r.Shell = sh

	s.rockets = append(s.rockets, r)
	return r
}

// DirectBurst detonates a stock shell at (x, y) without a rocket.
func (s *System) DirectBurst(x, y float64) {
	s.BurstShell(NewShell(s.cfg, s.scheme), x, y, 0, 0)
}

// Celebrate bursts at (x, y) now and schedules follow-up bursts at random
// points across the middle of the stage.
func (s *System) Celebrate(x, y float64) {
	s.DirectBurst(x, y)
	for i := 1; i <= celebrateFollowUps; i++ {
		s.pending = append(s.pending, pendingBurst{
			at: s.clock + float64(i)*celebrateInterval,
			x:  physics.Random(0.2, 0.8) * s.width,
			y:  physics.Random(0.2, 0.8) * s.height,
		})
	}
}

// BurstShell detonates sh at (x, y). Horsetail shells hand the rocket's
// velocity (vx, vy) to every star.
func (s *System) BurstShell(sh Shell, x, y, vx, vy float64) {
	speed := sh.SpreadSize / 96
	offX, offY := 0.0, -sh.SpreadSize/1800
	if sh.Horsetail {
		offX, offY = vx, vy
	}

	var glitter glitterProfile
	hasGlitter := sh.Glitter != GlitterNone && int(sh.Glitter) < len(glitterProfiles)
	if hasGlitter {
		glitter = glitterProfiles[sh.Glitter]
	}

	spawn := func(color Color, pt physics.BurstPoint) {
		layer := LayerFor(pt.RadiusFactor, s.cfg)
		prof := s.layers[layer]
		starSpeed := speed * pt.RadiusFactor * physics.Random(prof.SpeedMin, prof.SpeedMax)
		life := sh.StarLife + physics.Random(0, sh.StarLife*sh.StarLifeVariation)

		st := s.starPool.Acquire()
		st.init(x, y, color, pt.Angle, starSpeed, life, offX, offY)
		st.applyLayer(layer, prof)
		st.RadiusFactor = pt.RadiusFactor
		st.Heavy = sh.Horsetail

		if sh.SecondColor != "" {
			st.SecondColor = sh.SecondColor
			st.TransitionTime = sh.StarLife * physics.Random(0.32, 0.37)
		}
		if hasGlitter {
			st.SparkFreq = glitter.freq
			st.SparkSpeed = glitter.speed
			st.SparkLife = glitter.life
			st.SparkLifeVariation = glitter.variation
			st.SparkColor = sh.GlitterColor
			st.SparkTimer = physics.Random(0, glitter.freq)
		}
		if sh.Strobe {
			st.Twinkle = true
			st.TwinklePhase = physics.Random(0, physics.Tau)
		}
		s.addStar(st)
	}

	n := sh.Stars()
	switch sh.Mode {
	case ColorDual:
		arcs := physics.SplitArcs(physics.Random(0, math.Pi))
		for i, arc := range arcs {
			s.burstBuf = physics.AppendBurst(s.burstBuf[:0], n, arc)
			for _, pt := range s.burstBuf {
				spawn(sh.Colors[i], pt)
			}
		}
	case ColorRandom:
		s.burstBuf = physics.AppendBurst(s.burstBuf[:0], n, physics.FullArc())
		for _, pt := range s.burstBuf {
			spawn(s.scheme.Random(), pt)
		}
	default:
		s.burstBuf = physics.AppendBurst(s.burstBuf[:0], n, physics.FullArc())
		for _, pt := range s.burstBuf {
			spawn(sh.Colors[0], pt)
		}
	}

	f := s.flashPool.Acquire()
	f.init(x, y, sh.SpreadSize/4, Gold, s.cfg.FlashDuration)
	s.flashes = append(s.flashes, f)
}

func (s *System) addStar(st *Star) {
	s.bucket(st.Color)
	s.stars[st.Color] = append(s.stars[st.Color], st)
}

// EmitSpark adds a spark. Invisible sparks are dropped.
func (s *System) EmitSpark(x, y float64, color Color, angle, speed, life float64) {
	if !color.Visible() || life <= 0 {
		return
	}
	p := s.sparkPool.Acquire()
	p.init(x, y, color, angle, speed, life)
	p.Born = s.clock
	s.bucket(color)
	s.sparks[color] = append(s.sparks[color], p)
}

// Step advances the simulation by elapsedMs of real time. Non-positive
// steps are ignored.
func (s *System) Step(elapsedMs float64) {
	if elapsedMs <= 0 {
		return
	}
	ctx := NewStepContext(elapsedMs, s.cfg.SimSpeed, s.cfg.Gravity, s.cfg.SparkAirDrag, s.clock)
	s.clock += ctx.TimeStep
	ctx.Clock = s.clock
	heavyDrag := ctx.Drag(s.cfg.StarAirDragHeavy)

	// Flashes live for a few frames; new ones below are drawn at full alpha.
	flashes := s.flashes[:0]
	for _, f := range s.flashes {
		if f.Update(ctx) {
			s.flashPool.Release(f)
			continue
		}
		flashes = append(flashes, f)
	}
	clear(s.flashes[len(flashes):])
	s.flashes = flashes

	s.firePending()

	rockets := s.rockets[:0]
	var ready []*Rocket
	for _, r := range s.rockets {
		if r.Update(ctx, s) {
			ready = append(ready, r)
			continue
		}
		rockets = append(rockets, r)
	}
	clear(s.rockets[len(rockets):])
	s.rockets = rockets
	for _, r := range ready {
		s.BurstShell(r.Shell, r.X, r.Y, r.VX, r.VY)
		s.rocketPool.Release(r)
	}

	// Recolored stars join their new bucket after the pass so no star is
	// updated twice in one frame.
	s.moved = s.moved[:0]
	for _, c := range s.order {
		bucket := s.stars[c]
		kept := bucket[:0]
		for _, st := range bucket {
			switch st.Update(ctx, heavyDrag, s) {
			case StarDead:
				s.starPool.Release(st)
			case StarRecolored:
				s.moved = append(s.moved, st)
			default:
				kept = append(kept, st)
			}
		}
		clear(bucket[len(kept):])
		s.stars[c] = kept
	}
	for _, st := range s.moved {
		s.addStar(st)
	}
	clear(s.moved)

	// Sparks emitted during this step are drawn at their spawn point first
	// and start moving next step, like stars after a burst.
	for _, c := range s.order {
		bucket := s.sparks[c]
		kept := bucket[:0]
		for _, p := range bucket {
			if p.Fresh(s.clock) {
				kept = append(kept, p)
				continue
			}
			if p.Update(ctx) {
				s.sparkPool.Release(p)
				continue
			}
			kept = append(kept, p)
		}
		clear(bucket[len(kept):])
		s.sparks[c] = kept
	}
}

func (s *System) firePending() {
	if len(s.pending) == 0 {
		return
	}
	var due []pendingBurst
	kept := s.pending[:0]
	for _, p := range s.pending {
		if p.at <= s.clock {
			due = append(due, p)
			continue
		}
		kept = append(kept, p)
	}
	s.pending = kept
	for _, p := range due {
		s.DirectBurst(p.x, p.y)
	}
}

// Counts returns the number of live entities of each kind.
func (s *System) Counts() Counts {
	c := Counts{
		Rockets: len(s.rockets),
		Flashes: len(s.flashes),
		Pending: len(s.pending),
	}
	for _, color := range s.order {
		c.Stars += len(s.stars[color])
		c.Sparks += len(s.sparks[color])
	}
	return c
}

// Active reports whether anything is left to simulate or draw.
func (s *System) Active() bool {
	if len(s.rockets) > 0 || len(s.flashes) > 0 || len(s.pending) > 0 {
		return true
	}
	for _, c := range s.order {
		if len(s.stars[c]) > 0 || len(s.sparks[c]) > 0 {
			return true
		}
	}
	return false
}

// LayerCounts returns the number of live stars in each layer.
func (s *System) LayerCounts() [3]int {
	var counts [3]int
	for _, c := range s.order {
		for _, st := range s.stars[c] {
			counts[st.Layer]++
		}
	}
	return counts
}

// Clear releases every particle and drops scheduled bursts.
func (s *System) Clear() {
	for _, r := range s.rockets {
		s.rocketPool.Release(r)
	}
	clear(s.rockets)
	s.rockets = s.rockets[:0]
	for _, f := range s.flashes {
		s.flashPool.Release(f)
	}
	clear(s.flashes)
	s.flashes = s.flashes[:0]
	for _, c := range s.order {
		for _, st := range s.stars[c] {
			s.starPool.Release(st)
		}
		for _, p := range s.sparks[c] {
			s.sparkPool.Release(p)
		}
		clear(s.stars[c])
		clear(s.sparks[c])
		s.stars[c] = s.stars[c][:0]
		s.sparks[c] = s.sparks[c][:0]
	}
	s.pending = s.pending[:0]
}

// BucketColors returns the registered colors in a stable draw order.
func (s *System) BucketColors() []Color { return s.order }

// Stars returns the live stars of color c. The slice is only valid until
// the next Step.
func (s *System) Stars(c Color) []*Star { return s.stars[c] }

// Sparks returns the live sparks of color c.
func (s *System) Sparks(c Color) []*Spark { return s.sparks[c] }

// Rockets returns the ascending rockets.
func (s *System) Rockets() []*Rocket { return s.rockets }

// Flashes returns the live burst flashes.
func (s *System) Flashes() []*Flash { return s.flashes }
