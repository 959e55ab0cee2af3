package round

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"bemine/internal/config"
	"bemine/internal/entity"
	"bemine/internal/placement"
)

const (
	testW = 1600
	testH = 1200
)

type endLog []State

func (l *endLog) record(s State) { *l = append(*l, s) }

func newTestRound(t *testing.T, coarse bool, ends *endLog) *Round {
	t.Helper()
	opts := Options{
		Game:   config.DefaultGame().ForPointer(coarse),
		Coarse: coarse,
		Source: rand.New(rand.NewSource(1)),
	}
	if ends != nil {
		opts.OnEnd = ends.record
	}
	r, err := New(testW, testH, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

// stage puts the round into Running with a hand placed scene.
func stage(r *Round, cursor entity.Cursor, dots ...entity.Obstacle) {
	r.Start()
	r.cursor = cursor
	r.obstacles = append([]entity.Obstacle(nil), dots...)
}

func dot(x, y, radius float64) entity.Obstacle {
	return entity.NewObstacle(entity.Position{X: x, Y: y}, radius, 330, 0.7, 0.6)
}

func yes(x, y, radius float64) entity.Cursor {
	return entity.Cursor{Position: entity.Position{X: x, Y: y}, Radius: radius}
}

func hasID(dots []entity.Obstacle, o entity.Obstacle) bool {
	for _, d := range dots {
		if d.ID == o.ID {
			return true
		}
	}
	return false
}

func TestNewRejectsMissingSurface(t *testing.T) {
	for _, size := range [][2]float64{{0, 600}, {800, 0}, {-1, -1}} {
		_, err := New(size[0], size[1], Options{Game: config.DefaultGame()})
		if !errors.Is(err, ErrNoSurface) {
			t.Errorf("New(%v) error = %v, want ErrNoSurface", size, err)
		}
	}
}

func TestNewRejectsBadTuning(t *testing.T) {
	g := config.DefaultGame()
	g.DotCount = 0
	if _, err := New(800, 600, Options{Game: g}); !errors.Is(err, ErrBadTuning) {
		t.Fatalf("error = %v, want ErrBadTuning", err)
	}
}

func TestNewRoundIsIdle(t *testing.T) {
	r := newTestRound(t, false, nil)
	if r.State() != Idle || r.Scheduled() || r.ShortcutEnabled() {
		t.Fatalf("fresh round: state=%v scheduled=%v shortcut=%v", r.State(), r.Scheduled(), r.ShortcutEnabled())
	}
	if len(r.Obstacles()) != 0 {
		t.Fatalf("fresh round has %d dots", len(r.Obstacles()))
	}
	if r.Step() {
		t.Fatal("idle round must not schedule ticks")
	}
}

func TestStartEntersRunning(t *testing.T) {
	r := newTestRound(t, false, nil)
	r.PointerMove(5, 5)
	r.Start()

	cfg := r.Tuning()
	if r.State() != Running || !r.Scheduled() || !r.ShortcutEnabled() {
		t.Fatalf("after Start: state=%v scheduled=%v shortcut=%v", r.State(), r.Scheduled(), r.ShortcutEnabled())
	}
	if got := len(r.Obstacles()); got != cfg.DotCount {
		t.Fatalf("dot count = %d, want %d", got, cfg.DotCount)
	}
	c := r.Cursor()
	if c.Position != r.Surface().Center() || c.Radius != cfg.CursorSize {
		t.Fatalf("cursor = %+v, want center with radius %g", c, cfg.CursorSize)
	}

	s := placement.NewSampler(cfg, nil)
	for _, o := range r.Obstacles() {
		if s.InCenterZone(r.Surface(), o.Position) {
			t.Errorf("dot at %+v placed inside the center zone", o.Position)
		}
	}
}

func TestStartResetsAfterAnyOutcome(t *testing.T) {
	r := newTestRound(t, false, nil)
	cfg := r.Tuning()

	stage(r, yes(100, 100, 30), dot(115, 100, 40))
	r.Step()
	if r.State() != Lost {
		t.Fatalf("setup: state = %v, want lost", r.State())
	}
	r.Start()
	if r.Cursor().Radius != cfg.CursorSize || len(r.Obstacles()) != cfg.DotCount {
		t.Fatalf("after lost restart: radius %g, %d dots", r.Cursor().Radius, len(r.Obstacles()))
	}

	stage(r, yes(100, 100, 90), dot(110, 100, 20))
	r.Step()
	if r.State() != Won {
		t.Fatalf("setup: state = %v, want won", r.State())
	}
	r.Start()
	if r.Cursor().Radius != cfg.CursorSize || len(r.Obstacles()) != cfg.DotCount || r.State() != Running {
		t.Fatalf("after won restart: state %v radius %g, %d dots", r.State(), r.Cursor().Radius, len(r.Obstacles()))
	}
}

func TestConsumeSmallerDot(t *testing.T) {
	r := newTestRound(t, false, nil)
	target := dot(110, 100, 20)
	far := dot(1000, 1000, 50)
	stage(r, yes(100, 100, 30), target, far)

	if !r.Step() {
		t.Fatal("round should keep running")
	}
	if got := r.Cursor().Radius; math.Abs(got-36) > 1e-9 {
		t.Fatalf("radius = %g, want 36", got)
	}
	dots := r.Obstacles()
	if hasID(dots, target) {
		t.Fatal("eaten dot still present")
	}
	if !hasID(dots, far) {
		t.Fatal("untouched dot removed")
	}
	// 36 <= 50, so one replacement is spawned
	if len(dots) != 2 {
		t.Fatalf("dot count = %d, want 2 after replenishment", len(dots))
	}
}

func TestLargerDotLoses(t *testing.T) {
	var ends endLog
	r := newTestRound(t, false, &ends)
	stage(r, yes(100, 100, 30), dot(115, 100, 40))

	if r.Step() {
		t.Fatal("lost round must not reschedule")
	}
	if r.State() != Lost || r.ShortcutEnabled() {
		t.Fatalf("state=%v shortcut=%v", r.State(), r.ShortcutEnabled())
	}
	if len(ends) != 1 || ends[0] != Lost {
		t.Fatalf("observer saw %v", ends)
	}
	if len(r.Obstacles()) != 1 {
		t.Fatal("fatal dot should stay in place")
	}
}

func TestEqualRadiusIsFatal(t *testing.T) {
	r := newTestRound(t, false, nil)
	stage(r, yes(100, 100, 30), dot(120, 100, 30))
	r.Step()
	if r.State() != Lost {
		t.Fatalf("state = %v, want lost on equal radii", r.State())
	}
}

func TestLossAbandonsRemainingChecks(t *testing.T) {
	r := newTestRound(t, false, nil)
	small := dot(90, 100, 10)
	big := dot(120, 100, 60) // checked first: last in the slice
	stage(r, yes(100, 100, 30), small, big)

	r.Step()
	if r.State() != Lost {
		t.Fatalf("state = %v", r.State())
	}
	if r.Cursor().Radius != 30 || len(r.Obstacles()) != 2 {
		t.Fatalf("collisions after a loss were still resolved: radius %g, %d dots", r.Cursor().Radius, len(r.Obstacles()))
	}
}

func TestEatingLastDotWinsSameTick(t *testing.T) {
	var ends endLog
	r := newTestRound(t, false, &ends)
	stage(r, yes(100, 100, 30), dot(110, 100, 20))

	if r.Step() {
		t.Fatal("won round must not reschedule")
	}
	if r.State() != Won || len(r.Obstacles()) != 0 {
		t.Fatalf("state=%v dots=%d", r.State(), len(r.Obstacles()))
	}
	if r.Step() || r.Tick(&recorder{}) {
		t.Fatal("no further ticks after a win")
	}
	if len(ends) != 1 || ends[0] != Won {
		t.Fatalf("observer saw %v", ends)
	}
}

func TestReplenishGateLatches(t *testing.T) {
	r := newTestRound(t, false, nil)
	stage(r, yes(100, 100, 60), dot(110, 100, 20), dot(1500, 1100, 40))

	r.Step() // 60 -> 66, bigger than the 40 left
	if n := len(r.Obstacles()); n != 1 {
		t.Fatalf("dot count = %d, want 1 (no replenishment)", n)
	}

	// Even if a bigger dot were present later, spawning stays off.
	r.obstacles = append(r.obstacles, dot(1500, 100, 80), dot(105, 100, 10))
	r.Step()
	if n := len(r.Obstacles()); n != 2 {
		t.Fatalf("dot count = %d, want 2: gate must stay shut", n)
	}
}

func TestReplacementKeepsTargetCount(t *testing.T) {
	r := newTestRound(t, false, nil)
	r.Start()
	cfg := r.Tuning()
	// swap one dot for an edible one under the cursor
	c := r.Cursor()
	r.obstacles[len(r.obstacles)-1] = dot(c.X+1, c.Y, 10)

	r.Step()
	if r.State() != Running {
		t.Fatalf("state = %v", r.State())
	}
	if n := len(r.Obstacles()); n != cfg.DotCount {
		t.Fatalf("dot count = %d, want %d", n, cfg.DotCount)
	}
}

func TestConfirmOnEmptySpaceWins(t *testing.T) {
	var ends endLog
	r := newTestRound(t, false, &ends)
	stage(r, yes(800, 600, 30), dot(500, 500, 50))

	if !r.Confirm(10, 10) {
		t.Fatal("click on empty space should win")
	}
	if r.State() != Won || r.Scheduled() || r.ShortcutEnabled() {
		t.Fatalf("state=%v scheduled=%v shortcut=%v", r.State(), r.Scheduled(), r.ShortcutEnabled())
	}
	if len(ends) != 1 || ends[0] != Won {
		t.Fatalf("observer saw %v", ends)
	}
	if r.Confirm(10, 10) {
		t.Fatal("listener must be detached after the round ends")
	}
}

func TestConfirmOnDotIsIgnored(t *testing.T) {
	r := newTestRound(t, false, nil)
	stage(r, yes(800, 600, 30), dot(500, 500, 50))

	// 54 from the center: inside radius + click radius
	if r.Confirm(554, 500) {
		t.Fatal("click near a dot must not win")
	}
	if r.State() != Running {
		t.Fatalf("state = %v, want running", r.State())
	}
}

func TestConfirmClickRadiusBoundary(t *testing.T) {
	// dot radius 50 plus the default click radius 5
	cases := []struct {
		name string
		x    float64
		won  bool
	}{
		{"inside", 554.9, false},
		{"exactly on the boundary", 555, true},
		{"outside", 556, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRound(t, false, nil)
			stage(r, yes(800, 600, 30), dot(500, 500, 50))
			if got := r.Confirm(tc.x, 500); got != tc.won {
				t.Fatalf("Confirm(%g, 500) = %v, want %v", tc.x, got, tc.won)
			}
		})
	}
}

func TestOverlapBoundary(t *testing.T) {
	// YES radius 30 and NO radius 20 touch at a distance of 50
	cases := []struct {
		name  string
		x     float64
		eaten bool
	}{
		{"overlapping", 149.9, true},
		{"touching", 150, false},
		{"apart", 151, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRound(t, false, nil)
			target := dot(tc.x, 100, 20)
			stage(r, yes(100, 100, 30), target, dot(1000, 1000, 50))
			r.Step()

			if r.State() != Running {
				t.Fatalf("state = %v, want running", r.State())
			}
			if got := !hasID(r.Obstacles(), target); got != tc.eaten {
				t.Fatalf("eaten = %v, want %v", got, tc.eaten)
			}
			want := 30.0
			if tc.eaten {
				want = 36
			}
			if got := r.Cursor().Radius; math.Abs(got-want) > 1e-9 {
				t.Fatalf("radius = %g, want %g", got, want)
			}
		})
	}
}

func TestConfirmDisabledOnCoarsePointer(t *testing.T) {
	r := newTestRound(t, true, nil)
	stage(r, yes(800, 600, 20), dot(500, 500, 50))

	if r.ShortcutEnabled() {
		t.Fatal("shortcut attached on a coarse pointer")
	}
	if r.Confirm(10, 10) || r.State() != Running {
		t.Fatal("tap on empty space must not win on a coarse pointer")
	}
}

func TestConfirmIgnoredWhenIdle(t *testing.T) {
	r := newTestRound(t, false, nil)
	if r.Confirm(10, 10) || r.State() != Idle {
		t.Fatal("confirm before start changed state")
	}
}

func TestPointerMoveKeepsRadius(t *testing.T) {
	r := newTestRound(t, false, nil)
	r.Start()
	before := r.Cursor().Radius
	r.PointerMove(12, 34)
	c := r.Cursor()
	if c.X != 12 || c.Y != 34 || c.Radius != before {
		t.Fatalf("cursor = %+v", c)
	}
}

func TestResizeKeepsRound(t *testing.T) {
	r := newTestRound(t, false, nil)
	r.Start()
	dots := r.Obstacles()

	r.Resize(800, 600)
	if r.State() != Running || len(r.Obstacles()) != len(dots) {
		t.Fatal("resize reset the round")
	}
	if s := r.Surface(); s.Width != 800 || s.Height != 600 {
		t.Fatalf("surface = %+v", s)
	}
	r.Resize(0, 0)
	if s := r.Surface(); s.Width != 800 {
		t.Fatalf("invalid resize applied: %+v", s)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	r := newTestRound(t, false, nil)
	stage(r, yes(100, 100, 30), dot(110, 100, 20))
	r.Step()
	id := r.ID

	r.Reset()
	if r.State() != Idle || len(r.Obstacles()) != 0 || r.Cursor().Radius != r.Tuning().CursorSize {
		t.Fatalf("reset left state=%v dots=%d", r.State(), len(r.Obstacles()))
	}
	if r.ID == id {
		t.Fatal("reset should start a new round identity")
	}
}

func TestSafeStartClearsDots(t *testing.T) {
	r := newTestRound(t, false, nil)
	r.Start()
	p := r.SafeStart()
	if p != r.Surface().Center() && !placement.PositionSafe(p, r.Tuning().CursorSize, r.Obstacles()) {
		t.Fatalf("SafeStart = %+v overlaps a dot", p)
	}
}

// greedyTarget picks the nearest edible dot, or a random point when none is.
func greedyTarget(r *Round, rng *rand.Rand) entity.Position {
	c := r.Cursor()
	best, bestDist := entity.Position{}, math.Inf(1)
	for _, o := range r.obstacles {
		if o.Radius < c.Radius {
			if d := c.Dist(o.Position); d < bestDist {
				best, bestDist = o.Position, d
			}
		}
	}
	if math.IsInf(bestDist, 1) {
		s := r.Surface()
		return entity.Position{X: rng.Float64() * s.Width, Y: rng.Float64() * s.Height}
	}
	return best
}

func TestRoundInvariantsUnderPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var ends endLog
	r := newTestRound(t, false, &ends)
	cfg := r.Tuning()
	wins, losses := 0, 0

	for game := 0; game < 200; game++ {
		r.Start()
		closed := false
		lastRadius := r.Cursor().Radius

		for tick := 0; tick < 2000 && r.State() == Running; tick++ {
			p := greedyTarget(r, rng)
			r.PointerMove(p.X, p.Y)
			seen := make(map[uuid.UUID]bool, len(r.obstacles))
			for _, o := range r.obstacles {
				seen[o.ID] = true
			}
			r.Step()

			c := r.Cursor()
			if c.Radius < lastRadius {
				t.Fatalf("radius shrank: %g -> %g", lastRadius, c.Radius)
			}
			if c.Radius < cfg.CursorSize {
				t.Fatalf("radius %g below initial", c.Radius)
			}
			lastRadius = c.Radius

			if len(r.obstacles) > cfg.DotCount {
				t.Fatalf("%d dots exceed target", len(r.obstacles))
			}
			for _, o := range r.obstacles {
				if o.Radius < cfg.MinDotSize || o.Radius > cfg.MaxDotSize {
					t.Fatalf("dot radius %g out of range", o.Radius)
				}
			}
			for _, o := range r.obstacles {
				if closed && !seen[o.ID] {
					t.Fatalf("dot spawned after YES outgrew every NO")
				}
			}
			if len(r.obstacles) > 0 && c.Radius > r.largest() {
				closed = true
			}

			switch r.State() {
			case Won:
				wins++
				if len(r.obstacles) != 0 {
					t.Fatalf("won with %d dots left", len(r.obstacles))
				}
			case Lost:
				losses++
				fatal := false
				for _, o := range r.obstacles {
					if c.Overlaps(o) && o.Radius >= c.Radius {
						fatal = true
					}
				}
				if !fatal {
					t.Fatal("lost without touching an equal or larger dot")
				}
			}
		}
	}

	if wins+losses != len(ends) {
		t.Fatalf("observer calls %d, outcomes %d", len(ends), wins+losses)
	}
	if losses == 0 {
		t.Fatal("simulation never lost; collision path not exercised")
	}
}

type call struct {
	kind string
	text string
}

type recorder struct {
	calls []call
}

func (r *recorder) Clear() { r.calls = append(r.calls, call{kind: "clear"}) }
func (r *recorder) Circle(entity.Position, float64, float64, color.Color, color.Color) {
	r.calls = append(r.calls, call{kind: "circle"})
}
func (r *recorder) Label(text string, _ entity.Position, _ float64, _ color.Color) {
	r.calls = append(r.calls, call{kind: "label", text: text})
}
func (r *recorder) Heart(entity.Position, float64, color.Color) {
	r.calls = append(r.calls, call{kind: "heart"})
}
func (r *recorder) Measure(text string, size float64) float64 {
	return float64(len(text)) * size / 2
}

func TestRenderIdleClearsOnly(t *testing.T) {
	r := newTestRound(t, false, nil)
	rec := &recorder{}
	r.Render(rec)
	if len(rec.calls) != 1 || rec.calls[0].kind != "clear" {
		t.Fatalf("idle render = %v", rec.calls)
	}
}

func TestTickDrawsThenResolves(t *testing.T) {
	r := newTestRound(t, false, nil)
	stage(r, yes(100, 100, 30), dot(110, 100, 20), dot(1000, 1000, 50))
	rec := &recorder{}

	if !r.Tick(rec) {
		t.Fatal("tick should reschedule")
	}
	want := []call{
		{kind: "clear"},
		{kind: "label", text: entity.BackdropText},
		{kind: "heart"},
		{kind: "circle"}, {kind: "label", text: entity.NoLabel},
		{kind: "circle"}, {kind: "label", text: entity.NoLabel},
		{kind: "circle"}, {kind: "label", text: entity.YesLabel},
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v", rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("call %d = %v, want %v", i, rec.calls[i], want[i])
		}
	}
	// collision ran after the draw
	if math.Abs(r.Cursor().Radius-36) > 1e-9 {
		t.Fatalf("radius = %g after tick", r.Cursor().Radius)
	}
}

func TestRenderLostKeepsScene(t *testing.T) {
	r := newTestRound(t, false, nil)
	stage(r, yes(100, 100, 30), dot(115, 100, 40))
	r.Step()

	rec := &recorder{}
	r.Render(rec)
	if len(rec.calls) <= 1 {
		t.Fatal("lost round should still draw its last scene")
	}
	if r.Tick(rec) {
		t.Fatal("lost round must not tick")
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Running: "running", Won: "won", Lost: "lost"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q", int(s), s.String())
		}
	}
	if !Won.Terminal() || !Lost.Terminal() || Running.Terminal() || Idle.Terminal() {
		t.Error("Terminal() mismatch")
	}
}
