package round

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"bemine/internal/config"
	"bemine/internal/entity"
	"bemine/internal/placement"
)

type State int

const (
	Idle    State = iota // before the first start or after a reset
	Running              // ticks scheduled
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the round has ended.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

var (
	ErrNoSurface = errors.New("round: no drawable surface")
	ErrBadTuning = errors.New("round: invalid tuning")
)

// Options configures a Round. Game must already be scaled for the pointer class.
type Options struct {
	Game   config.Game
	Coarse bool             // touch-first device: click-to-win disabled
	Source placement.Source // nil uses a time seeded generator
	OnEnd  func(State)      // called once when a round is won or lost
}

// Round owns every piece of mutable game state. It is not safe for
// concurrent use: input handlers and ticks must run on one goroutine.
type Round struct {
	ID uuid.UUID

	cfg     config.Game
	coarse  bool
	sampler *placement.Sampler
	surface placement.Surface
	onEnd   func(State)

	cursor    entity.Cursor
	obstacles []entity.Obstacle
	state     State

	scheduled bool // next tick requested
	shortcut  bool // click-to-win listener attached
	replenish bool // cleared for good once YES outgrows every NO
}

// New creates an idle round on a width x height surface.
func New(width, height float64, opts Options) (*Round, error) {
	surf := placement.Surface{Width: width, Height: height}
	if !surf.Valid() {
		return nil, fmt.Errorf("%w: %gx%g", ErrNoSurface, width, height)
	}
	if err := opts.Game.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTuning, err)
	}

	src := opts.Source
	if src == nil {
		src = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	r := &Round{
		cfg:     opts.Game,
		coarse:  opts.Coarse,
		sampler: placement.NewSampler(opts.Game, src),
		surface: surf,
		onEnd:   opts.OnEnd,
	}
	r.Reset()
	return r, nil
}

// Reset returns to Idle as if freshly loaded.
func (r *Round) Reset() {
	r.ID = uuid.New()
	r.state = Idle
	r.scheduled = false
	r.shortcut = false
	r.replenish = true
	r.obstacles = nil
	r.cursor = entity.Cursor{Position: r.surface.Center(), Radius: r.cfg.CursorSize}
}

// Start resets any previous round and enters Running: the YES dot is back to
// its initial size at the surface center, a full set of NO dots is placed
// outside the center zone, ticks are scheduled and click-to-win is attached.
func (r *Round) Start() {
	if r.state != Idle {
		r.Reset()
	}

	r.obstacles = make([]entity.Obstacle, 0, r.cfg.DotCount)
	for i := 0; i < r.cfg.DotCount; i++ {
		r.obstacles = append(r.obstacles, r.sampler.Obstacle(r.surface, true))
	}
	// The start point ignores overlap; SafeStart exists for callers that want it.
	r.cursor = entity.Cursor{Position: r.surface.Center(), Radius: r.cfg.CursorSize}

	r.state = Running
	r.scheduled = true
	r.shortcut = !r.coarse
	log.Printf("round %s: started with %d dots on %gx%g", r.ID, len(r.obstacles), r.surface.Width, r.surface.Height)
}

// finish leaves Running. Scheduling and click-to-win are dropped before the
// observer runs so nothing mutates the round after a terminal state.
func (r *Round) finish(s State) {
	r.scheduled = false
	r.shortcut = false
	r.state = s
	log.Printf("round %s: %s (yes radius %.1f, %d dots left)", r.ID, s, r.cursor.Radius, len(r.obstacles))
	if r.onEnd != nil {
		r.onEnd(s)
	}
}

// PointerMove moves the YES dot. Radius is untouched.
func (r *Round) PointerMove(x, y float64) {
	r.cursor.X, r.cursor.Y = x, y
}

// Confirm handles a click or tap release at (x, y). Landing clear of every
// NO dot (plus the click radius) wins the round at once. Reports whether it won.
func (r *Round) Confirm(x, y float64) bool {
	if r.state != Running || !r.shortcut {
		return false
	}
	p := entity.Position{X: x, Y: y}
	for _, o := range r.obstacles {
		if o.Contains(p, r.cfg.ClickRadius) {
			return false
		}
	}
	r.finish(Won)
	return true
}

// Resize changes the surface. Round state is kept; non-positive sizes are ignored.
func (r *Round) Resize(width, height float64) {
	surf := placement.Surface{Width: width, Height: height}
	if !surf.Valid() {
		return
	}
	r.surface = surf
}

// Step resolves collisions for one tick and reports whether another tick is scheduled.
func (r *Round) Step() bool {
	if !r.scheduled {
		return false
	}
	r.resolve()
	return r.scheduled
}

// Tick is one full frame: draw, then resolve.
func (r *Round) Tick(c Canvas) bool {
	if !r.scheduled {
		return false
	}
	r.Render(c)
	return r.Step()
}

func (r *Round) State() State { return r.state }
func (r *Round) Scheduled() bool { return r.scheduled }
func (r *Round) ShortcutEnabled() bool { return r.shortcut }
func (r *Round) Coarse() bool { return r.coarse }
func (r *Round) Cursor() entity.Cursor { return r.cursor }
func (r *Round) Surface() placement.Surface { return r.surface }
func (r *Round) Tuning() config.Game { return r.cfg }

// Obstacles returns a copy of the current NO dots.
func (r *Round) Obstacles() []entity.Obstacle {
	out := make([]entity.Obstacle, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// SafeStart proposes a start point clear of every current NO dot.
func (r *Round) SafeStart() entity.Position {
	return r.sampler.SafeStart(r.surface, r.obstacles)
}
