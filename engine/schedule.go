package engine

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Stage groups systems that run at the same point of the frame
type Stage uint8

const (
	Startup Stage = iota // Once, before the first frame
	First                // Engine bookkeeping: asset completion, event buffer swap
	PreUpdate            // Input state maintenance
	Update               // Scene logic
	PostUpdate           // Reactions to Update results
	Render               // Drawing
	Last                 // End-of-frame cleanup
)

var allStages = []Stage{Startup, First, PreUpdate, Update, PostUpdate, Render, Last}

// frameStages run every frame in this order
var frameStages = []Stage{First, PreUpdate, Update, PostUpdate, Render, Last}

func (s Stage) String() string {
	switch s {
	case Startup:
		return "Startup"
	case First:
		return "First"
	case PreUpdate:
		return "PreUpdate"
	case Update:
		return "Update"
	case PostUpdate:
		return "PostUpdate"
	case Render:
		return "Render"
	case Last:
		return "Last"
	}
	return "Unknown"
}

var (
	ErrScheduleCycle     = errors.New("schedule has a dependency cycle")
	ErrUnknownDependency = errors.New("schedule references an unknown system")
	ErrDuplicateSystem   = errors.New("system name already registered")
)

// System is implemented by everything the scheduler runs
type System interface {
	Name() string
	Update()
}

type funcSystem struct {
	name string
	fn   func()
}

func (s *funcSystem) Name() string { return s.name }
func (s *funcSystem) Update()      { s.fn() }

// SystemFunc adapts a plain function to the System interface
func SystemFunc(name string, fn func()) System {
	return &funcSystem{name: name, fn: fn}
}

// SystemOption configures a system's position within its schedule
type SystemOption func(*scheduleEntry)

// After declares that the system runs after the named systems of the same stage
func After(names ...string) SystemOption {
	return func(e *scheduleEntry) {
		e.after = append(e.after, names...)
	}
}

type scheduleEntry struct {
	system System
	after  []string
}

// Schedule holds the systems of one stage and their resolved run order
// Independent systems keep registration order
type Schedule struct {
	mu      sync.Mutex
	stage   Stage
	entries []scheduleEntry
	order   []System
	dirty   bool
}

// NewSchedule creates an empty schedule for stage
func NewSchedule(stage Stage) *Schedule {
	return &Schedule{stage: stage}
}

// Add registers a system; ordering is resolved lazily by Build or Run
func (s *Schedule) Add(sys System, opts ...SystemOption) {
	entry := scheduleEntry{system: sys}
	for _, opt := range opts {
		opt(&entry)
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.dirty = true
	s.mu.Unlock()
}

// Build resolves run order, reporting duplicate names, unknown dependencies and cycles
func (s *Schedule) Build() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildLocked()
}

func (s *Schedule) buildLocked() error {
	if !s.dirty {
		return nil
	}

	index := make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		name := e.system.Name()
		if _, dup := index[name]; dup {
			return errors.Wrapf(ErrDuplicateSystem, "%s: %q", s.stage, name)
		}
		index[name] = i
	}
	for _, e := range s.entries {
		for _, dep := range e.after {
			if _, ok := index[dep]; !ok {
				return errors.Wrapf(ErrUnknownDependency, "%s: %q runs after %q", s.stage, e.system.Name(), dep)
			}
		}
	}

	// Repeatedly take the first pending system whose dependencies are placed
	placed := make([]bool, len(s.entries))
	order := make([]System, 0, len(s.entries))
	for len(order) < len(s.entries) {
		progressed := false
		for i, e := range s.entries {
			if placed[i] {
				continue
			}
			ready := true
			for _, dep := range e.after {
				if !placed[index[dep]] {
					ready = false
					break
				}
			}
			if ready {
				placed[i] = true
				order = append(order, e.system)
				progressed = true
				break
			}
		}
		if !progressed {
			var stuck []string
			for i, e := range s.entries {
				if !placed[i] {
					stuck = append(stuck, e.system.Name())
				}
			}
			return errors.Wrapf(ErrScheduleCycle, "%s: %s", s.stage, strings.Join(stuck, ", "))
		}
	}

	s.order = order
	s.dirty = false
	return nil
}

// Run executes systems in resolved order
// Panics on an unresolvable schedule; App.Startup surfaces the error first
func (s *Schedule) Run() {
	s.mu.Lock()
	if err := s.buildLocked(); err != nil {
		s.mu.Unlock()
		panic(err)
	}
	order := s.order
	s.mu.Unlock()

	for _, sys := range order {
		sys.Update()
	}
}

// Names returns system names in run order
func (s *Schedule) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buildLocked(); err != nil {
		return nil, err
	}
	names := make([]string, len(s.order))
	for i, sys := range s.order {
		names[i] = sys.Name()
	}
	return names, nil
}
