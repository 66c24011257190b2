package asset

import (
	"context"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/lixenwraith/cellscene/core"
)

// DefaultLoadWorkers bounds concurrent decodes
const DefaultLoadWorkers = 2

type loadResult struct {
	handle Handle
	image  *Image
	err    error
}

// Server loads image files from a filesystem root off the frame goroutine
// Results become visible only through ApplyCompleted, which the frame loop calls once per frame
type Server struct {
	root    fs.FS
	images  *Assets[Image]
	loaders map[string]LoadFunc
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	wg     sync.WaitGroup

	mu     sync.Mutex
	byPath map[string]Handle
	paths  map[Handle]string
	states map[Handle]LoadState

	doneMu sync.Mutex
	done   []loadResult
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithWorkers sets the number of concurrent decodes
func WithWorkers(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithLogger sets the logger for load failures
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader registers or replaces the decoder for an extension such as ".png"
func WithLoader(ext string, fn LoadFunc) ServerOption {
	return func(s *Server) {
		s.loaders[strings.ToLower(ext)] = fn
	}
}

// NewServer creates a server reading from root and publishing into images
func NewServer(root fs.FS, images *Assets[Image], opts ...ServerOption) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		root:    root,
		images:  images,
		loaders: DefaultLoaders(),
		logger:  slog.Default(),
		ctx:     ctx,
		cancel:  cancel,
		sem:     semaphore.NewWeighted(DefaultLoadWorkers),
		byPath:  make(map[string]Handle),
		paths:   make(map[Handle]string),
		states:  make(map[Handle]LoadState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Images returns the collection loads are published into
func (s *Server) Images() *Assets[Image] {
	return s.images
}

// Load starts loading path and returns its handle immediately
// Repeated loads of the same path return the same handle and never reload,
// including after a failure
func (s *Server) Load(path string) Handle {
	s.mu.Lock()
	if h, ok := s.byPath[path]; ok {
		s.mu.Unlock()
		return h
	}
	h := NewHandle()
	s.byPath[path] = h
	s.paths[h] = path
	s.states[h] = Loading
	s.mu.Unlock()

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		img, err := s.decode(path)
		s.doneMu.Lock()
		s.done = append(s.done, loadResult{handle: h, image: img, err: err})
		s.doneMu.Unlock()
	})
	return h
}

func (s *Server) decode(path string) (*Image, error) {
	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		return nil, errors.Wrap(err, "load cancelled")
	}
	defer s.sem.Release(1)

	fn, ok := s.loaders[extension(path)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownExtension, "%q", extension(path))
	}

	f, err := s.root.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open asset")
	}
	defer f.Close()

	return fn(f)
}

// LoadState reports the state of h as of the last ApplyCompleted
func (s *Server) LoadState(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[h]
}

// Path returns the path h was loaded from
func (s *Server) Path(h Handle) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paths[h]
	return p, ok
}

// ApplyCompleted publishes finished loads and returns how many were applied
// Failures are logged once and the handle stays Failed
func (s *Server) ApplyCompleted() int {
	s.doneMu.Lock()
	done := s.done
	s.done = nil
	s.doneMu.Unlock()

	for _, r := range done {
		path, _ := s.Path(r.handle)
		state := Loaded
		if r.err != nil {
			state = Failed
			s.logger.Error("Failed to load asset", "path", path, "error", r.err)
		} else {
			s.images.Insert(r.handle, *r.image)
			s.logger.Debug("Asset loaded", "path", path, "layers", r.image.Layers)
		}

		s.mu.Lock()
		s.states[r.handle] = state
		s.mu.Unlock()
	}
	return len(done)
}

// Wait blocks until every started load has finished decoding
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close cancels queued loads and waits for running ones
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}
