package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeWorkspace struct {
	mu       sync.Mutex
	panes    []domain.Pane
	focused  domain.PaneID
	hasFocus bool
	roots    map[domain.PaneID]domain.RootKind
	rootErr  map[domain.PaneID]error
	closeErr map[domain.PaneID]error
	closed   []domain.PaneID
}

func newFakeWorkspace(panes ...domain.Pane) *fakeWorkspace {
	return &fakeWorkspace{
		panes:    panes,
		roots:    map[domain.PaneID]domain.RootKind{},
		rootErr:  map[domain.PaneID]error{},
		closeErr: map[domain.PaneID]error{},
	}
}

func (w *fakeWorkspace) Panes(_ context.Context) ([]domain.Pane, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]domain.Pane(nil), w.panes...), nil
}

func (w *fakeWorkspace) FocusedPane(_ context.Context) (domain.PaneID, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.focused, w.hasFocus, nil
}

func (w *fakeWorkspace) ResolveRoot(_ context.Context, id domain.PaneID) (domain.RootKind, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rootErr[id]; err != nil {
		return "", err
	}
	if root, ok := w.roots[id]; ok {
		return root, nil
	}

	return domain.RootMain, nil
}

func (w *fakeWorkspace) ClosePane(_ context.Context, id domain.PaneID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.closeErr[id]; err != nil {
		return err
	}
	w.closed = append(w.closed, id)

	for i, pane := range w.panes {
		if pane.ID == id {
			w.panes = append(w.panes[:i], w.panes[i+1:]...)
			break
		}
	}

	return nil
}

func (w *fakeWorkspace) closedPanes() []domain.PaneID {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]domain.PaneID(nil), w.closed...)
}

// fakeSink keeps sink contents in memory and can simulate create races
// and I/O failures.
type fakeSink struct {
	mu        sync.Mutex
	files     map[string]string
	createErr error
	appendErr error
	existsErr error
	// reportMissing forces Exists to answer false, simulating a racing
	// creator that wins between the check and the create.
	reportMissing bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{files: map[string]string{}}
}

func (s *fakeSink) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.existsErr != nil {
		return false, s.existsErr
	}
	if s.reportMissing {
		return false, nil
	}
	_, ok := s.files[path]
	return ok, nil
}

func (s *fakeSink) Create(_ context.Context, path string, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.files[path]; ok {
		return domain.ErrSinkExists
	}
	s.files[path] = content
	return nil
}

func (s *fakeSink) AppendLine(_ context.Context, path string, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appendErr != nil {
		return s.appendErr
	}
	s.files[path] += line + "\n"
	return nil
}

func (s *fakeSink) EnsureParent(_ context.Context, _ string) error {
	return nil
}

func (s *fakeSink) content(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.files[path]
}

func (s *fakeSink) headerCount(path string) int {
	return strings.Count(s.content(path), "# Closed Tabs Log")
}

// fakeActivitySource feeds scripted events to a manager.
type fakeActivitySource struct {
	events chan domain.ActivityEvent
}

func newFakeActivitySource() *fakeActivitySource {
	return &fakeActivitySource{events: make(chan domain.ActivityEvent, 16)}
}

func (s *fakeActivitySource) Subscribe(_ context.Context) (<-chan domain.ActivityEvent, func(), error) {
	return s.events, func() {}, nil
}

type fakeStateRepo struct {
	mu    sync.Mutex
	state domain.PersistedState
	saves int
}

func (r *fakeStateRepo) Load(_ context.Context) (domain.PersistedState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state, nil
}

func (r *fakeStateRepo) Save(_ context.Context, state domain.PersistedState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state
	r.saves++
	return nil
}

func (r *fakeStateRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saves
}
