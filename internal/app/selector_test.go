package app

import (
	"errors"
	"testing"

	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
)

type fakeSurface struct {
	openErr error
	opened  int
	closed  int
	rects   []mosaic.Rect
}

func (s *fakeSurface) Open() error {
	if s.openErr != nil {
		return s.openErr
	}
	s.opened++
	return nil
}

func (s *fakeSurface) Rubberband(rect mosaic.Rect) error {
	s.rects = append(s.rects, rect)
	return nil
}

func (s *fakeSurface) Close() {
	s.closed++
}

func TestSelectorDrag(t *testing.T) {
	tests := []struct {
		name         string
		downX, downY int
		upX, upY     int
	}{
		{"right down", 10, 20, 100, 180},
		{"left up", 100, 180, 10, 20},
		{"right up", 10, 180, 100, 20},
		{"left down", 100, 20, 10, 180},
	}
	want := mosaic.Rect{X: 10, Y: 20, W: 90, H: 160}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &fakeSurface{}
			s := NewSelector(surface)

			var completed []mosaic.Rect
			canceled := 0
			err := s.Start(func(rect mosaic.Rect) {
				if s.Active() {
					t.Error("complete fired while still capturing")
				}
				if surface.closed != 1 {
					t.Errorf("complete fired before close: got %d closes", surface.closed)
				}
				completed = append(completed, rect)
			}, func() { canceled++ })
			if err != nil {
				t.Fatalf("start: %v", err)
			}

			s.PointerDown(tt.downX, tt.downY)
			if err := s.PointerMove((tt.downX+tt.upX)/2, (tt.downY+tt.upY)/2); err != nil {
				t.Fatalf("move: %v", err)
			}
			s.PointerUp(tt.upX, tt.upY)

			if len(completed) != 1 {
				t.Fatalf("got %d completions, want 1", len(completed))
			}
			if completed[0] != want {
				t.Errorf("got %+v, want %+v", completed[0], want)
			}
			if canceled != 0 {
				t.Errorf("got %d cancels, want 0", canceled)
			}
		})
	}
}

func TestSelectorRubberband(t *testing.T) {
	surface := &fakeSurface{}
	s := NewSelector(surface)

	if err := s.Start(func(mosaic.Rect) {}, func() {}); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.PointerDown(10, 10)
	if err := s.PointerMove(20, 30); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := s.PointerMove(15, 5); err != nil {
		t.Fatalf("move: %v", err)
	}

	want := []mosaic.Rect{
		{X: 10, Y: 10, W: 10, H: 20},
		{X: 10, Y: 5, W: 5, H: 5},
	}
	if len(surface.rects) != len(want) {
		t.Fatalf("got %d rubberband draws, want %d", len(surface.rects), len(want))
	}
	for i := range want {
		if surface.rects[i] != want[i] {
			t.Errorf("draw %d: got %+v, want %+v", i, surface.rects[i], want[i])
		}
	}
}

func TestSelectorCancel(t *testing.T) {
	surface := &fakeSurface{}
	s := NewSelector(surface)

	completed, canceled := 0, 0
	err := s.Start(func(mosaic.Rect) { completed++ }, func() { canceled++ })
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	s.PointerDown(50, 50)
	s.Cancel()

	if canceled != 1 {
		t.Errorf("got %d cancels, want 1", canceled)
	}
	if completed != 0 {
		t.Errorf("got %d completions, want 0", completed)
	}
	if s.Active() {
		t.Error("selector still active after cancel")
	}
	if surface.closed != 1 {
		t.Errorf("got %d closes, want 1", surface.closed)
	}

	// A second cancel while idle must not fire the callback again.
	s.Cancel()
	if canceled != 1 {
		t.Errorf("after idle cancel: got %d cancels, want 1", canceled)
	}
}

func TestSelectorStartWhileActive(t *testing.T) {
	surface := &fakeSurface{}
	s := NewSelector(surface)

	if err := s.Start(func(mosaic.Rect) {}, func() {}); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.Start(func(mosaic.Rect) {}, func() {}); !errors.Is(err, ErrCaptureActive) {
		t.Fatalf("got %v, want %v", err, ErrCaptureActive)
	}
	if surface.opened != 1 {
		t.Errorf("got %d opens, want 1", surface.opened)
	}
}

func TestSelectorRestart(t *testing.T) {
	surface := &fakeSurface{}
	s := NewSelector(surface)

	if err := s.Start(func(mosaic.Rect) {}, func() {}); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.PointerDown(0, 0)
	s.PointerUp(10, 10)

	if err := s.Start(func(mosaic.Rect) {}, func() {}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !s.Active() {
		t.Error("selector not active after restart")
	}
}

func TestSelectorOpenError(t *testing.T) {
	openErr := errors.New("no display")
	s := NewSelector(&fakeSurface{openErr: openErr})

	if err := s.Start(func(mosaic.Rect) {}, func() {}); !errors.Is(err, openErr) {
		t.Fatalf("got %v, want %v", err, openErr)
	}
	if s.Active() {
		t.Error("selector active after failed open")
	}
}

func TestSelectorStrayEvents(t *testing.T) {
	surface := &fakeSurface{}
	s := NewSelector(surface)

	completed, canceled := 0, 0
	err := s.Start(func(mosaic.Rect) { completed++ }, func() { canceled++ })
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Motion and release before any press are ignored.
	if err := s.PointerMove(5, 5); err != nil {
		t.Fatalf("move: %v", err)
	}
	s.PointerUp(5, 5)

	if completed != 0 || canceled != 0 {
		t.Errorf("got %d completions and %d cancels, want 0 and 0", completed, canceled)
	}
	if len(surface.rects) != 0 {
		t.Errorf("got %d rubberband draws, want 0", len(surface.rects))
	}
	if !s.Active() {
		t.Error("selector dropped out of the capture")
	}
}
