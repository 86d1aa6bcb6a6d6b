package app

import (
	"errors"

	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
)

// ErrCaptureActive is returned when a capture is started while another one is
// still running.
var ErrCaptureActive = errors.New("capture already active")

// Surface is the drawing side of a capture, implemented by
// xwm.CaptureSurface.
type Surface interface {
	Open() error
	Rubberband(rect mosaic.Rect) error
	Close()
}

// Selector turns pointer events on the capture surface into a completed or
// canceled selection. Exactly one of the two callbacks fires per Start, and
// only after the surface is closed, so callbacks observe the idle selector.
type Selector struct {
	surface Surface

	capturing bool
	dragging  bool
	beginX    int
	beginY    int
	endX      int
	endY      int
	complete  func(rect mosaic.Rect)
	cancel    func()
}

func NewSelector(surface Surface) *Selector {
	return &Selector{surface: surface}
}

// Active reports whether a capture is running.
func (s *Selector) Active() bool {
	return s.capturing
}

// Start opens the capture surface. complete receives the dragged rectangle,
// cancel fires when the capture is aborted.
func (s *Selector) Start(complete func(rect mosaic.Rect), cancel func()) error {
	if s.capturing {
		return ErrCaptureActive
	}

	if err := s.surface.Open(); err != nil {
		return err
	}

	s.capturing = true
	s.dragging = false
	s.complete = complete
	s.cancel = cancel
	return nil
}

func (s *Selector) PointerDown(x, y int) {
	if !s.capturing {
		return
	}

	s.dragging = true
	s.beginX, s.beginY = x, y
	s.endX, s.endY = x, y
}

func (s *Selector) PointerMove(x, y int) error {
	if !s.capturing || !s.dragging {
		return nil
	}

	s.endX, s.endY = x, y
	return s.surface.Rubberband(s.rect())
}

// PointerUp ends the drag and completes the capture. Releases without a
// preceding press are ignored.
func (s *Selector) PointerUp(x, y int) {
	if !s.capturing || !s.dragging {
		return
	}

	s.endX, s.endY = x, y
	rect := s.rect()

	complete := s.complete
	s.finish()
	complete(rect)
}

// Cancel aborts a running capture. It is a no-op when idle.
func (s *Selector) Cancel() {
	if !s.capturing {
		return
	}

	cancel := s.cancel
	s.finish()
	cancel()
}

// Expose redraws the rubberband after the overlay got damaged.
func (s *Selector) Expose() error {
	if !s.capturing || !s.dragging {
		return nil
	}

	return s.surface.Rubberband(s.rect())
}

func (s *Selector) rect() mosaic.Rect {
	return mosaic.Normalize(s.beginX, s.beginY, s.endX, s.endY)
}

func (s *Selector) finish() {
	s.surface.Close()
	s.capturing = false
	s.dragging = false
	s.complete = nil
	s.cancel = nil
}
