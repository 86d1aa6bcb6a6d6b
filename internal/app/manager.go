package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
	"github.com/ItsNotGoodName/x-splitmon/internal/region"
	"github.com/ItsNotGoodName/x-splitmon/internal/xrandr"
)

// Gateway applies virtual monitors to the X server, implemented by
// xrandr.Client.
type Gateway interface {
	SetMonitor(ctx context.Context, name string, r mosaic.Rect) error
	DelMonitor(ctx context.Context, name string) error
	ListVirtual(ctx context.Context) ([]xrandr.VirtualMonitor, error)
}

// Outlines shows and hides the colored frames around enabled regions,
// implemented by xwm.OutlineSet.
type Outlines interface {
	Show(r region.Region, rect mosaic.Rect) error
	Hide(r region.Region) error
}

// Capture runs the drag to select flow, implemented by Selector.
type Capture interface {
	Start(complete func(rect mosaic.Rect), cancel func()) error
	Cancel()
	Active() bool
}

// Manager owns the toggle state and keeps xrandr and the outline frames in
// sync with it.
type Manager struct {
	gateway  Gateway
	outlines Outlines
	capture  Capture
	states   *StateStore
	width    int
	height   int
}

func NewManager(gateway Gateway, outlines Outlines, capture Capture, states *StateStore, width, height int) *Manager {
	return &Manager{
		gateway:  gateway,
		outlines: outlines,
		capture:  capture,
		states:   states,
		width:    width,
		height:   height,
	}
}

// Toggle moves a region to the wanted state. It reports false when the region
// is already there. A failed enable is rolled back so the state never says
// enabled without a monitor behind it.
func (m *Manager) Toggle(ctx context.Context, r region.Region, enabled bool) (bool, error) {
	slog.Info("Toggling region", "region", r, "enabled", enabled)

	if !m.states.Set(r, enabled) {
		return false, nil
	}

	if enabled {
		if err := m.enable(ctx, r); err != nil {
			m.states.Set(r, false)
			return false, err
		}

		return true, nil
	}

	m.disable(ctx, r)
	return true, nil
}

func (m *Manager) enable(ctx context.Context, r region.Region) error {
	if r == region.SelectRegion {
		return m.capture.Start(m.completeSelection, m.cancelSelection)
	}

	rect, err := m.regionRect(r)
	if err != nil {
		return err
	}

	return m.place(ctx, r, rect)
}

// place applies the monitor first and shows the outline only after xrandr
// succeeded, so a failed apply leaves nothing on screen.
func (m *Manager) place(ctx context.Context, r region.Region, rect mosaic.Rect) error {
	if err := m.gateway.SetMonitor(ctx, r.String(), rect); err != nil {
		return err
	}

	if err := m.outlines.Show(r, rect); err != nil {
		slog.Warn("Failed to show outline", "region", r, "error", err)
	}

	return nil
}

// disable cleans up locally even when xrandr fails, otherwise a wedged
// xrandr would leave the region stuck enabled with no way out.
func (m *Manager) disable(ctx context.Context, r region.Region) {
	if r == region.SelectRegion && m.capture.Active() {
		m.capture.Cancel()
		return
	}

	if err := m.outlines.Hide(r); err != nil {
		slog.Warn("Failed to hide outline", "region", r, "error", err)
	}

	if err := m.gateway.DelMonitor(ctx, r.String()); err != nil {
		slog.Warn("Failed to delete virtual monitor", "region", r, "error", err)
	}
}

// completeSelection places the dragged rectangle under the select_region
// name. The capture spans many X events so there is no request context to
// inherit, the gateway applies its own timeout.
func (m *Manager) completeSelection(rect mosaic.Rect) {
	if err := m.place(context.Background(), region.SelectRegion, rect); err != nil {
		slog.Error("Failed to place selected region", "error", err)
		m.states.Set(region.SelectRegion, false)
	}
}

func (m *Manager) cancelSelection() {
	m.states.Set(region.SelectRegion, false)
}

// regionRect resolves a fixed region to its rectangle on this screen.
func (m *Manager) regionRect(r region.Region) (mosaic.Rect, error) {
	if r == region.FullScreen {
		return mosaic.Rect{W: m.width, H: m.height}, nil
	}

	cell, ok := r.Cell()
	if !ok {
		return mosaic.Rect{}, fmt.Errorf("region %s has no fixed cell", r)
	}

	cells, err := mosaic.Partition(m.width, m.height, cell.Parts)
	if err != nil {
		return mosaic.Rect{}, err
	}

	return cells[cell.Index], nil
}

// Reconcile adopts virtual monitors that survived a previous run, so a
// restart resumes the true state instead of resetting every toggle.
func (m *Manager) Reconcile(ctx context.Context) error {
	monitors, err := m.gateway.ListVirtual(ctx)
	if err != nil {
		return err
	}

	for _, monitor := range monitors {
		r, ok := region.Parse(monitor.Name)
		if !ok {
			slog.Debug("Skipping foreign virtual monitor", "name", monitor.Name)
			continue
		}

		m.states.Set(r, true)
		if err := m.outlines.Show(r, monitor.Geometry); err != nil {
			slog.Warn("Failed to show outline", "region", r, "error", err)
		}

		slog.Info("Adopted virtual monitor", "region", r, "geometry", monitor.Geometry)
	}

	return nil
}
