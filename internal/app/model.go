package app

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/x-splitmon/internal/config"
	"github.com/ItsNotGoodName/x-splitmon/internal/xrandr"
	"github.com/ItsNotGoodName/x-splitmon/internal/xwm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Model owns every resource tied to one X connection. All methods run on the
// X goroutine.
type Model struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	atoms  xwm.Atoms
	panel  xwm.Window
	gc     xproto.Gcontext
	fontGC xproto.Gcontext
	layout Panel
	accent uint32
	prefix string

	client   *xrandr.Client
	states   *StateStore
	surface  *xwm.CaptureSurface
	selector *Selector
	outlines *xwm.OutlineSet
	manager  *Manager
}

func NewModel(conn *xgb.Conn, cfg config.Config) (*Model, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	atoms, err := xwm.LoadAtoms(conn)
	if err != nil {
		return nil, err
	}

	layout := NewPanel()

	panel, err := xwm.CreateWindow(conn, atoms, "x-splitmon", uint16(layout.Width), uint16(layout.Height))
	if err != nil {
		return nil, err
	}

	gc, fontGC, err := createPanelGCs(conn, screen, panel.WID)
	if err != nil {
		return nil, err
	}

	accent, err := config.ParseColor(cfg.BorderColor)
	if err != nil {
		return nil, err
	}

	client := xrandr.New(xrandr.Options{
		Prefix: cfg.MonitorPrefix,
		Source: cfg.Source,
	})

	states := NewStateStore()
	outlines := xwm.NewOutlineSet(conn, screen, xwm.OutlineStyle{Pixel: accent, Width: cfg.BorderWidth})
	surface := xwm.NewCaptureSurface(conn, screen, atoms, panel.WID, cfg.CaptureOpacity)
	selector := NewSelector(surface)
	manager := NewManager(client, outlines, selector, states,
		int(screen.WidthInPixels), int(screen.HeightInPixels))

	return &Model{
		conn:     conn,
		screen:   screen,
		atoms:    atoms,
		panel:    panel,
		gc:       gc,
		fontGC:   fontGC,
		layout:   layout,
		accent:   accent,
		prefix:   cfg.MonitorPrefix,
		client:   client,
		states:   states,
		surface:  surface,
		selector: selector,
		outlines: outlines,
		manager:  manager,
	}, nil
}

// HandleEvent dispatches one X event. It returns errQuit when the user asked
// to exit.
func (m *Model) HandleEvent(ctx context.Context, msg xwm.Msg) error {
	switch ev := msg.(type) {
	case xproto.ExposeEvent:
		slog.Debug("ExposeEvent", "event", ev.String())

		if ev.Window == m.panel.WID {
			return m.renderPanel()
		}
		if ev.Window == m.surface.Window() {
			return m.selector.Expose()
		}

		return nil
	case xproto.ButtonPressEvent:
		slog.Debug("ButtonPressEvent", "event", ev.String())

		if m.selector.Active() && ev.Event == m.surface.Window() {
			m.selector.PointerDown(int(ev.EventX), int(ev.EventY))
			return nil
		}

		if ev.Event == m.panel.WID && ev.Detail == xproto.ButtonIndex1 { // Left click
			button, ok := m.layout.HitTest(int(ev.EventX), int(ev.EventY))
			if !ok {
				return nil
			}

			if _, err := m.manager.Toggle(ctx, button.Region, !m.states.Enabled(button.Region)); err != nil {
				slog.Error("Failed to toggle region", "region", button.Region, "error", err)
			}

			return m.renderPanel()
		}

		return nil
	case xproto.MotionNotifyEvent:
		if m.selector.Active() && ev.Event == m.surface.Window() {
			if err := m.selector.PointerMove(int(ev.EventX), int(ev.EventY)); err != nil {
				slog.Error("Failed to draw rubberband", "error", err)
			}
		}

		return nil
	case xproto.ButtonReleaseEvent:
		slog.Debug("ButtonReleaseEvent", "event", ev.String())

		if m.selector.Active() && ev.Event == m.surface.Window() {
			m.selector.PointerUp(int(ev.EventX), int(ev.EventY))
			return m.renderPanel()
		}

		return nil
	case xproto.KeyPressEvent:
		slog.Debug("KeyPressEvent", "detail", ev.Detail)

		if m.selector.Active() {
			if ev.Detail == 9 { // <escape>
				m.selector.Cancel()
				return m.renderPanel()
			}

			return nil
		}

		if ev.Detail == 24 { // q
			slog.Debug("exit: quit key pressed")
			return errQuit
		}

		return nil
	case xproto.ClientMessageEvent:
		if ev.Type == m.atoms.WMProtocols && ev.Format == 32 &&
			xproto.Atom(ev.Data.Data32[0]) == m.atoms.WMDeleteWindow {
			slog.Debug("exit: delete window requested")
			return errQuit
		}

		return nil
	case xproto.ConfigureNotifyEvent:
		slog.Debug("ConfigureNotifyEvent", "event", ev.String())

		return nil
	case xproto.DestroyNotifyEvent:
		// Some window managers kill the whole X connection when the panel is
		// closed, others only destroy the window and leave the connection
		// open (e.g. i3). Treat the latter as a quit too.
		slog.Debug("exit: destroy notify event")

		return errQuit
	case error:
		slog.Debug("X connection error", "error", ev)

		return nil
	default:
		slog.Debug("unknown event", "event", ev)

		return nil
	}
}

// HandleControl serves one request from the HTTP API on the X goroutine.
func (m *Model) HandleControl(ctx context.Context, req controlRequest) {
	slog.Debug("Handling control request", "id", req.id)

	var reply controlReply
	switch req.kind {
	case controlToggle:
		changed, err := m.manager.Toggle(ctx, req.region, req.enabled)
		reply = controlReply{changed: changed, err: err}

		if err := m.renderPanel(); err != nil {
			slog.Warn("Failed to render panel", "error", err)
		}
	case controlStates:
		reply = controlReply{states: m.states.Snapshot()}
	case controlMonitors:
		monitors, err := m.client.ListMonitors(ctx)
		reply = controlReply{monitors: monitors, err: err}
	}

	req.replyC <- reply
}

// ApplyConfig applies a live config change. The monitor prefix is baked into
// every monitor name so it only takes effect on the next start.
func (m *Model) ApplyConfig(cfg config.Config) {
	if cfg.MonitorPrefix != m.prefix {
		slog.Warn("Monitor prefix change requires a restart", "current", m.prefix, "next", cfg.MonitorPrefix)
	}

	if accent, err := config.ParseColor(cfg.BorderColor); err != nil {
		slog.Warn("Ignoring invalid border color", "color", cfg.BorderColor, "error", err)
	} else {
		m.accent = accent
		if err := m.outlines.Restyle(xwm.OutlineStyle{Pixel: accent, Width: cfg.BorderWidth}); err != nil {
			slog.Warn("Failed to restyle outlines", "error", err)
		}
	}

	m.surface.SetOpacity(cfg.CaptureOpacity)
	m.client.SetSource(cfg.Source)

	if err := m.renderPanel(); err != nil {
		slog.Warn("Failed to render panel", "error", err)
	}
}
