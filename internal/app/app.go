// Package app ties the panel, the capture flow and xrandr together around a
// single X event loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-splitmon/internal/bus"
	"github.com/ItsNotGoodName/x-splitmon/internal/config"
	"github.com/ItsNotGoodName/x-splitmon/internal/xwm"
	"github.com/thejerf/suture/v4"
)

var errQuit = fmt.Errorf("quit")

// Service runs the X event loop. It owns the X connection and comes back
// with a fresh one when the supervisor restarts it, re-adopting whatever
// virtual monitors are still applied.
type Service struct {
	store   config.Store
	control Control
	hub     *bus.Hub[config.EventChanged]
}

func NewService(store config.Store, control Control, hub *bus.Hub[config.EventChanged]) Service {
	return Service{
		store:   store,
		control: control,
		hub:     hub,
	}
}

func (Service) String() string {
	return "app.Service"
}

func (s Service) Serve(ctx context.Context) error {
	cfg, err := s.store.GetConfig()
	if err != nil {
		return err
	}

	conn, err := xwm.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock WaitForEvent when the supervisor shuts us down.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	model, err := NewModel(conn, cfg)
	if err != nil {
		return err
	}

	if err := model.manager.Reconcile(ctx); err != nil {
		slog.Warn("Failed to reconcile virtual monitors", "error", err)
	}

	if err := model.renderPanel(); err != nil {
		return err
	}

	msgC := make(chan xwm.Msg)
	go xwm.ReceiveEvents(ctx, conn, msgC)

	configC, unsubscribe := s.hub.Subscribe(ctx)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgC:
			if !ok {
				return fmt.Errorf("x connection closed")
			}

			if err := model.HandleEvent(ctx, msg); err != nil {
				if errors.Is(err, errQuit) {
					return suture.ErrTerminateSupervisorTree
				}

				return err
			}
		case req := <-s.control.Requests():
			model.HandleControl(ctx, req)
		case event := <-configC:
			model.ApplyConfig(event.Config)
		}
	}
}
