package app

import (
	"context"

	"github.com/ItsNotGoodName/x-splitmon/internal/region"
	"github.com/ItsNotGoodName/x-splitmon/internal/xrandr"
	"github.com/google/uuid"
)

type controlKind int

const (
	controlToggle controlKind = iota
	controlStates
	controlMonitors
)

type controlRequest struct {
	id      string
	kind    controlKind
	region  region.Region
	enabled bool
	replyC  chan controlReply
}

type controlReply struct {
	changed  bool
	states   map[region.Region]bool
	monitors []xrandr.Monitor
	err      error
}

// Control is the handle other goroutines use to reach the X goroutine.
// Requests are served between X events, one at a time, so callers never race
// the event loop.
type Control struct {
	requestC chan controlRequest
}

func NewControl() Control {
	return Control{requestC: make(chan controlRequest)}
}

func (c Control) Requests() <-chan controlRequest {
	return c.requestC
}

func (c Control) Toggle(ctx context.Context, r region.Region, enabled bool) (bool, error) {
	reply, err := c.do(ctx, controlRequest{
		id:      uuid.NewString(),
		kind:    controlToggle,
		region:  r,
		enabled: enabled,
	})
	if err != nil {
		return false, err
	}

	return reply.changed, reply.err
}

func (c Control) States(ctx context.Context) (map[region.Region]bool, error) {
	reply, err := c.do(ctx, controlRequest{id: uuid.NewString(), kind: controlStates})
	if err != nil {
		return nil, err
	}

	return reply.states, reply.err
}

func (c Control) Monitors(ctx context.Context) ([]xrandr.Monitor, error) {
	reply, err := c.do(ctx, controlRequest{id: uuid.NewString(), kind: controlMonitors})
	if err != nil {
		return nil, err
	}

	return reply.monitors, reply.err
}

func (c Control) do(ctx context.Context, req controlRequest) (controlReply, error) {
	// Buffered so the X goroutine never blocks on a caller that gave up.
	req.replyC = make(chan controlReply, 1)

	select {
	case <-ctx.Done():
		return controlReply{}, ctx.Err()
	case c.requestC <- req:
	}

	select {
	case <-ctx.Done():
		return controlReply{}, ctx.Err()
	case reply := <-req.replyC:
		return reply, nil
	}
}
