// Package xwm talks to the X server. It owns the panel window, the outline
// frames around virtual monitors and the fullscreen capture overlay, and it
// pumps X events into a channel the app can select on.
package xwm

import (
	"context"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shape"
)

// Connect opens a connection to the X server and initializes the SHAPE
// extension that outline frames are cut with.
func Connect() (*xgb.Conn, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	if err := shape.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// Msg is an X event or connection error delivered by ReceiveEvents.
type Msg any

// ReceiveEvents forwards X events and errors to msgC until the connection or
// the context closes. It closes msgC on return so the consumer can tell a
// dead connection apart from a quiet one.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, msgC chan<- Msg) {
	defer close(msgC)

	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			// Both event and error are nil which means the connection is
			// closed.
			return
		}

		var msg Msg
		if err != nil {
			msg = err
		} else {
			msg = ev
		}

		select {
		case <-ctx.Done():
			return
		case msgC <- msg:
		}
	}
}
