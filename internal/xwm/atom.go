package xwm

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Atoms holds the interned atoms the app needs beyond the predefined ones.
type Atoms struct {
	WMProtocols        xproto.Atom
	WMDeleteWindow     xproto.Atom
	WMChangeState      xproto.Atom
	NetWMName          xproto.Atom
	NetWMState         xproto.Atom
	NetWMStateAbove    xproto.Atom
	NetWMWindowOpacity xproto.Atom
	UTF8String         xproto.Atom
}

func LoadAtoms(conn *xgb.Conn) (Atoms, error) {
	var atoms Atoms
	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &atoms.WMProtocols},
		{"WM_DELETE_WINDOW", &atoms.WMDeleteWindow},
		{"WM_CHANGE_STATE", &atoms.WMChangeState},
		{"_NET_WM_NAME", &atoms.NetWMName},
		{"_NET_WM_STATE", &atoms.NetWMState},
		{"_NET_WM_STATE_ABOVE", &atoms.NetWMStateAbove},
		{"_NET_WM_WINDOW_OPACITY", &atoms.NetWMWindowOpacity},
		{"UTF8_STRING", &atoms.UTF8String},
	} {
		atom, err := internAtom(conn, a.name)
		if err != nil {
			return Atoms{}, err
		}
		*a.dst = atom
	}

	return atoms, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}

	return reply.Atom, nil
}
