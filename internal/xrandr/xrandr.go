// Package xrandr shells out to the xrandr CLI to create, remove and list
// virtual monitors. It is the only package with effects outside the process.
package xrandr

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
)

const (
	DefaultBin     = "xrandr"
	DefaultSource  = "none"
	DefaultTimeout = 5 * time.Second
)

type Options struct {
	Bin     string
	Prefix  string
	Source  string
	Timeout time.Duration
}

func New(options Options) *Client {
	if options.Bin == "" {
		options.Bin = DefaultBin
	}
	if options.Source == "" {
		options.Source = DefaultSource
	}
	if options.Timeout == 0 {
		options.Timeout = DefaultTimeout
	}
	return &Client{
		bin:     options.Bin,
		prefix:  options.Prefix,
		source:  options.Source,
		timeout: options.Timeout,
	}
}

type Client struct {
	bin     string
	prefix  string
	source  string
	timeout time.Duration
}

// SetSource changes the output device backing newly created virtual
// monitors. Not safe for concurrent use; call from the owning goroutine.
func (c *Client) SetSource(source string) {
	if source == "" {
		source = DefaultSource
	}
	c.source = source
}

// Monitor is one entry of `xrandr --listmonitors`.
type Monitor struct {
	Index     int         `json:"index"`
	Name      string      `json:"name"`
	Primary   bool        `json:"primary"`
	Automatic bool        `json:"automatic"`
	Geometry  mosaic.Rect `json:"geometry"`
	Output    string      `json:"output,omitempty"`
}

// VirtualMonitor is a monitor carrying this client's name prefix, reported
// with the prefix stripped.
type VirtualMonitor struct {
	Name     string
	Geometry mosaic.Rect
}

// SetMonitor defines or redefines the virtual monitor prefix+name.
func (c *Client) SetMonitor(ctx context.Context, name string, r mosaic.Rect) error {
	_, err := c.run(ctx, setMonitorArgs(c.prefix, name, r, c.source)...)
	return err
}

// DelMonitor removes the virtual monitor prefix+name.
func (c *Client) DelMonitor(ctx context.Context, name string) error {
	_, err := c.run(ctx, delMonitorArgs(c.prefix, name)...)
	return err
}

// ListMonitors reports every monitor the display server knows, physical
// outputs included.
func (c *Client) ListMonitors(ctx context.Context) ([]Monitor, error) {
	out, err := c.run(ctx, "--listmonitors")
	if err != nil {
		return nil, err
	}
	return parseMonitors(out)
}

// ListVirtual reports the monitors this client created, stripped back to
// their bare region names.
func (c *Client) ListVirtual(ctx context.Context) ([]VirtualMonitor, error) {
	monitors, err := c.ListMonitors(ctx)
	if err != nil {
		return nil, err
	}
	return filterVirtual(c.prefix, monitors), nil
}

func filterVirtual(prefix string, monitors []Monitor) []VirtualMonitor {
	var virtual []VirtualMonitor
	for _, m := range monitors {
		name, ok := strings.CutPrefix(m.Name, prefix)
		if !ok {
			continue
		}
		virtual = append(virtual, VirtualMonitor{Name: name, Geometry: m.Geometry})
	}
	return virtual
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.bin, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", c.bin, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", c.bin, strings.Join(args, " "), err)
	}
	return string(out), nil
}

func setMonitorArgs(prefix, name string, r mosaic.Rect, source string) []string {
	return []string{"--setmonitor", prefix + name, formatGeometry(r), source}
}

func delMonitorArgs(prefix, name string) []string {
	return []string{"--delmonitor", prefix + name}
}

// formatGeometry renders W/PWxH/PH+X+Y with a 1mm fake physical size, the
// form --setmonitor expects.
func formatGeometry(r mosaic.Rect) string {
	return fmt.Sprintf("%d/1x%d/1+%d+%d", r.W, r.H, r.X, r.Y)
}

var (
	// " 0: +*eDP-1 1920/344x1080/194+0+0  eDP-1"
	monitorRe = regexp.MustCompile(`^\s*(\d+):\s+(\S+)\s+(\S+)(?:\s+(.*))?$`)
	// "1920/344x1080/194+0+0"; the physical-size subfields are ignored
	geometryRe = regexp.MustCompile(`^(\d+)(?:/\d+)?x(\d+)(?:/\d+)?\+(\d+)\+(\d+)$`)
)

func parseMonitors(out string) ([]Monitor, error) {
	var monitors []Monitor
	for _, line := range strings.Split(out, "\n") {
		m := monitorRe.FindStringSubmatch(line)
		if m == nil {
			// "Monitors: N" header or a blank line
			continue
		}

		index, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("monitor index %q: %w", m[1], err)
		}

		name := m[2]
		monitor := Monitor{Index: index, Output: strings.TrimSpace(m[4])}
		for {
			if rest, ok := strings.CutPrefix(name, "+"); ok {
				monitor.Automatic = true
				name = rest
				continue
			}
			if rest, ok := strings.CutPrefix(name, "*"); ok {
				monitor.Primary = true
				name = rest
				continue
			}
			break
		}
		monitor.Name = name

		monitor.Geometry, err = parseGeometry(m[3])
		if err != nil {
			return nil, fmt.Errorf("monitor %q: %w", name, err)
		}

		monitors = append(monitors, monitor)
	}
	return monitors, nil
}

func parseGeometry(s string) (mosaic.Rect, error) {
	m := geometryRe.FindStringSubmatch(s)
	if m == nil {
		return mosaic.Rect{}, fmt.Errorf("malformed geometry %q", s)
	}

	var fields [4]int
	for i := range fields {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return mosaic.Rect{}, fmt.Errorf("malformed geometry %q: %w", s, err)
		}
		fields[i] = n
	}

	return mosaic.Rect{W: fields[0], H: fields[1], X: fields[2], Y: fields[3]}, nil
}
