package config

import (
	"fmt"
	"strconv"
	"strings"
)

var defaultConfig = Config{
	MonitorPrefix:  "XSM-",
	Source:         "none",
	BorderColor:    "#ff0000",
	BorderWidth:    3,
	CaptureOpacity: 0.3,
}

type Config struct {
	// MonitorPrefix names virtual monitors "<prefix><region>". It is fixed
	// for the lifetime of the process because startup reconciliation matches
	// existing monitors by it.
	MonitorPrefix string `yaml:"monitor_prefix" json:"monitor_prefix"`
	// Source is the output device backing virtual monitors, "none" for a
	// plain region of the screen.
	Source         string  `yaml:"source" json:"source"`
	BorderColor    string  `yaml:"border_color" json:"border_color"`
	BorderWidth    int     `yaml:"border_width" json:"border_width"`
	CaptureOpacity float64 `yaml:"capture_opacity" json:"capture_opacity"`
}

// normalized fills unset fields with defaults and clamps the rest to usable
// ranges.
func (c Config) normalized() Config {
	c.MonitorPrefix = strings.TrimSpace(c.MonitorPrefix)
	if c.MonitorPrefix == "" {
		c.MonitorPrefix = defaultConfig.MonitorPrefix
	}

	if strings.TrimSpace(c.Source) == "" {
		c.Source = defaultConfig.Source
	}

	if _, err := ParseColor(c.BorderColor); err != nil {
		c.BorderColor = defaultConfig.BorderColor
	}

	if c.BorderWidth <= 0 {
		c.BorderWidth = defaultConfig.BorderWidth
	} else if c.BorderWidth > 64 {
		c.BorderWidth = 64
	}

	if c.CaptureOpacity <= 0 {
		c.CaptureOpacity = defaultConfig.CaptureOpacity
	} else if c.CaptureOpacity > 1 {
		c.CaptureOpacity = 1
	} else if c.CaptureOpacity < 0.05 {
		c.CaptureOpacity = 0.05
	}

	return c
}

// ParseColor converts "#rrggbb" into an X pixel value for a true color
// visual.
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return uint32(v), nil
}
