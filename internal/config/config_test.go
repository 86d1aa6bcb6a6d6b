package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero value takes defaults",
			in:   Config{},
			want: defaultConfig,
		},
		{
			name: "valid config unchanged",
			in:   Config{MonitorPrefix: "VM-", Source: "eDP-1", BorderColor: "#00ff00", BorderWidth: 5, CaptureOpacity: 0.5},
			want: Config{MonitorPrefix: "VM-", Source: "eDP-1", BorderColor: "#00ff00", BorderWidth: 5, CaptureOpacity: 0.5},
		},
		{
			name: "bad color falls back",
			in:   Config{MonitorPrefix: "VM-", Source: "none", BorderColor: "red", BorderWidth: 3, CaptureOpacity: 0.3},
			want: Config{MonitorPrefix: "VM-", Source: "none", BorderColor: "#ff0000", BorderWidth: 3, CaptureOpacity: 0.3},
		},
		{
			name: "clamps",
			in:   Config{MonitorPrefix: "  ", Source: " ", BorderColor: "#123456", BorderWidth: 100, CaptureOpacity: 3},
			want: Config{MonitorPrefix: "XSM-", Source: "none", BorderColor: "#123456", BorderWidth: 64, CaptureOpacity: 1},
		},
		{
			name: "opacity floor",
			in:   Config{MonitorPrefix: "VM-", Source: "none", BorderColor: "#123456", BorderWidth: 1, CaptureOpacity: 0.01},
			want: Config{MonitorPrefix: "VM-", Source: "none", BorderColor: "#123456", BorderWidth: 1, CaptureOpacity: 0.05},
		},
		{
			name: "negative width takes default",
			in:   Config{MonitorPrefix: "VM-", Source: "none", BorderColor: "#123456", BorderWidth: -2, CaptureOpacity: 0.3},
			want: Config{MonitorPrefix: "VM-", Source: "none", BorderColor: "#123456", BorderWidth: 3, CaptureOpacity: 0.3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.normalized(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"#ff0000", 0xff0000},
		{"#00ff00", 0x00ff00},
		{"#123abc", 0x123abc},
		{"#FFFFFF", 0xffffff},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %s", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): got %#x, want %#x", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "ff0000", "#ff000", "#ff00000", "#zzzzzz", "red"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q): want error, got nil", in)
		}
	}
}

func TestDriverRoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), name)
			driver := NewDriver(filePath)

			want := Config{MonitorPrefix: "VM-", Source: "eDP-1", BorderColor: "#336699", BorderWidth: 7, CaptureOpacity: 0.4}
			if err := driver.Write(want); err != nil {
				t.Fatalf("Write: %s", err)
			}

			got, err := driver.Read()
			if err != nil {
				t.Fatalf("Read: %s", err)
			}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}

			if _, err := os.Stat(filePath + ".tmp"); !os.IsNotExist(err) {
				t.Errorf("temp file left behind: %v", err)
			}
		})
	}
}

func TestDriverReadMissing(t *testing.T) {
	driver := NewYAML(filepath.Join(t.TempDir(), "missing.yaml"))

	got, err := driver.Read()
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	if got != defaultConfig {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestNewStoreCreatesFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "config.yaml")

	store, err := NewStore(NewYAML(filePath))
	if err != nil {
		t.Fatalf("NewStore: %s", err)
	}

	if _, err := os.Stat(filePath); err != nil {
		t.Fatalf("config file not created: %s", err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig: %s", err)
	}
	if cfg != defaultConfig {
		t.Errorf("got %+v, want defaults", cfg)
	}
}
