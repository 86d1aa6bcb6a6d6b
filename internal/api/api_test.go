package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ItsNotGoodName/x-splitmon/internal/app"
	"github.com/ItsNotGoodName/x-splitmon/internal/mosaic"
	"github.com/ItsNotGoodName/x-splitmon/internal/region"
	"github.com/ItsNotGoodName/x-splitmon/internal/xrandr"
	"github.com/danielgtaylor/huma/v2/humatest"
)

type fakeController struct {
	toggleErr error
	states    map[region.Region]bool
	monitors  []xrandr.Monitor
}

func newFakeController() *fakeController {
	return &fakeController{states: make(map[region.Region]bool)}
}

func (c *fakeController) Toggle(ctx context.Context, r region.Region, enabled bool) (bool, error) {
	if c.toggleErr != nil {
		return false, c.toggleErr
	}
	if c.states[r] == enabled {
		return false, nil
	}
	c.states[r] = enabled
	return true, nil
}

func (c *fakeController) States(ctx context.Context) (map[region.Region]bool, error) {
	states := make(map[region.Region]bool, len(region.All()))
	for _, r := range region.All() {
		states[r] = c.states[r]
	}
	return states, nil
}

func (c *fakeController) Monitors(ctx context.Context) ([]xrandr.Monitor, error) {
	return c.monitors, nil
}

func TestSetRegion(t *testing.T) {
	_, humaAPI := humatest.New(t)
	Register(humaAPI, newFakeController())

	resp := humaAPI.Put("/api/regions/left_half", map[string]any{"enabled": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", resp.Code, http.StatusOK, resp.Body.String())
	}

	var body SetRegionBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Region != "left_half" || !body.Enabled || !body.Changed {
		t.Errorf("got %+v, want left_half enabled and changed", body)
	}

	// Same state again reports no change.
	resp = humaAPI.Put("/api/regions/left_half", map[string]any{"enabled": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", resp.Code, http.StatusOK)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Changed {
		t.Errorf("got %+v, want changed false", body)
	}
}

func TestSetRegionUnknown(t *testing.T) {
	_, humaAPI := humatest.New(t)
	Register(humaAPI, newFakeController())

	resp := humaAPI.Put("/api/regions/left", map[string]any{"enabled": true})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d: %s", resp.Code, http.StatusNotFound, resp.Body.String())
	}
}

func TestSetRegionCaptureConflict(t *testing.T) {
	controller := newFakeController()
	controller.toggleErr = app.ErrCaptureActive

	_, humaAPI := humatest.New(t)
	Register(humaAPI, controller)

	resp := humaAPI.Put("/api/regions/select_region", map[string]any{"enabled": true})
	if resp.Code != http.StatusConflict {
		t.Fatalf("got status %d, want %d: %s", resp.Code, http.StatusConflict, resp.Body.String())
	}
}

func TestSetRegionGatewayError(t *testing.T) {
	controller := newFakeController()
	controller.toggleErr = errors.New("xrandr: exit status 1")

	_, humaAPI := humatest.New(t)
	Register(humaAPI, controller)

	resp := humaAPI.Put("/api/regions/full_screen", map[string]any{"enabled": true})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("got status %d, want %d: %s", resp.Code, http.StatusBadGateway, resp.Body.String())
	}
}

func TestListRegions(t *testing.T) {
	controller := newFakeController()
	controller.states[region.FullScreen] = true

	_, humaAPI := humatest.New(t)
	Register(humaAPI, controller)

	resp := humaAPI.Get("/api/regions")
	if resp.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", resp.Code, http.StatusOK, resp.Body.String())
	}

	var body []RegionState
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, want := len(body), len(region.All()); got != want {
		t.Fatalf("got %d regions, want %d", got, want)
	}
	for _, state := range body {
		want := state.Region == "full_screen"
		if state.Enabled != want {
			t.Errorf("%s: got %v, want %v", state.Region, state.Enabled, want)
		}
	}
}

func TestListMonitors(t *testing.T) {
	controller := newFakeController()
	controller.monitors = []xrandr.Monitor{
		{Index: 0, Name: "eDP-1", Primary: true, Geometry: mosaic.Rect{W: 1920, H: 1080}, Output: "eDP-1"},
		{Index: 1, Name: "XSM-left_half", Geometry: mosaic.Rect{W: 960, H: 1080}},
	}

	_, humaAPI := humatest.New(t)
	Register(humaAPI, controller)

	resp := humaAPI.Get("/api/monitors")
	if resp.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", resp.Code, http.StatusOK, resp.Body.String())
	}

	var body []xrandr.Monitor
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("got %d monitors, want 2", len(body))
	}
	if body[0].Name != "eDP-1" || !body[0].Primary {
		t.Errorf("got %+v, want primary eDP-1", body[0])
	}
}
