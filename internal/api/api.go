// Package api exposes the toggle state over HTTP so scripts and desktop
// shortcuts can flip regions without touching the panel.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ItsNotGoodName/x-splitmon/internal/app"
	"github.com/ItsNotGoodName/x-splitmon/internal/build"
	"github.com/ItsNotGoodName/x-splitmon/internal/region"
	"github.com/ItsNotGoodName/x-splitmon/internal/xrandr"
	"github.com/danielgtaylor/huma/v2"
)

// Controller is the slice of the app the API talks to, implemented by
// app.Control.
type Controller interface {
	Toggle(ctx context.Context, r region.Region, enabled bool) (bool, error)
	States(ctx context.Context) (map[region.Region]bool, error)
	Monitors(ctx context.Context) ([]xrandr.Monitor, error)
}

// RegionState is one region and its toggle state.
type RegionState struct {
	Region  string `json:"region" doc:"Region name"`
	Enabled bool   `json:"enabled" doc:"Whether a virtual monitor is applied"`
}

type ListRegionsOutput struct {
	Body []RegionState
}

type SetRegionInput struct {
	Region string `path:"region" doc:"Region name" example:"left_half"`
	Body   struct {
		Enabled bool `json:"enabled" doc:"Desired state"`
	}
}

type SetRegionBody struct {
	Region  string `json:"region"`
	Enabled bool   `json:"enabled"`
	Changed bool   `json:"changed" doc:"False when the region was already in the desired state"`
}

type SetRegionOutput struct {
	Body SetRegionBody
}

type ListMonitorsOutput struct {
	Body []xrandr.Monitor
}

type GetBuildOutput struct {
	Body build.Build
}

func Register(humaAPI huma.API, controller Controller) {
	huma.Register(humaAPI, huma.Operation{
		OperationID: "list-regions",
		Method:      http.MethodGet,
		Path:        "/api/regions",
		Summary:     "List regions",
		Description: "Lists every region and whether it currently has a virtual monitor.",
	}, func(ctx context.Context, _ *struct{}) (*ListRegionsOutput, error) {
		states, err := controller.States(ctx)
		if err != nil {
			return nil, huma.NewError(http.StatusBadGateway, "failed to read region states", err)
		}

		body := make([]RegionState, 0, len(states))
		for _, r := range region.All() {
			body = append(body, RegionState{Region: r.String(), Enabled: states[r]})
		}

		return &ListRegionsOutput{Body: body}, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "set-region",
		Method:      http.MethodPut,
		Path:        "/api/regions/{region}",
		Summary:     "Toggle region",
		Description: "Enables or disables the virtual monitor for a region. Enabling select_region starts an interactive capture.",
	}, func(ctx context.Context, input *SetRegionInput) (*SetRegionOutput, error) {
		r, ok := region.Parse(input.Region)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("unknown region %q", input.Region))
		}

		changed, err := controller.Toggle(ctx, r, input.Body.Enabled)
		if err != nil {
			if errors.Is(err, app.ErrCaptureActive) {
				return nil, huma.Error409Conflict("a capture is already running")
			}

			return nil, huma.NewError(http.StatusBadGateway, "failed to apply region", err)
		}

		return &SetRegionOutput{Body: SetRegionBody{
			Region:  r.String(),
			Enabled: input.Body.Enabled,
			Changed: changed,
		}}, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "list-monitors",
		Method:      http.MethodGet,
		Path:        "/api/monitors",
		Summary:     "List monitors",
		Description: "Lists every monitor the display server reports, physical outputs included.",
	}, func(ctx context.Context, _ *struct{}) (*ListMonitorsOutput, error) {
		monitors, err := controller.Monitors(ctx)
		if err != nil {
			return nil, huma.NewError(http.StatusBadGateway, "failed to list monitors", err)
		}

		return &ListMonitorsOutput{Body: monitors}, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Get build",
	}, func(ctx context.Context, _ *struct{}) (*GetBuildOutput, error) {
		return &GetBuildOutput{Body: build.Current}, nil
	})
}
