package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ItsNotGoodName/x-splitmon/internal/build"
	"github.com/ItsNotGoodName/x-splitmon/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API on a chi router behind request ID, logging and
// recovery middleware.
func NewRouter(controller Controller) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	humaAPI := humachi.New(r, huma.DefaultConfig("x-splitmon", build.Current.Version))
	Register(humaAPI, controller)

	return r
}

type Server struct {
	address string
	handler http.Handler
}

func NewServer(address string, handler http.Handler) Server {
	return Server{
		address: address,
		handler: handler,
	}
}

func (Server) String() string {
	return "api.Server"
}

func (s Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.address,
		Handler: s.handler,
	}

	errC := make(chan error, 1)
	go func() { errC <- server.ListenAndServe() }()

	slog.Info("Listening", "address", s.address, "url", "http://"+s.address)

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errC; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
