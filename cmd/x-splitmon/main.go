package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ItsNotGoodName/x-splitmon/internal/api"
	"github.com/ItsNotGoodName/x-splitmon/internal/app"
	"github.com/ItsNotGoodName/x-splitmon/internal/build"
	"github.com/ItsNotGoodName/x-splitmon/internal/bus"
	"github.com/ItsNotGoodName/x-splitmon/internal/config"
	"github.com/ItsNotGoodName/x-splitmon/internal/core"
	"github.com/ItsNotGoodName/x-splitmon/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on" default:"127.0.0.1"`
	Port   int    `doc:"port to listen on" default:"8080"`
	Config string `doc:"config file" default:".x-splitmon.yaml"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			bus.SetContext(ctx)

			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			store, err := config.NewStore(config.NewDriver(configFilePath))
			if err != nil {
				return err
			}

			if options.Debug {
				cfg, err := store.GetConfig()
				if err != nil {
					return err
				}
				pp.Println(cfg)
			}

			hub := bus.NewHub[config.EventChanged]().Register()
			control := app.NewControl()

			super := sutureext.NewSimple("x-splitmon")
			sutureext.Add(super, app.NewService(store, control, hub))
			sutureext.Add(super, config.NewWatcher(configFilePath, store))
			sutureext.Add(super, api.NewServer(core.Address(options.Host, options.Port), api.NewRouter(control)))

			return super.Serve(ctx)
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
