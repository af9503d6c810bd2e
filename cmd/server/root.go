package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/fixture"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/seed"
	"github.com/iliyamo/movie-catalog/internal/service"
)

// serveFlags override the matching environment variables when set.
type serveFlags struct {
	port     string
	fixture  string
	dbDriver string
}

func newRootCmd() *cobra.Command {
	var flags serveFlags

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Movie catalog HTTP API",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.fixture, "fixture", "", "fixture YAML file (default: embedded dataset, env FIXTURE_PATH)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Seed the store and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	for _, c := range []*cobra.Command{root, serve} {
		c.Flags().StringVar(&flags.port, "port", "", "HTTP port (env APP_PORT)")
		c.Flags().StringVar(&flags.dbDriver, "db-driver", "", "sqlite or mysql (env DB_DRIVER)")
	}

	fixtures := &cobra.Command{
		Use:   "fixtures",
		Short: "Load and validate the fixture dataset without serving",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.fixture
			if path == "" {
				path = config.Load().FixturePath
			}
			ds, err := fixture.Load(path)
			if err != nil {
				return err
			}
			counts := seed.Counts{Movies: len(ds.Movies), Directors: len(ds.Directors), Genres: len(ds.Genres)}
			fmt.Fprintf(cmd.OutOrStdout(), "fixture ok: %s\n", counts)
			return nil
		},
	}

	root.AddCommand(serve, fixtures)
	return root
}

func loadConfig(flags serveFlags) (config.Config, error) {
	cfg := config.Load()
	if flags.port != "" {
		cfg.Port = flags.port
	}
	if flags.fixture != "" {
		cfg.FixturePath = flags.fixture
	}
	if flags.dbDriver != "" {
		cfg.DBDriver = flags.dbDriver
	}
	return cfg, cfg.Validate()
}

// buildServer opens and seeds the store and wires every route.  The
// returned cleanup closes the store and Redis.
func buildServer(ctx context.Context, cfg config.Config) (*echo.Echo, func(), error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	repos := seed.Repos{
		Movies:    repository.NewMovieRepo(db),
		Directors: repository.NewDirectorRepo(db),
		Genres:    repository.NewGenreRepo(db),
	}
	ds, err := fixture.Load(cfg.FixturePath)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if _, err := seed.Run(ctx, repos, ds); err != nil {
		db.Close()
		return nil, nil, err
	}

	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		log.Printf("redis: %v; response cache off, rate limiting in-process", err)
	}

	events := config.LoadEventsConfig()
	var publisher handler.EventPublisher = service.NoopPublisher{}
	if events.Enabled {
		publisher = service.NewEventPublisher(events)
		if events.Consume {
			go func() {
				if err := queue.StartCatalogConsumer(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("catalog-events: consumer stopped: %v", err)
				}
			}()
		}
	}

	h := handler.NewCatalogHandler(repos.Movies, repos.Directors, repos.Genres, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e, h)
	router.RegisterCatalog(e, h, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = db.Close()
	}
	return e, cleanup, nil
}

func runServe(parent context.Context, flags serveFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, driver=%s)", addr, cfg.Env, cfg.DBDriver)

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
