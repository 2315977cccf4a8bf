package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/classkit/wordcloud/internal/api"
	"github.com/classkit/wordcloud/pkg/cache"
	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/pipeline"
	"github.com/classkit/wordcloud/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after the context is canceled.
const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve command that runs the HTTP API.
func newServeCmd() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the word-cloud HTTP API",
		Long: `Serve starts the session API: session and submission CRUD plus live
cloud artifact endpoints. Configuration comes from a TOML file; the
--listen flag overrides the configured address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cfg serveConfig) error {
	logger := loggerFromContext(ctx)

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	c, err := newServeCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}

	// Prefix keys so a shared redis database stays navigable.
	keyer := cache.NewScopedKeyer(nil, appName+":")
	runner := pipeline.NewRunner(c, keyer, logger)
	defer runner.Close()

	srv := api.NewServer(st, runner, logger)
	srv.Defaults = layoutDefaults(cfg.Layout)

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// newStore builds the configured store backend.
func newStore(ctx context.Context, cfg storeConfig) (store.Store, error) {
	switch cfg.Backend {
	case storeMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}

// newServeCache builds the configured cache backend. File-cache setup
// failures fall back to no caching rather than refusing to start.
func newServeCache(ctx context.Context, cfg cacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case cacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case cacheNone:
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// layoutDefaults maps the config's layout section onto pipeline options.
func layoutDefaults(layout cloud.Config) pipeline.Options {
	return pipeline.Options{
		Width:       layout.CanvasWidth,
		Height:      layout.CanvasHeight,
		MinFontSize: layout.MinFontSize,
		MaxFontSize: layout.MaxFontSize,
		FontScale:   layout.FontScale,
		Curve:       layout.CurveExponent,
		Theme:       layout.Theme,
		Padding:     layout.Padding,
		SpiralStep:  layout.SpiralStep,
		AngleStep:   layout.AngleStep,
		MaxAttempts: layout.MaxAttempts,
	}
}
