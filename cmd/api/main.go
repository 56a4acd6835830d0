package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"moodmeal/internal/api"
	"moodmeal/internal/cart"
	"moodmeal/internal/config"
	"moodmeal/internal/logging"
	"moodmeal/internal/meal"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := newServer(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build server")
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("shutdown failed")
	}
	logging.Info().Msg("server exited")
}

// newServer wires the dataset, recommender, cart store and router.
func newServer(cfg *config.Config) (*http.Server, error) {
	dataset, err := meal.Default()
	if err != nil {
		return nil, fmt.Errorf("error loading meal dataset: %w", err)
	}

	var opts []meal.Option
	if cfg.Recommend.Seed != 0 {
		opts = append(opts, meal.WithRand(meal.NewSeededRand(cfg.Recommend.Seed)))
	}
	recommender, err := meal.NewRecommender(dataset, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating recommender: %w", err)
	}

	pricer := cart.NewPricer(cart.PricingConfig{
		PremiumKeyword:    cfg.Cart.PremiumKeyword,
		PremiumMultiplier: cfg.Cart.PremiumMultiplier,
	}, nil)
	cartStore := cart.NewStore(pricer, cart.StoreConfig{
		TaxPercent: cfg.Cart.TaxPercent,
		SessionTTL: cfg.Cart.SessionTTL,
	})

	handler := api.NewHandler(recommender, dataset, cartStore)

	r, err := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     cfg.Metrics.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating router: %w", err)
	}

	logging.Info().
		Int("samples", dataset.Len()).
		Int("max_score", recommender.MaxScore()).
		Msg("meal dataset loaded")

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
	}, nil
}
