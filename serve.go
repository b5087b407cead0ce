package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"gitlite-api/internal"
	"gitlite-api/internal/repository"
	"gitlite-api/internal/session"
	"gitlite-api/pkg/auth"
	"gitlite-api/pkg/config"
	"gitlite-api/pkg/httpjson"
	"gitlite-api/pkg/storage"
)

const (
	tokenIssuer     = "gitlite"
	shutdownTimeout = 10 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := config.NewConfigReader().Read()
	if cfg.UsesDefaultJwtSecret() {
		zap.L().Warn("jwtSecret is not configured, using the development default")
	}

	var traceProvider *sdktrace.TracerProvider
	if cfg.Otel.Enabled {
		var err error
		traceProvider, err = initTracer(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				zap.L().Error("failed to flush traces", zap.Error(err))
			}
		}()
	}

	repoStorage, backend, err := storage.Open(ctx, cfg, traceProvider)
	if err != nil {
		return err
	}
	defer func() {
		if err := repoStorage.Close(); err != nil {
			zap.L().Error("failed to close storage", zap.Error(err))
		}
	}()

	issuer := auth.NewTokenIssuer(cfg.JwtSecret, tokenIssuer)

	repositoryService := repository.NewService(repository.NewStore(repoStorage))
	sessionService := session.NewService(cfg, issuer)

	handlers := []internal.GlobalHandler{
		repository.NewHandler(repositoryService, cfg.Server.MaxBodyBytes),
		session.NewHandler(sessionService),
	}

	server := &http.Server{
		Addr:              cfg.Server.GetServerAddress(),
		Handler:           newRouter(cfg, issuer, traceProvider, handlers...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server listening",
			zap.String("address", server.Addr),
			zap.String("storage", string(backend)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	return gracefulShutdown(server, serverErr)
}

// newRouter mounts every handler on one mux and wraps it with identity
// resolution, CORS and, when tracing is on, otelhttp.
func newRouter(
	cfg *config.Config,
	issuer *auth.TokenIssuer,
	traceProvider *sdktrace.TracerProvider,
	handlers ...internal.GlobalHandler,
) http.Handler {
	mux := http.NewServeMux()
	for _, handler := range handlers {
		handler.RegisterRoutes(mux)
	}
	mux.HandleFunc("/api/", httpjson.NotFound)

	var handler http.Handler = auth.Middleware(issuer)(mux)
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.Cors.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(handler)

	if traceProvider != nil {
		handler = otelhttp.NewHandler(handler, serviceName,
			otelhttp.WithTracerProvider(traceProvider),
		)
	}

	return handler
}

func gracefulShutdown(server *http.Server, serverErr <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-serverErr:
		if ok {
			return err
		}
		return nil
	case <-sigChan:
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP shutdown error", zap.Error(err))
		return err
	}

	zap.L().Info("HTTP server stopped")
	return nil
}
