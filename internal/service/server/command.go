package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/residency/internal/api/grpc/residency"
	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/logger"
	"github.com/oshokin/residency/internal/metrics"
	"github.com/oshokin/residency/internal/service/common"
)

// Options controls the residency server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// LogFile overrides the crossing log evaluated when requests carry no crossings.
	LogFile string
	// MetricsAddress overrides the Prometheus listen address.
	MetricsAddress string
}

const (
	// metricsReadHeaderTimeout bounds slow clients of the metrics endpoint.
	metricsReadHeaderTimeout = 5 * time.Second
	// metricsShutdownTimeout bounds the graceful shutdown of the metrics endpoint.
	metricsShutdownTimeout = 5 * time.Second
)

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server, and the metrics endpoint when configured,
// and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "residency-server")

	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	metricsAddress := settings.MetricsAddress
	if opts.MetricsAddress != "" {
		metricsAddress = opts.MetricsAddress
	}

	repo := common.OpenLog(settings, opts.LogFile)
	collectors := metrics.New()
	svc := newService(repo, collectors)

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterResidencyServiceServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Residency server listening", "listen_address", listenAddress, "log_file", repo.Path())

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()

		return nil
	})

	if metricsAddress != "" {
		startMetrics(ctx, groupCtx, group, metricsAddress, collectors)
	}

	if err = group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Residency server stopped")

	return nil
}

// startMetrics serves the Prometheus endpoint inside group until groupCtx ends.
func startMetrics(
	ctx context.Context,
	groupCtx context.Context,
	group *errgroup.Group,
	address string,
	collectors *metrics.Metrics,
) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collectors.Handler())

	httpServer := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	logger.InfoKV(ctx, "Metrics endpoint listening", "metrics_address", address)

	group.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve metrics: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
