package integration

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/residency/internal/api/grpc/residency"
	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
	"github.com/oshokin/residency/internal/service/common"
	"github.com/oshokin/residency/internal/service/query"
	"github.com/oshokin/residency/internal/service/server"
)

// freeAddress reserves a free local port and releases it for the server.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startGRPC starts the server with a temporary config and crossing log.
// Returns the config path and a stop function.
func startGRPC(t *testing.T, addr, log string) (configPath string, stop func()) {
	t.Helper()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "server-crossings.txt")
	require.NoError(t, os.WriteFile(logPath, []byte(log), config.DefaultFilePermissions))

	configPath = filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(configPath, &config.Config{
		LogFile:       logPath,
		ServerAddress: addr,
		Timeout:       5 * time.Second,
	}))

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		options := &server.Options{
			ConfigPath:    configPath,
			ListenAddress: addr,
		}

		_ = server.Run(ctx, options) //nolint:errcheck // Failures surface as client errors.
	}()

	// Wait briefly for server to start listening.
	time.Sleep(150 * time.Millisecond)

	return configPath, func() {
		cancel()
		time.Sleep(100 * time.Millisecond)
	}
}

// TestGRPC_Evaluate drives the real server with the client.
func TestGRPC_Evaluate(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)

	_, stop := startGRPC(t, addr, "01.04.21 in\n")
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	today := residency.Date(2022, time.March, 15)

	// Server log.
	result, err := c.Evaluate(ctx, &api.EvaluateRequest{Today: today})
	require.NoError(t, err)
	require.Equal(t, 348, result.Days)
	require.True(t, result.IsResident)
	require.Equal(t, residency.Date(2021, time.October, 1), result.ExpiresAt)

	// Supplied crossings.
	result, err = c.Evaluate(ctx, &api.EvaluateRequest{
		Today: today,
		Crossings: []residency.Event{
			residency.NewEvent(residency.Exit, residency.Date(2022, time.March, 14)),
			residency.NewEvent(residency.Enter, residency.Date(2022, time.January, 10)),
		},
		Actor: &api.Actor{Hostname: "test-hostname", Username: "test-user"},
	})
	require.NoError(t, err)
	require.Equal(t, 63, result.Days)
	require.False(t, result.IsResident)
	require.True(t, result.ExpiresAt.IsZero())

	// Invalid sequence.
	_, err = c.Evaluate(ctx, &api.EvaluateRequest{
		Today: today,
		Crossings: []residency.Event{
			residency.NewEvent(residency.Enter, residency.Date(2022, time.January, 10)),
			residency.NewEvent(residency.Enter, residency.Date(2022, time.February, 10)),
		},
	})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
}

// TestGRPC_Query runs the query service against the real server.
func TestGRPC_Query(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)

	configPath, stop := startGRPC(t, addr, "01.04.21 in\n")
	defer stop()

	localLog := filepath.Join(t.TempDir(), "local.txt")
	require.NoError(t, os.WriteFile(localLog, []byte("10.01.22 in\n14.03.22 out\n"), config.DefaultFilePermissions))

	var out bytes.Buffer

	err := query.Run(context.Background(), &query.Options{
		ConfigPath: configPath,
		LogFile:    localLog,
		Today:      "2022-03-15",
		Out:        &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "1. Entered Russia 2022-01-10")
	require.Contains(t, out.String(), "NOT a tax resident of Russia")

	out.Reset()

	err = query.Run(context.Background(), &query.Options{
		ConfigPath:   configPath,
		Today:        "2022-03-15",
		UseServerLog: true,
		Out:          &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "you're a tax resident of Russia")
	require.Contains(t, out.String(), "Your tax residency expires: 2021-10-01")
}
