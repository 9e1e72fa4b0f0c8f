package crossings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.txt"), "")
	events, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, events)
}

// TestFileRepository_AppendLoad creates the log on first append and reads it back.
func TestFileRepository_AppendLoad(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "crossings.txt")
	repo := NewFileRepository(file, config.DefaultDateLayout)
	ctx := context.Background()

	want := []residency.Event{
		residency.NewEvent(residency.Enter, residency.Date(2022, time.January, 10)),
		residency.NewEvent(residency.Exit, residency.Date(2022, time.March, 14)),
	}

	for _, event := range want {
		require.NoError(t, repo.Append(ctx, event))
	}

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "10.01.22 in\n14.03.22 out\n", string(contents))
}

// TestFileRepository_AppendRejectsInvalidSequence keeps the file unchanged for a bad record.
func TestFileRepository_AppendRejectsInvalidSequence(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "crossings.txt")
	require.NoError(t, os.WriteFile(file, []byte("10.01.22 in"), config.DefaultFilePermissions))

	repo := NewFileRepository(file, config.DefaultDateLayout)
	ctx := context.Background()

	err := repo.Append(ctx, residency.NewEvent(residency.Enter, residency.Date(2022, time.February, 1)))
	require.ErrorIs(t, err, residency.ErrInvalidSequence)

	// A file without a trailing newline still gets one record per line.
	require.NoError(t, repo.Append(ctx, residency.NewEvent(residency.Exit, residency.Date(2022, time.February, 1))))

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "10.01.22 in\n01.02.22 out\n", string(contents))
}
