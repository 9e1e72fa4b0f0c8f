package crossings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
)

// Repository defines access to the crossing log.
type Repository interface {
	Load(ctx context.Context) ([]residency.Event, error)
	Append(ctx context.Context, event residency.Event) error
}

// FileRepository keeps the crossing log in a text file on disk.
type FileRepository struct {
	// path is the filesystem location of the log.
	path string
	// layout is the Go time layout of record dates.
	layout string
	// mu serializes access to the log file.
	mu sync.Mutex
}

// ErrNotFound is returned when the log file does not exist yet.
var ErrNotFound = errors.New("crossing log not found")

// NewFileRepository creates a repository for the log at path with dates in layout.
func NewFileRepository(path, layout string) *FileRepository {
	if layout == "" {
		layout = config.DefaultDateLayout
	}

	return &FileRepository{
		path:   filepath.Clean(path),
		layout: layout,
	}
}

// Path returns the location of the log file.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads every crossing from disk in file order.
func (r *FileRepository) Load(_ context.Context) ([]residency.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Append validates the log extended with event and writes the record at the end of the file.
// A missing file is created.
func (r *FileRepository) Append(_ context.Context, event residency.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := r.read()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	events, err := ParseLog(bytes.NewReader(contents), r.layout)
	if err != nil {
		return fmt.Errorf("decode crossing log %s: %w", r.path, err)
	}

	if !residency.Validate(residency.Sort(append(events, event))) {
		return fmt.Errorf("append %s: %w", FormatRecord(event, r.layout), residency.ErrInvalidSequence)
	}

	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("open crossing log: %w", err)
	}

	record := FormatRecord(event, r.layout) + "\n"
	if len(contents) > 0 && !bytes.HasSuffix(contents, []byte("\n")) {
		record = "\n" + record
	}

	if _, err = file.WriteString(record); err != nil {
		_ = file.Close()

		return fmt.Errorf("write crossing log: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close crossing log: %w", err)
	}

	return nil
}

// read returns the raw log; callers hold mu.
func (r *FileRepository) read() ([]byte, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read crossing log: %w", err)
	}

	return contents, nil
}

// load reads and parses the log; callers hold mu.
func (r *FileRepository) load() ([]residency.Event, error) {
	contents, err := r.read()
	if err != nil {
		return nil, err
	}

	events, err := ParseLog(bytes.NewReader(contents), r.layout)
	if err != nil {
		return nil, fmt.Errorf("decode crossing log %s: %w", r.path, err)
	}

	return events, nil
}
