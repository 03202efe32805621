package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
)

const (
	sinkDirMode  = 0o700
	sinkFileMode = 0o600
)

// Sink is the OS-backed durable text sink. Create is exclusive
// (O_CREATE|O_EXCL) and maps "already exists" to domain.ErrSinkExists
// so the history mirror can fall back to appending when it loses a
// creation race.
type Sink struct {
	mu sync.Mutex
}

var _ ports.TextSink = (*Sink)(nil)

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat sink file %q: %w", path, err)
	}

	return true, nil
}

func (s *Sink) Create(ctx context.Context, path string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sinkFileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create sink file %q: %w", path, domain.ErrSinkExists)
		}
		return fmt.Errorf("create sink file %q: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write sink file %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close sink file %q: %w", path, err)
	}

	return nil
}

func (s *Sink) AppendLine(ctx context.Context, path string, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, sinkFileMode)
	if err != nil {
		return fmt.Errorf("open sink file %q: %w", path, err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to sink file %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close sink file %q: %w", path, err)
	}

	return nil
}

func (s *Sink) EnsureParent(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}

	// MkdirAll already tolerates an existing directory, so a concurrent
	// creator of the same container is not an error here.
	if err := os.MkdirAll(dir, sinkDirMode); err != nil {
		return fmt.Errorf("create sink directory %q: %w", dir, err)
	}

	return nil
}
