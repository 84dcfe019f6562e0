// Package counterfile persists serial counters in single-integer text files.
package counterfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

const defaultRetryDelay = 25 * time.Millisecond

// Counter implements ports.SerialCounter and ports.Sequence over a text file
// holding one decimal integer. Every update holds an exclusive lock on a
// sibling .lock file for the whole read-increment-write.
type Counter struct {
	path       string
	now        func() time.Time
	retryDelay time.Duration
}

var (
	_ ports.SerialCounter = (*Counter)(nil)
	_ ports.Sequence      = (*Counter)(nil)
)

// Option configures a Counter
type Option func(*Counter)

// WithClock sets the clock used for the year prefix
func WithClock(now func() time.Time) Option {
	return func(c *Counter) {
		c.now = now
	}
}

// WithRetryDelay sets how often a busy lock is retried
func WithRetryDelay(d time.Duration) Option {
	return func(c *Counter) {
		c.retryDelay = d
	}
}

// NewCounter creates a counter backed by path
func NewCounter(path string, opts ...Option) *Counter {
	c := &Counter{
		path:       expandHome(path),
		now:        time.Now,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the counter file path
func (c *Counter) Path() string {
	return c.path
}

// NextBase increments the counter and returns the year-prefixed base serial.
// The file is updated even if the caller later abandons the serial.
func (c *Counter) NextBase(ctx context.Context) (string, error) {
	n, err := c.Next(ctx)
	if err != nil {
		return "", err
	}
	return domain.FormatBase(c.now().Year(), n), nil
}

// Next increments the counter and returns the new value
func (c *Counter) Next(ctx context.Context) (int, error) {
	var next int
	err := c.withLock(ctx, func() error {
		current, err := c.read()
		if err != nil {
			return err
		}
		next = current + 1
		return c.write(next)
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Current returns the stored value without changing it
func (c *Counter) Current(ctx context.Context) (int, error) {
	var current int
	err := c.withLock(ctx, func() error {
		var err error
		current, err = c.read()
		return err
	})
	return current, err
}

// Reset stores value, creating the file and its directory when missing
func (c *Counter) Reset(ctx context.Context, value int) error {
	if value < 0 {
		return fmt.Errorf("counter value must not be negative: %d", value)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create counter directory: %w", err)
	}
	return c.withLock(ctx, func() error {
		return c.write(value)
	})
}

func (c *Counter) withLock(ctx context.Context, fn func() error) error {
	lock := flock.New(c.path + ".lock")

	locked, err := lock.TryLockContext(ctx, c.retryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock counter %s: %w", c.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock counter %s", c.path)
	}
	defer lock.Unlock()

	return fn()
}

func (c *Counter) read() (int, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrCounterCorrupt, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrCounterCorrupt, c.path, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %s holds negative value %d", domain.ErrCounterCorrupt, c.path, value)
	}
	return value, nil
}

// write replaces the file through a temp file and rename
func (c *Counter) write(value int) error {
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(value)), 0644); err != nil {
		return fmt.Errorf("failed to write counter: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace counter: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// IsCorrupt reports whether err came from an unreadable counter file
func IsCorrupt(err error) bool {
	return errors.Is(err, domain.ErrCounterCorrupt)
}
