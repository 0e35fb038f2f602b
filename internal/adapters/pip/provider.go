// Package pip implements the MetadataProvider port by invoking `pip show`.
package pip

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"go.trai.ch/licheck/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds a single pip invocation. pip reads local installation
// metadata; anything slower than this indicates a wedged interpreter.
const DefaultTimeout = 30 * time.Second

// Provider implements ports.MetadataProvider using the pip executable.
type Provider struct {
	mu      sync.RWMutex
	pipPath string
	timeout time.Duration
}

// New creates a Provider that shells out to `pip` on PATH.
func New() *Provider {
	return &Provider{
		pipPath: "pip",
		timeout: DefaultTimeout,
	}
}

// newProviderWithPath creates a Provider with a custom pip executable (used for testing).
func newProviderWithPath(path string) *Provider {
	return &Provider{
		pipPath: path,
		timeout: DefaultTimeout,
	}
}

// SetTimeout adjusts the per-lookup deadline.
func (p *Provider) SetTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d > 0 {
		p.timeout = d
	}
}

// Lookup runs `pip show <name>` and returns its raw output.
// A non-zero exit or empty output means the package is not installed and
// yields domain.ErrPackageNotFound; an exceeded deadline yields
// domain.ErrLookupTimeout; a pip that cannot be run at all yields a lookup
// failure.
func (p *Provider) Lookup(ctx context.Context, name string) ([]byte, error) {
	p.mu.RLock()
	pipPath, timeout := p.pipPath, p.timeout
	p.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pkg := domain.NormalizeName(name)

	//nolint:gosec // pkg is a normalized package name, not arbitrary input
	cmd := exec.CommandContext(ctx, pipPath, "show", pkg)
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			timeoutErr := zerr.With(domain.ErrLookupTimeout, "package", pkg)
			return nil, zerr.With(timeoutErr, "timeout", timeout.String())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			notFound := zerr.With(domain.ErrPackageNotFound, "package", pkg)
			return nil, zerr.With(notFound, "stderr", string(bytes.TrimSpace(exitErr.Stderr)))
		}

		// pip itself could not be run, which is an environment problem
		// rather than a missing package.
		failed := zerr.Wrap(err, domain.ErrLookupFailed.Error())
		return nil, zerr.With(failed, "package", pkg)
	}

	if len(bytes.TrimSpace(out)) == 0 {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", pkg)
	}

	return out, nil
}
