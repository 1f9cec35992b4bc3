// Package launcher supervises a locally spawned server process for the
// desktop build: start it, wait for it to answer its health endpoint, and
// stop it on shutdown. The process handle is an explicit value owned by the
// caller, not package state.
package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

// Options configures a server launch.
type Options struct {
	// Command and Args name the server binary to spawn.
	Command string
	Args    []string
	// Env entries are appended to the current environment.
	Env []string
	// BaseURL is where the server will listen, e.g. http://localhost:8080.
	BaseURL string
	// ReadyTimeout bounds the readiness poll. Zero means 15 seconds.
	ReadyTimeout time.Duration
	// PollInterval is the gap between readiness probes. Zero means 250ms.
	PollInterval time.Duration
}

// Process is a handle to a running server child process.
type Process struct {
	cmd     *exec.Cmd
	BaseURL string
}

// Start spawns the server and polls its health endpoint until it answers or
// the timeout elapses. On a failed startup the child is stopped before the
// error is returned.
func Start(ctx context.Context, opts Options) (*Process, error) {
	if opts.ReadyTimeout == 0 {
		opts.ReadyTimeout = 15 * time.Second
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = 250 * time.Millisecond
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launcher: start %s: %w", opts.Command, err)
	}

	p := &Process{cmd: cmd, BaseURL: opts.BaseURL}
	log.Info().Str("command", opts.Command).Int("pid", cmd.Process.Pid).Msg("launcher: server started")

	if err := waitReady(ctx, opts); err != nil {
		log.Error().Err(err).Msg("launcher: server never became ready")
		Stop(p)
		return nil, err
	}
	log.Info().Str("url", opts.BaseURL).Msg("launcher: server ready")
	return p, nil
}

// Stop terminates the child process. Safe to call on an already-exited
// process.
func Stop(p *Process) {
	if p == nil || p.cmd == nil || p.cmd.Process == nil {
		return
	}
	if err := p.cmd.Process.Kill(); err != nil {
		log.Warn().Err(err).Msg("launcher: kill failed")
	}
	_ = p.cmd.Wait()
}

func waitReady(ctx context.Context, opts Options) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(opts.ReadyTimeout)
	url := opts.BaseURL + "/health/json"

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.PollInterval):
		}
		resp, err := client.Get(url)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	}
	return fmt.Errorf("launcher: server not ready within %s", opts.ReadyTimeout)
}
