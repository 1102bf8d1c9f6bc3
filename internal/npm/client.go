package npm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Supported package managers.
const (
	ManagerNPM  = "npm"
	ManagerPNPM = "pnpm"
	ManagerYarn = "yarn"
)

// Client invokes package-manager commands against a project directory.
type Client struct {
	manager string
	run     RunFunc
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRunFunc sets a custom command runner (used for testing).
func WithRunFunc(fn RunFunc) Option {
	return func(c *Client) {
		c.run = fn
	}
}

// WithLogger sets the logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client for the given package manager.
// Unknown manager names fall back to npm.
func NewClient(manager string, opts ...Option) *Client {
	switch manager {
	case ManagerNPM, ManagerPNPM, ManagerYarn:
	default:
		manager = ManagerNPM
	}
	c := &Client{
		manager: manager,
		run:     defaultRun,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Manager returns the configured package-manager binary name.
func (c *Client) Manager() string {
	return c.manager
}

// Init runs the manager's manifest initializer (e.g. "npm init -y") in dir
// with output inherited by the terminal.
func (c *Client) Init(ctx context.Context, dir string) error {
	args := []string{"init", "-y"}
	if c.manager == ManagerPNPM {
		// pnpm init takes no -y flag; it is always non-interactive.
		args = []string{"init"}
	}
	c.logger.Info("initializing package manifest", "manager", c.manager, "dir", dir)
	_, err := c.run(ctx, CmdSpec{Dir: dir, Name: c.manager, Args: args, Inherit: true})
	if err != nil {
		return fmt.Errorf("%s init: %w", c.manager, err)
	}
	return nil
}

// Install installs the given packages in dir with output inherited by the
// terminal. When dev is true, the packages are saved as development-only
// dependencies. A nil or empty package list installs the manifest's
// declared dependencies.
func (c *Client) Install(ctx context.Context, dir string, pkgs []string, dev bool) error {
	verb := "install"
	if c.manager == ManagerYarn || c.manager == ManagerPNPM {
		if len(pkgs) > 0 {
			verb = "add"
		}
	}
	args := []string{verb}
	if dev && len(pkgs) > 0 {
		switch c.manager {
		case ManagerYarn:
			args = append(args, "--dev")
		case ManagerPNPM:
			args = append(args, "--save-dev")
		default:
			args = append(args, "--save-dev")
		}
	}
	args = append(args, pkgs...)

	c.logger.Info("installing dependencies",
		"manager", c.manager,
		"dev", dev,
		"count", len(pkgs),
	)
	_, err := c.run(ctx, CmdSpec{Dir: dir, Name: c.manager, Args: args, Inherit: true})
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.manager, verb, err)
	}
	return nil
}

// UpdateLatest bumps every manifest dependency to its latest version via
// npm-check-updates and reinstalls. Output is captured so the caller can
// surface it in a warning; a failure here is expected to be tolerated.
func (c *Client) UpdateLatest(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, CmdSpec{
		Dir:  dir,
		Name: "npx",
		Args: []string{"npm-check-updates", "-u"},
	})
	if err != nil {
		return out, fmt.Errorf("npm-check-updates: %w", err)
	}

	reOut, err := c.run(ctx, CmdSpec{
		Dir:  dir,
		Name: c.manager,
		Args: []string{"install"},
	})
	if err != nil {
		return reOut, fmt.Errorf("reinstall after update: %w", err)
	}
	return out, nil
}

// RunScript executes a manifest script (e.g. "dev") in dir, blocking with
// inherited terminal streams until the subprocess exits.
func (c *Client) RunScript(ctx context.Context, dir, script string) error {
	c.logger.Info("running script", "manager", c.manager, "script", script)
	_, err := c.run(ctx, CmdSpec{
		Dir:     dir,
		Name:    c.manager,
		Args:    []string{"run", script},
		Inherit: true,
	})
	if err != nil {
		return fmt.Errorf("%s run %s: %w", c.manager, script, err)
	}
	return nil
}
