package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens URLs (the served portfolio) in a browser
type Launcher struct {
	command string   // configured browser command, empty for auto-detection
	args    []string // additional arguments for the browser
	goos    string
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// candidateBrowsers defines the preferred browser order for each platform.
// darwin always goes through "open", which honors the user's default.
var candidateBrowsers = map[string][]string{
	"linux":   {"xdg-open", "sensible-browser", "firefox", "chromium", "google-chrome"},
	"freebsd": {"xdg-open", "firefox", "chromium"},
}

// NewLauncher creates a launcher using cfg, or auto-detection when cfg is empty
func NewLauncher(cfg BrowserConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  cfg.Command,
		args:     cfg.Args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open launches url without waiting for the browser to exit
func (l *Launcher) Open(url string) error {
	name, args, err := l.resolve(url)
	if err != nil {
		return err
	}
	l.logger.Info("opening browser", "command", name, "args", args)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return nil
}

// resolve picks the command line for url
func (l *Launcher) resolve(url string) (string, []string, error) {
	// Tier 1: user configured a specific browser
	if l.command != "" {
		return l.command, append(append([]string{}, l.args...), url), nil
	}

	// Tier 2: platform opener
	switch l.goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", url}, nil
	}

	// Tier 3: first candidate found in PATH
	candidates, ok := candidateBrowsers[l.goos]
	if !ok {
		candidates = candidateBrowsers["linux"]
	}
	for _, c := range candidates {
		if _, err := l.lookPath(c); err == nil {
			return c, []string{url}, nil
		}
		l.logger.Debug("browser not available", "command", c)
	}
	return "", nil, fmt.Errorf("no browser found for %s; set browser.command", l.goos)
}
