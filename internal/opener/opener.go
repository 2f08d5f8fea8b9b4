// Package opener opens catalog pages in the system web browser.
package opener

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/mmcdole/marquee/internal/domain"
)

// SiteBaseURL is the public TMDB website
const SiteBaseURL = "https://www.themoviedb.org"

// ErrNoBrowser is returned when no launch path worked
var ErrNoBrowser = errors.New("no browser found")

// PageURL returns the TMDB website page for an item
func PageURL(kind domain.MediaKind, id int) string {
	return fmt.Sprintf("%s/%s/%d", SiteBaseURL, kind, id)
}

// launchPath is one way to hand a URL to the desktop
type launchPath struct {
	command string
	args    []string // placed before the URL
}

// candidates lists launch paths to try in order for each platform
var candidates = map[string][]launchPath{
	"darwin": {{command: "open"}},
	"linux": {
		{command: "xdg-open"},
		{command: "wslview"},
		{command: "sensible-browser"},
	},
	"windows": {{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}},
}

// Opener launches URLs in a configured command or the platform default
type Opener struct {
	command string
	args    []string
	goos    string
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// New creates an Opener. An empty command selects the platform default.
func New(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startCommand,
	}
}

// startCommand starts name without waiting for it to exit
func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens url in the configured browser or the first available
// platform handler
func (o *Opener) Open(url string) error {
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		o.logger.Info("opening with configured browser", "command", o.command, "url", url)
		return o.start(o.command, args...)
	}

	paths, ok := candidates[o.goos]
	if !ok {
		paths = candidates["linux"]
	}

	for _, lp := range paths {
		if _, err := o.lookPath(lp.command); err != nil {
			o.logger.Debug("launch path not available", "command", lp.command, "error", err)
			continue
		}
		args := append(append([]string{}, lp.args...), url)
		if err := o.start(lp.command, args...); err != nil {
			o.logger.Debug("launch failed", "command", lp.command, "error", err)
			continue
		}
		o.logger.Info("opened with system handler", "command", lp.command, "url", url)
		return nil
	}

	return fmt.Errorf("%w for %s", ErrNoBrowser, o.goos)
}

// OpenItem opens the TMDB page for an item
func (o *Opener) OpenItem(kind domain.MediaKind, id int) error {
	return o.Open(PageURL(kind, id))
}
