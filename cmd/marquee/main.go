package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/logging"
	"github.com/mmcdole/marquee/internal/opener"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                        \r"

const validateTimeout = 15 * time.Second

type options struct {
	showVersion bool
	openPath    string
	noCache     bool
	clearCache  bool
}

func main() {
	fs := pflag.NewFlagSet("marquee", pflag.ExitOnError)

	var opts options
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "print version")
	fs.StringVar(&opts.openPath, "open", "", "start at a route, e.g. /movies/550 or /search/dune")
	fs.BoolVar(&opts.noCache, "no-cache", false, "keep the catalog cache in memory only")
	fs.BoolVar(&opts.clearCache, "clear-cache", false, "delete the on-disk cache before starting")
	fs.Int("page-size", 0, "cards per carousel page")
	fs.String("language", "", "TMDB language, e.g. en-US")
	fs.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	_ = fs.Parse(os.Args[1:])

	if opts.showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(fs, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *pflag.FlagSet, opts options) error {
	loader := config.NewLoader(config.DefaultConfigDir())
	if err := loader.BindFlags(fs); err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.noCache {
		cfg.Cache.Enabled = false
	}

	logger, closer, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(loader, cfg, logger)
	}

	if opts.clearCache {
		if err := store.Clear(cfg.Cache.Dir); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		logger.Info("cache cleared", "dir", cfg.Cache.Dir)
	}

	catalogStore, err := store.NewCatalogStore(cfg.CacheDir(), cfg.CacheScope())
	if err != nil {
		// Locked or corrupt cache: run memory-only
		logger.Warn("cache unavailable, using memory", "error", err)
		catalogStore, _ = store.NewCatalogStore("", "")
	}
	defer catalogStore.Close()

	client := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Language, logger)

	commands := catalog.NewCommands(client, catalogStore, cfg.Cache.TTL, cfg.TMDB.Pages, logger)
	queries := catalog.NewQueries(catalogStore)

	categories := append(append([]domain.Category{}, domain.MovieCategories...), domain.TVCategories...)
	searchSvc := search.NewService(client, queries, categories, logger)

	browser := opener.New(cfg.Browser.Command, cfg.Browser.Args, logger)

	model := tui.NewModel(commands, queries, searchSvc, browser, tui.Options{
		PageSize:      cfg.UI.PageSize,
		Animations:    cfg.UI.Animations,
		SlideFrames:   cfg.UI.SlideFrames,
		FrameInterval: cfg.UI.FrameInterval,
		ImageBaseURL:  cfg.TMDB.ImageBaseURL,
		StartPath:     opts.openPath,
	}, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for a TMDB API key, validates it and saves it
func runSetupFlow(loader *config.Loader, cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to marquee!")
	fmt.Println()
	fmt.Println("An API key is required. Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	var key string
	for {
		fmt.Print("Enter your TMDB API key: ")
		input, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		key = strings.TrimSpace(string(input))

		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		err = validateWithSpinner(cfg.TMDB.BaseURL, key)
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Println("✗ TMDB rejected the key. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			fmt.Printf("✗ Could not validate the key: %v\n", err)
			fmt.Println("Please check your connection and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := loader.SaveAPIKey(key); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Info("api key saved", "path", loader.Path())

	fmt.Println()
	fmt.Println("✓ Configuration saved to " + loader.Path())
	fmt.Println()
	fmt.Println("Run marquee again to start browsing.")

	return nil
}

// validateWithSpinner checks the key against TMDB with a visual spinner
func validateWithSpinner(baseURL, key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- tmdb.ValidateAPIKey(ctx, baseURL, key)
	}()

	frames := spinner.Dot.Frames
	frame := 0

	fmt.Printf("\r%s Validating API key...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ API key accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Validating API key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("validation timed out")
		}
	}
}
