package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/videoclub/internal/catalog"
	"github.com/mmcdole/videoclub/internal/config"
	"github.com/mmcdole/videoclub/internal/domain"
	"github.com/mmcdole/videoclub/internal/log"
	"github.com/mmcdole/videoclub/internal/player"
	"github.com/mmcdole/videoclub/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		configPath  string
		serverURL   string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&serverURL, "server", "", "backend base URL (overrides server.url)")
	flag.Parse()

	if showVersion {
		fmt.Printf("videoclub %s\n", Version)
		return
	}

	if err := run(configPath, serverURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, serverURL string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	// Setup logger
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting videoclub", "version", Version, "server", cfg.Server.URL)

	client := catalog.NewClient(cfg.Server.URL,
		catalog.WithTimeout(cfg.Server.Timeout),
		catalog.WithLogger(logger),
	)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlain(client, logger)
	}

	// Create launcher (uses configured player or auto-detects)
	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	model := tui.NewModel(client, tui.PlayerLauncher(launcher), tui.Options{
		StreamBase: client.BaseURL(),
		Splash:     cfg.UI.Splash,
		Backdrop:   cfg.UI.Backdrop,
		Logger:     logger,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPlain prints the gallery once when stdout is not a terminal
func runPlain(client *catalog.Client, logger *slog.Logger) error {
	res := fetchWithSpinner(client)
	if err := tui.RenderPlain(os.Stdout, res, client.BaseURL(), logger); err != nil {
		return fmt.Errorf("catalog unavailable: %w", err)
	}
	return nil
}

// fetchWithSpinner loads the catalog, animating a spinner on stderr when it
// is a terminal
func fetchWithSpinner(client *catalog.Client) domain.CatalogResult {
	resultCh := make(chan domain.CatalogResult, 1)
	go func() {
		resultCh <- client.FetchCatalog(context.Background())
	}()

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return <-resultCh
	}

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Fprintf(os.Stderr, "\r%s Loading catalog...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(os.Stderr, clearSpinnerLine)
			return res
		case <-ticker.C:
			frame++
			fmt.Fprintf(os.Stderr, "\r%s Loading catalog...", frames[frame%len(frames)])
		}
	}
}
