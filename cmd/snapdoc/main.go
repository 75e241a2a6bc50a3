// Package main provides the snapdoc CLI: automated capture of
// documentation screenshots from a declarative task list, driving a
// real browser and recording per-task status in a JSON metadata store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/snapdoc/pkg/browser"
	"github.com/entrhq/snapdoc/pkg/capture"
	"github.com/entrhq/snapdoc/pkg/config"
	"github.com/entrhq/snapdoc/pkg/logging"
	"github.com/entrhq/snapdoc/pkg/metadata"
	"github.com/entrhq/snapdoc/pkg/runner"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	OutputDir   string
	Headed      bool
	Fresh       bool
	ShowVersion bool
}

func main() {
	cliConfig := parseFlags()

	if cliConfig.ShowVersion {
		fmt.Printf("snapdoc v%s\n", version)
		return
	}

	// Create context with signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nFinishing current task, then shutting down...")
		cancel()
	}()

	session, err := run(ctx, cliConfig)
	cancel()
	if err != nil {
		log.Printf("Capture run failed: %v", err)
		os.Exit(1)
	}

	if session.Status == capture.SessionFailed {
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cliConfig := &CLIConfig{}

	flag.StringVar(&cliConfig.ConfigFile, "config", "snapdoc.yaml", "Path to configuration file (YAML)")
	flag.StringVar(&cliConfig.OutputDir, "output", "", "Override the configured output directory")
	flag.BoolVar(&cliConfig.Headed, "headed", false, "Run the browser with a visible window")
	flag.BoolVar(&cliConfig.Fresh, "fresh", false, "Ignore persisted session state and start over")
	flag.BoolVar(&cliConfig.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "snapdoc - Documentation Screenshot Capture\n\n")
		fmt.Fprintf(os.Stderr, "Usage: snapdoc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Capture every task in snapdoc.yaml\n")
		fmt.Fprintf(os.Stderr, "  snapdoc\n\n")
		fmt.Fprintf(os.Stderr, "  # Use a different task list and output directory\n")
		fmt.Fprintf(os.Stderr, "  snapdoc -config docs/capture.yaml -output build/shots\n\n")
		fmt.Fprintf(os.Stderr, "  # Restart instead of resuming a previous run\n")
		fmt.Fprintf(os.Stderr, "  snapdoc -fresh\n\n")
	}

	flag.Parse()
	return cliConfig
}

// run executes one capture session
func run(ctx context.Context, cliConfig *CLIConfig) (*capture.Session, error) {
	cfg, err := config.LoadFromFile(cliConfig.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flags override config file values
	if cliConfig.OutputDir != "" {
		cfg.OutputDir = cliConfig.OutputDir
	}
	if cliConfig.Headed {
		cfg.Headless = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logErr := logging.NewLogger("snapdoc")
	if logErr != nil {
		log.Printf("File logging unavailable: %v", logErr)
	}
	defer logger.Close()

	store := metadata.NewFileStore(cfg.MetadataPath)
	if cliConfig.Fresh {
		if err := os.Remove(store.Path()); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to clear persisted session: %w", err)
		}
	}
	tracker := capture.NewTracker(store)

	manager := browser.NewManager()
	if err := manager.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			logger.Errorf("browser shutdown: %v", err)
		}
	}()

	session, err := manager.NewSession(browser.SessionOptions{
		Headless: cfg.Headless,
		Viewport: &browser.Viewport{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		},
		Timeout: float64(cfg.Navigation.Timeout.Milliseconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	r := runner.New(session, tracker, cfg, logger)

	captureSession, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Print(runner.RenderSummary(captureSession))
	fmt.Printf("\nSession metadata: %s\n", store.Path())

	return captureSession, nil
}
