package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mjaros/housing-monitor/internal/config"
	"github.com/mjaros/housing-monitor/internal/logger"
	"github.com/mjaros/housing-monitor/internal/monitor"
	"github.com/mjaros/housing-monitor/internal/notifier"
	"github.com/mjaros/housing-monitor/internal/scraper"
	"github.com/mjaros/housing-monitor/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	// ExitUpdate is returned by --once when an update was detected, so the
	// monitor can drive cron jobs or shell pipelines.
	ExitUpdate = 2
)

var (
	flagMethod    string
	flagStateFile string
	flagInterval  int
	flagOnce      bool
	flagDryRun    bool
	flagVerbose   bool
)

var exitCode int

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "housing-monitor",
		Short: "Watch the Bad Leonfelden housing page for new listings",
		Long: `Polls the Bad Leonfelden municipal housing page, extracts the "Stand"
publication date, and sends a notification via Telegram, Discord, or ntfy
when the date changes. State is kept in a small JSON file across restarts.

With NOTIFICATION_METHOD (or --method) set the monitor runs non-interactively
from environment variables; otherwise it prompts for a backend and its
credentials on stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMonitor,
	}

	cmd.Flags().StringVar(&flagMethod, "method", "", "Notification backend: telegram, discord, or ntfy (or env: NOTIFICATION_METHOD)")
	cmd.Flags().StringVar(&flagStateFile, "state-file", "", "State file path (or env: STATE_FILE)")
	cmd.Flags().IntVar(&flagInterval, "interval", 0, "Check interval in minutes (or env: CHECK_INTERVAL)")
	cmd.Flags().BoolVar(&flagOnce, "once", false, "Run a single check and exit (exit code 2 when an update was detected)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of sending them")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// buildConfig assembles the process configuration. Container mode (a method
// given via flag or environment) reads everything from the environment;
// interactive mode prompts on stdin. Flags override in either mode.
func buildConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if flagMethod != "" || os.Getenv("NOTIFICATION_METHOD") != "" {
		fmt.Println("=== Bad Leonfelden Housing Monitor (Container Mode) ===")
		cfg, err = config.FromEnvWithMethod(flagMethod)
		if err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
	} else {
		cfg, err = runInteractiveSetup(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
	}

	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	if flagInterval != 0 {
		cfg.CheckInterval = time.Duration(flagInterval) * time.Minute
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// runMonitor is the main command logic
func runMonitor(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stdout))
	}

	config.LoadDotenv()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	var sender notifier.Notifier
	if flagDryRun {
		sender = notifier.NewDryRun()
	} else {
		sender, err = notifier.FromConfig(cfg)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	logger.Info("Monitor configured", logger.Fields{
		"url":              cfg.TargetURL,
		"method":           string(cfg.Method),
		"interval_minutes": cfg.CheckInterval.Minutes(),
		"state_file":       cfg.StateFile,
		"dry_run":          flagDryRun,
	})

	sc := scraper.NewWithURL(cfg.TargetURL)
	store := storage.New(cfg.StateFile)
	runner := monitor.NewRunner(sc, store, sender, cfg.CheckInterval)

	if flagOnce {
		updated, err := runner.CheckOnce()
		if err != nil {
			return err
		}
		if updated {
			exitCode = ExitUpdate
		}
		return nil
	}

	return runner.Run(cmd.Context())
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	exitCode = ExitSuccess

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	return exitCode
}
