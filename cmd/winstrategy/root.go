package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/win-strategy/internal/config"
	"github.com/kingrea/win-strategy/internal/logbook"
	"github.com/kingrea/win-strategy/internal/logging"
	"github.com/kingrea/win-strategy/internal/tui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "unknown"
)

type rootOptions struct {
	projectDir  string
	noAltScreen bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "winstrategy",
		Short: "Track Corporate, Business Unit and Plant strategies in the terminal",
		Long: `winstrategy is a single-session strategy tracker.

Enter strategies at the Corporate, Business Unit or Plant level across six
fields (winning aspiration, playing field, tactics, capabilities, management
systems, success measures) and track their progress. Nothing is saved when
the session ends.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	cmd.Flags().StringVar(&opts.projectDir, "project", "", "directory holding .winstrategy/ (defaults to cwd)")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "render inline instead of in the alternate screen")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "winstrategy")
			fmt.Fprintf(out, "  Version:    %s\n", Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func resolveProjectDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project dir: %w", err)
	}
	return abs, nil
}

func runTUI(opts *rootOptions) (err error) {
	projectDir, err := resolveProjectDir(opts.projectDir)
	if err != nil {
		return err
	}
	if err := config.InitDir(projectDir); err != nil {
		return fmt.Errorf("init %s: %w", config.StateDir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.SessionStarted(Version, cfg)
	defer func() { logger.SessionEnded(err) }()

	journal, err := logbook.New(cfg.JournalPath())
	if err != nil {
		logger.Printf("journal unavailable: %v", err)
		journal = nil
	}

	programOpts := []tea.ProgramOption{}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.NewApp(cfg, tui.WithLogbook(journal)), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
