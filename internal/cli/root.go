package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/PhilippHGerber/llmifier/internal/assemble"
	"github.com/PhilippHGerber/llmifier/internal/config"
)

var (
	cfgFile     string
	rootDirFlag string
	modeFlag    string
	outputFlag  string
	includeFlag []string
	excludeFlag []string
	quietFlag   bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "llmifier",
	Short: "Flatten a project into a single LLM-friendly Markdown document",
	Long: `llmifier walks a project directory, collects the files selected by the
include/exclude patterns, and assembles them into one annotated Markdown
document.

Two modes are supported:

  full  every file is included verbatim
  api   supported source files are reduced to their public API surface
        (declarations without bodies); other files stay verbatim`,
	Args: cobra.NoArgs,
	RunE: runAssemble,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .llmifier.yml in the project root)")
	rootCmd.PersistentFlags().StringVar(&rootDirFlag, "root", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "assembly mode: full or api")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output file path")
	rootCmd.PersistentFlags().StringArrayVar(&includeFlag, "include", nil, "include glob pattern (replaces configured patterns, repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&excludeFlag, "exclude", nil, "exclude glob pattern (appended to configured patterns, repeatable)")
}

// loadConfig loads the effective configuration for the current invocation:
// defaults, then config file and environment, then command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader(rootDirFlag, cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = config.Mode(modeFlag)
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFlag
	}
	if len(includeFlag) > 0 {
		cfg.Paths.Include = includeFlag
	}
	if len(excludeFlag) > 0 {
		cfg.Paths.Exclude = append(cfg.Paths.Exclude, excludeFlag...)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verboseFlag {
		level = slog.LevelDebug
	} else if quietFlag {
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func newAssembler(cfg *config.Config, rootDir string, logger *slog.Logger, progress assemble.Progress) (*assemble.Assembler, error) {
	return assemble.New(assemble.Options{
		RootDir:     rootDir,
		Mode:        cfg.Mode,
		Output:      cfg.Output,
		Include:     cfg.Paths.Include,
		Exclude:     cfg.Paths.Exclude,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
		Progress:    progress,
	})
}

func runAssemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger()

	var progress assemble.Progress = assemble.NopProgress{}
	if !quietFlag {
		progress = NewCLIProgressReporter(os.Stderr)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received interrupt, stopping")
		cancel()
	}()

	asm, err := newAssembler(cfg, rootDirFlag, logger, progress)
	if err != nil {
		return err
	}
	result, err := asm.Run(ctx)
	if err != nil {
		return err
	}

	logger.Debug("assembly finished",
		"output", result.OutputPath,
		"files", result.Files,
		"reduced", result.Reduced,
		"elapsed", result.Elapsed)
	return nil
}
