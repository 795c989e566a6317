package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/PhilippHGerber/llmifier/internal/assemble"
	"github.com/PhilippHGerber/llmifier/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reassemble the document whenever project files change",
	Long: `Watch assembles the document once, then keeps watching the project tree
and reruns the assembly after every change. Events are debounced so a burst
of editor saves produces a single pass.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received interrupt, stopping watch")
		cancel()
	}()

	asm, err := newAssembler(cfg, rootDirFlag, logger, assemble.NopProgress{})
	if err != nil {
		return err
	}

	result, err := asm.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("initial assembly complete",
		"output", result.OutputPath,
		"files", result.Files)

	watcher, err := watch.New(rootDirFlag, cfg.Output, logger)
	if err != nil {
		return err
	}

	return watcher.Run(ctx, func(runID string, changed []string) {
		runLogger := logger.With("run_id", runID)

		res, err := asm.Run(ctx)
		if err != nil {
			runLogger.Error("assembly failed", "error", err)
			return
		}
		runLogger.Info("document reassembled",
			"output", res.OutputPath,
			"files", res.Files,
			"elapsed", res.Elapsed)
	})
}
