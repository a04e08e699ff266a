// Command mdcrack is the driver CLI: it reads an input file of MD5 hashes
// and distributes the search for their plaintexts across a worker fleet
// (spec section 6.1).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NoaAzoulay/passwords-cracker/internal/config"
	"github.com/NoaAzoulay/passwords-cracker/internal/driver"
	"github.com/NoaAzoulay/passwords-cracker/internal/logger"
	"github.com/NoaAzoulay/passwords-cracker/internal/output"
)

var rootCmd = &cobra.Command{
	Use:   "mdcrack <input_file>",
	Short: "Distributed MD5 password cracker driver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputPath string) error {
	log := logger.New("mdcrack")

	cfg, err := config.NewDriverConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Info().
		Int64("chunk_size", cfg.ChunkSize).
		Int("max_concurrent_jobs", cfg.MaxConcurrentJobs).
		Strs("minion_urls", cfg.MinionURLs).
		Msg("mdcrack starting")

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}

	out := output.New(cfg.OutputFile, os.Stdout)
	d := driver.New(cfg, log, out)
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx, inputPath); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	log.Info().Msg("mdcrack finished")
	return nil
}
