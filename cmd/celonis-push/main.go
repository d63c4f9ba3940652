package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"celonis-push/internal/celonis"
	"celonis-push/internal/config"
	"celonis-push/internal/logging"
	"celonis-push/internal/model"
	"celonis-push/internal/pipeline"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "celonis-push",
		Short:         "Push local data files into a Celonis data pool",
		Long:          "Reads CSV, Excel, Parquet, JSON, XML and Avro files, infers a table schema,\nensures the table exists in the configured Celonis data pool and uploads the\nrows in paced chunks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags())
		},
	}

	flags := cmd.Flags()
	flags.String("path", "", "file or directory to upload (overrides DATA_SOURCE_PATH)")
	flags.String("api_key", "", "Celonis API key (overrides CELONIS_API_KEY)")
	flags.String("instance_id", "", "Celonis instance name or base URL (overrides CELONIS_INSTANCE_ID)")
	flags.String("pool_id", "", "target data pool ID (overrides CELONIS_POOL_ID)")
	flags.String("job_name", "TEST_DATA_JOB", "name of the data job to use or create")
	flags.Int("chunk_size", 100000, "maximum rows per upload chunk")
	flags.Duration("chunk_pause", 10*time.Second, "fixed pause between chunk uploads")
	flags.String("log_file", "celonis_push.log", "append-only run log")

	return cmd
}

func run(flags *pflag.FlagSet) error {
	cfg, err := config.Load(flags)
	if err != nil {
		// Configuration errors are fatal before any file is touched, but
		// still belong in the run log.
		if logger, closer, logErr := logging.Setup("celonis_push.log", "info"); logErr == nil {
			logger.Error("configuration error", "error", err)
			closer.Close()
		} else {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		}
		return err
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	defer closer.Close()

	client, err := celonis.NewClient(cfg.InstanceID, cfg.PoolID, cfg.APIKey)
	if err != nil {
		logger.Error("failed to create Celonis client", "error", err)
		return err
	}

	results, err := pipeline.New(cfg, client, logger).Run(context.Background())
	if err != nil {
		logger.Error("run aborted", "error", err)
		return err
	}

	failed := 0
	for _, result := range results {
		if result.State != model.StateDone {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}

	return nil
}
