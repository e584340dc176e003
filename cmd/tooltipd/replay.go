package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/replay"
)

func replayCmd(flags *globalFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a scripted interaction and print popover transitions",
		Long: `Replay runs a JSON script of pointer steps against an in-memory
controller with a simulated clock, then prints every popover that opened
or closed. Expectations in the script make the command fail.

The script may be a local path or s3://bucket/key; S3 credentials come
from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  tooltipd replay testdata/hover.json
  tooltipd replay s3://qa-scripts/touch-hold.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, os.Stderr)

			loader := replay.Loader{}
			if _, _, ok := replay.ParseS3URL(args[0]); ok {
				loader.S3 = replay.NewS3Client(replay.S3Options{
					Region:   cfg.Replay.Region,
					Endpoint: cfg.Replay.Endpoint,
				})
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			script, err := loader.Load(ctx, args[0])
			if err != nil {
				return err
			}

			runner := replay.Runner{
				DefaultDelay: cfg.DefaultDelay(),
				CloseDelay:   cfg.CloseDelay(),
				Logger:       logger,
			}
			if cfg.Tooltip.CloseDelayMs == 0 {
				runner.CloseDelay = -1
			}
			res, err := runner.Run(script)
			if res != nil {
				res.Report(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}

			name := script.Name
			if name == "" {
				name = args[0]
			}
			success("%s: %d transition(s), all expectations held", name, len(res.Transitions))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Time allowed to fetch the script")

	return cmd
}
