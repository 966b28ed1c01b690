package main

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/introflow/replybrain/internal/cli"
	"github.com/introflow/replybrain/internal/common"
	"github.com/introflow/replybrain/internal/corpus"
)

func corpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the labeled reply corpus and accuracy runs",
	}
	cmd.AddCommand(corpusImportCmd())
	cmd.AddCommand(corpusEvalCmd())
	cmd.AddCommand(corpusRunsCmd())
	return cmd
}

func corpusImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import labeled replies from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			replies, err := corpus.LoadFile(args[0])
			if err != nil {
				return err
			}

			store, err := corpus.NewStore(corpusDBPath())
			if err != nil {
				return fmt.Errorf("failed to open corpus database: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					common.LogError(closeErr, "Failed to close corpus database", nil)
				}
			}()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			inserted, err := store.AddReplies(ctx, replies)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"imported %d replies (%d new)", len(replies), inserted)))
			return nil
		},
	}
}

func corpusEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval",
		Short: "Evaluate classification accuracy against the stored corpus",
		Long: `Classify every labeled reply in the corpus and report per-stage accuracy.
Exits non-zero when overall accuracy falls below the 90% floor.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, err := buildEngine()
			if err != nil {
				return err
			}

			store, err := corpus.NewStore(corpusDBPath())
			if err != nil {
				return fmt.Errorf("failed to open corpus database: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					common.LogError(closeErr, "Failed to close corpus database", nil)
				}
			}()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			replies, err := store.ListReplies(ctx)
			if err != nil {
				return err
			}
			if len(replies) == 0 {
				return common.ErrEmptyCorpus
			}

			previous, err := store.LatestRun(ctx)
			hasPrevious := err == nil
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}

			bar := progressbar.Default(int64(len(replies)), "evaluating")
			report := corpus.Evaluate(ctx, eng, replies, func(int) {
				_ = bar.Add(1)
			})
			_ = bar.Finish()

			if err := store.SaveRun(ctx, report); err != nil {
				return err
			}

			fmt.Print(cli.RenderReport(report))
			if hasPrevious {
				delta := (report.Accuracy() - previous.Accuracy) * 100
				fmt.Printf("change vs last run: %+.1f%%\n", delta)
			}
			if !report.Passing() {
				return fmt.Errorf("accuracy %.1f%% is below the %.0f%% floor",
					report.Accuracy()*100, corpus.AccuracyFloor*100)
			}
			return nil
		},
	}
}

func corpusRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent evaluation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := corpus.NewStore(corpusDBPath())
			if err != nil {
				return fmt.Errorf("failed to open corpus database: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					common.LogError(closeErr, "Failed to close corpus database", nil)
				}
			}()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			for _, run := range runs {
				line := fmt.Sprintf("%s  %d/%d (%.1f%%)",
					run.RunAt.Format("2006-01-02 15:04"), run.Correct, run.Total, run.Accuracy*100)
				if run.Accuracy >= corpus.AccuracyFloor {
					fmt.Println(cli.FormatSuccess(line))
				} else {
					fmt.Println(cli.FormatError(line))
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum runs to show")
	return cmd
}
