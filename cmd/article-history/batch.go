// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-history/internal/dyk"
	"github.com/pdiddy/article-history/internal/history"
	"github.com/pdiddy/article-history/internal/store"
	"github.com/pdiddy/article-history/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve DYK records for every article in an input file",
	Long: `Batch reads a YAML file of articles with their parsed DYK templates and
resolves each one. Articles are resolved in parallel; a failure affects only
that article. Results are stored in SQLite under --store-dir, and articles
whose template is unchanged since the last run are skipped unless --force
is given.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("input", "", "YAML file listing articles and templates (required)")
	batchCmd.Flags().Int("concurrency", 4, "number of articles resolved in parallel")
	batchCmd.Flags().Float64("rps", 5, "maximum wiki queries per second")
	batchCmd.Flags().String("store-dir", "data", "directory for the resolution database")
	batchCmd.Flags().Bool("force", false, "re-resolve articles whose template is unchanged")
	batchCmd.Flags().Bool("json", false, "print resolved records as JSON after the summary")
	batchCmd.MarkFlagRequired("input")

	viper.BindPFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("batch.force", batchCmd.Flags().Lookup("force"))
	viper.BindPFlag("wiki.requests_per_second", batchCmd.Flags().Lookup("rps"))
	viper.BindPFlag("store.dir", batchCmd.Flags().Lookup("store-dir"))

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	in, err := history.ReadInputFile(inputPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := &history.Runner{
		Resolver: dyk.NewResolver(newWikiClient(cfg.Wiki)),
		Store:    st,
		Config:   cfg.Batch,
		Logger:   logger.Named("batch"),
	}

	result, err := runner.Run(context.Background(), in.Jobs(), os.Stdout)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := writeBatchJSON(result); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d article(s) failed resolution", result.Failed)
	}
	return nil
}

type batchRecord struct {
	Article string        `json:"article"`
	Params  []types.Param `json:"params,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func writeBatchJSON(result history.BatchResult) error {
	records := make([]batchRecord, len(result.Outcomes))
	for i, o := range result.Outcomes {
		records[i].Article = o.Article
		if o.Err != nil {
			records[i].Error = o.Err.Error()
			continue
		}
		records[i].Params = types.Collect(o.Entry.ToParams())
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
