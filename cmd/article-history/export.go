// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-history/internal/store"
	"github.com/pdiddy/article-history/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored DYK records to YAML or JSON",
	Long: `Export writes every stored record, with its flattened ArticleHistory
parameters, to export.yaml or export.json in the store directory.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("store-dir", "", "directory holding the resolution database (default: store.dir)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	storeDir, _ := cmd.Flags().GetString("store-dir")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if storeDir == "" {
		storeDir = cfg.Store.Dir
	}

	st, err := store.NewStore(types.StoreConfig{Dir: storeDir})
	if err != nil {
		return err
	}
	defer st.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = st.ExportYAML(context.Background())
	case "json":
		path, err = st.ExportJSON(context.Background())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}
