// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-history/internal/dyk"
	"github.com/pdiddy/article-history/pkg/types"
)

var dykCmd = &cobra.Command{
	Use:   "dyk [unnamed parameters...]",
	Short: "Resolve one DYK template and print its ArticleHistory parameters",
	Long: `Dyk resolves a single parsed DYK template for an article. Positional
arguments are the template's unnamed parameters in order; --param supplies
named parameters such as entry and nompage.

When nompage is not given, the wiki is queried once to find the
nomination page.`,
	Example: `  article-history dyk --article Example "5 April" 2020 "... that ..."
  article-history dyk --article Example --param nompage="Template:Did you know nominations/Example" "5 April 2020"`,
	RunE: runDyk,
}

func init() {
	dykCmd.Flags().String("article", "", "article title (required)")
	dykCmd.Flags().StringArray("param", nil, "named template parameter as name=value (repeatable)")
	dykCmd.Flags().Duration("timeout", 0, "overall timeout for the resolution (0 = none)")
	dykCmd.Flags().Bool("json", false, "output parameters as JSON")
	dykCmd.MarkFlagRequired("article")

	rootCmd.AddCommand(dykCmd)
}

func runDyk(cmd *cobra.Command, args []string) error {
	article, _ := cmd.Flags().GetString("article")
	rawParams, _ := cmd.Flags().GetStringArray("param")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if strings.TrimSpace(article) == "" {
		return fmt.Errorf("--article must not be blank")
	}
	named, err := parseNamedParams(rawParams)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tmpl := &types.Template{Name: "dyk", Unnamed: args, Named: named}
	resolver := dyk.NewResolver(newWikiClient(cfg.Wiki))
	entry, err := resolver.Resolve(ctx, article, tmpl)
	if err != nil {
		return err
	}

	return writeParams(os.Stdout, types.Collect(entry.ToParams()), jsonOutput)
}

// parseNamedParams splits name=value pairs. Values may contain '='.
func parseNamedParams(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	named := make(map[string]string, len(raw))
	for _, p := range raw {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", p)
		}
		if _, dup := named[name]; dup {
			return nil, fmt.Errorf("--param %s given more than once", name)
		}
		named[name] = value
	}
	return named, nil
}

func writeParams(w io.Writer, params []types.Param, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	}
	for _, p := range params {
		fmt.Fprintf(w, "%s=%s\n", p.Key, p.Value)
	}
	return nil
}
