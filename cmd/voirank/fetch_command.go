package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"voirank/internal/pipeline"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "fetch [category...]",
		Short: "Download category snapshots from the search API",
		Long: "Download category snapshots from the search API and replace the stored blobs.\n" +
			"Categories that fail are reported and keep their previous blob.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(cmd, func(c context.Context, r *pipeline.Runner) (int, error) {
				categories := args
				if len(categories) == 0 {
					categories = r.Config().CategoryNames()
				}
				result, err := r.Fetch(c, categories, limit)
				saved := len(result.Outcomes) - result.Failed()
				if err != nil {
					return saved, err
				}
				if ctx.jsonOutput() {
					if err := writeJSON(cmd, result); err != nil {
						return saved, err
					}
				} else {
					rows := make([][]string, 0, len(result.Outcomes))
					for _, o := range result.Outcomes {
						status := "saved"
						if o.Error != "" {
							status = o.Error
						}
						rows = append(rows, []string{o.Category, strconv.Itoa(o.Records), status})
					}
					fmt.Fprintln(cmd.OutOrStdout(), renderTable(
						[]string{"Category", "Records", "Status"},
						rows,
						[]columnAlignment{alignLeft, alignRight, alignLeft},
					))
				}
				if n := result.Failed(); n > 0 {
					return saved, fmt.Errorf("%d of %d categories failed to download", n, len(result.Outcomes))
				}
				return saved, nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop each category after this many records (0 fetches all)")
	return cmd
}
