package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache hit/miss statistics and tier sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			c, err := openCache(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			stats := c.Stats(context.Background())

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "memory entries\t%d\n", stats.MemoryEntries)
			fmt.Fprintf(w, "disk entries\t%d\n", stats.DiskEntries)
			fmt.Fprintf(w, "total hits\t%d\n", stats.TotalHits)
			fmt.Fprintf(w, "total misses\t%d\n", stats.TotalMisses)
			fmt.Fprintf(w, "memory hits\t%d\n", stats.MemoryHits)
			fmt.Fprintf(w, "disk hits\t%d\n", stats.DiskHits)
			fmt.Fprintf(w, "hit rate\t%s\n", stats.HitRatePercent())
			fmt.Fprintf(w, "evictions\t%d\n", stats.Evictions)
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}
