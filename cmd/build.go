package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitenav/internal/progress"
	"github.com/ziadkadry99/sitenav/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Inject navigation into every page of the site",
	Long: `Walks the site directory, renders markdown pages, injects the navigation
partials into every page and writes the result to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("strict", false, "fail when the partials cannot be loaded")
	buildCmd.Flags().Bool("quiet", false, "disable the progress bar")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		cfg.Strict = true
	}

	builder := site.NewBuilder(cfg, slog.Default())
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		builder.Reporter = progress.NewReporter()
	}

	stats, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Site built: %s (%d pages, %d assets) in %s\n",
		cfg.OutputDir, stats.Pages, stats.Assets, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "  injected: %d  already injected: %d  fallback: %d\n",
		stats.Injected, stats.Skipped, stats.Fallback)
	if stats.GeneratedSidebar {
		fmt.Fprintln(out, "  sidebar generated from the page tree")
	}
	return nil
}
